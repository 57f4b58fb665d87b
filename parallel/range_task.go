// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package parallel

import "sync/atomic"

// Task is a unit of work run by a Pool worker.
type Task interface {
	Run()
}

// TaskFunc adapts a function to Task.
type TaskFunc func()

func (f TaskFunc) Run() {
	f()
}

// RangeTask processes the indices [min,max]. Many goroutines may Run the same
// RangeTask; they claim indices one at a time from a shared cursor, so each
// index is processed exactly once no matter how many workers run it.
type RangeTask struct {
	next atomic.Int64
	max  int64
	fn   func(i int)
}

// NewRangeTask creates a RangeTask calling fn for every index in [min,max].
// The range is empty if max < min.
func NewRangeTask(min, max int, fn func(i int)) *RangeTask {
	t := &RangeTask{
		max: int64(max),
		fn:  fn,
	}
	t.next.Store(int64(min))
	return t
}

// claim returns the next unprocessed index.
func (t *RangeTask) claim() (int, bool) {
	i := t.next.Add(1) - 1
	return int(i), i <= t.max
}

// Run processes indices until the range is exhausted.
func (t *RangeTask) Run() {
	for {
		i, ok := t.claim()
		if !ok {
			return
		}
		t.fn(i)
	}
}

// Done reports whether every index has been claimed.
func (t *RangeTask) Done() bool {
	return t.next.Load() > t.max
}
