// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package parallel

import "sync"

// Barrier lets goroutines block until a condition guarded by a shared lock
// becomes true. The goroutine that makes it true calls Trip.
type Barrier struct {
	cond *sync.Cond
}

// NewBarrier creates a Barrier over l.
func NewBarrier(l sync.Locker) *Barrier {
	return &Barrier{cond: sync.NewCond(l)}
}

// Trip wakes every waiter so they re-check their condition.
// The caller must hold the lock.
func (b *Barrier) Trip() {
	b.cond.Broadcast()
}

// Wait blocks until done returns true. The caller must hold the lock, which
// is released while blocked and held again on return.
func (b *Barrier) Wait(done func() bool) {
	for !done() {
		b.cond.Wait()
	}
}
