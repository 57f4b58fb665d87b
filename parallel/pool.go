// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package parallel contains a persistent worker pool for filling fields.
package parallel

import (
	"runtime"
	"sync"

	"github.com/SoftbearStudios/noisefield/logger"
)

// Pool is a fixed set of persistent worker goroutines sharing one task
// queue. Workers with nothing to do hibernate on a condition variable until
// Start wakes them, so an idle pool costs nothing.
//
// A Pool is meant to be created once and reused across many fills.
// Its methods are safe for concurrent use, but StartAndWait waits for the
// whole queue, including tasks added by other goroutines.
type Pool struct {
	workers int

	mu          sync.Mutex
	queue       []Task
	hibernating int
	closed      bool
	wake        *sync.Cond
	idle        *Barrier
	wg          sync.WaitGroup
}

// NewPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{workers: workers}
	p.wake = sync.NewCond(&p.mu)
	p.idle = NewBarrier(&p.mu)

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}

	logger.Get().Debug("worker pool started", "workers", workers)
	return p
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int {
	return p.workers
}

// AddGlobalTask queues t once per worker. Combined with RangeTask this
// spreads one range over every worker.
func (p *Pool) AddGlobalTask(t Task) {
	p.mu.Lock()
	for i := 0; i < p.workers; i++ {
		p.queue = append(p.queue, t)
	}
	p.mu.Unlock()
}

// AddTask queues t once.
func (p *Pool) AddTask(t Task) {
	p.mu.Lock()
	p.queue = append(p.queue, t)
	p.mu.Unlock()
}

// Start wakes hibernating workers to drain the queue.
func (p *Pool) Start() {
	p.mu.Lock()
	p.wake.Broadcast()
	p.mu.Unlock()
}

// StartAndWait wakes the workers and blocks until the queue is empty and
// every worker is hibernating, so all queued work is complete and its
// writes are visible to the caller.
func (p *Pool) StartAndWait() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.wake.Broadcast()
	p.idle.Wait(p.settled)
}

// settled must be called with mu held.
func (p *Pool) settled() bool {
	return len(p.queue) == 0 && p.hibernating == p.workers
}

// Close runs whatever is still queued and stops the workers.
// The pool must not be used afterwards. Close is safe to call twice.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.wake.Broadcast()
	p.mu.Unlock()

	p.wg.Wait()
	logger.Get().Debug("worker pool stopped", "workers", p.workers)
}

func (p *Pool) worker() {
	defer p.wg.Done()

	p.mu.Lock()
	for {
		for len(p.queue) == 0 {
			if p.closed {
				p.mu.Unlock()
				return
			}

			p.hibernating++
			if p.hibernating == p.workers {
				// Last one to finish.
				p.idle.Trip()
			}
			p.wake.Wait()
			p.hibernating--
		}

		task := p.queue[0]
		p.queue[0] = nil
		p.queue = p.queue[1:]
		p.mu.Unlock()

		task.Run()

		p.mu.Lock()
	}
}
