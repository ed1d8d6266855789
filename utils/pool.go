package utils

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// WorkerPool runs jobs on a bounded number of goroutines and spaces job
// starts at least interval apart. The listing importer fetches detail pages
// through it. Jobs that have not started when their context is cancelled
// are dropped.
type WorkerPool struct {
	interval time.Duration
	slots    chan struct{}
	wg       sync.WaitGroup

	mu   sync.Mutex
	next time.Time

	skipped atomic.Int64
}

// NewWorkerPool returns a pool of maxWorkers goroutines (at least one) whose
// job starts are rateLimitMs milliseconds apart.
func NewWorkerPool(maxWorkers, rateLimitMs int) *WorkerPool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &WorkerPool{
		interval: time.Duration(rateLimitMs) * time.Millisecond,
		slots:    make(chan struct{}, maxWorkers),
	}
}

// Submit blocks until a worker is free and starts job on it. It returns false
// without running job when ctx is done before a worker frees up. A job that
// was accepted but whose turn comes after ctx is done is skipped as well.
func (wp *WorkerPool) Submit(ctx context.Context, job func()) bool {
	if ctx.Err() != nil {
		wp.skipped.Add(1)
		return false
	}
	select {
	case wp.slots <- struct{}{}:
	case <-ctx.Done():
		wp.skipped.Add(1)
		return false
	}

	wp.wg.Add(1)
	go func() {
		defer wp.wg.Done()
		defer func() { <-wp.slots }()

		if !wp.awaitTurn(ctx) {
			wp.skipped.Add(1)
			return
		}
		job()
	}()
	return true
}

// Wait blocks until every accepted job has finished or been skipped.
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

// Skipped returns how many jobs were dropped because their context ended.
func (wp *WorkerPool) Skipped() int {
	return int(wp.skipped.Load())
}

// awaitTurn reserves the next start time and waits for it. It reports false
// when ctx ends first.
func (wp *WorkerPool) awaitTurn(ctx context.Context) bool {
	wp.mu.Lock()
	now := time.Now()
	at := wp.next
	if at.Before(now) {
		at = now
	}
	wp.next = at.Add(wp.interval)
	wp.mu.Unlock()

	if d := time.Until(at); d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return false
		}
	}
	return ctx.Err() == nil
}
