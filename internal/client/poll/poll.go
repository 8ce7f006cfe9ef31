// Package poll provides a cancellable recurring task built on a ticker.
// It replaces ad-hoc chained timer callbacks: cancellation is a method on the
// task handle, not a flag captured by closures.
package poll

import (
	"context"
	"sync"
	"time"
)

// Task is a recurring job. Stop is idempotent: calling it twice, or after the
// loop already exited on its own, is a no-op.
type Task struct {
	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// Start runs fn every interval until fn returns false, ctx is cancelled, or
// Stop is called. Ticks are processed one at a time on a single goroutine, so
// results are always applied in issuance order. fn is not invoked before the
// first tick elapses.
func Start(ctx context.Context, interval time.Duration, fn func(ctx context.Context) bool) *Task {
	t := &Task{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	go func() {
		defer close(t.done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if !fn(ctx) {
					return
				}
			case <-t.stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return t
}

// Stop requests the loop to exit. Safe to call from any goroutine, any number
// of times.
func (t *Task) Stop() {
	t.stopOnce.Do(func() { close(t.stop) })
}

// Done is closed once the loop has fully exited.
func (t *Task) Done() <-chan struct{} {
	return t.done
}
