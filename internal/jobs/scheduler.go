// Package jobs runs mutating requests as tracked jobs so shutdown can wait for them.
package jobs

import (
	"context"
	"errors"
	"sync"

	"simpleforum/internal/observability"
)

// ErrClosed is returned by Atomic once the scheduler has been closed.
var ErrClosed = errors.New("scheduler is closed")

// Scheduler tracks in-flight mutations. The zero value is not usable; call New.
type Scheduler struct {
	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// New returns an open scheduler.
func New() *Scheduler {
	return &Scheduler{}
}

// Atomic runs fn as a job. The context passed to fn keeps the caller's values
// but not its cancellation, so a client disconnect cannot abort a mutation
// halfway. Atomic blocks until fn returns.
func (s *Scheduler) Atomic(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.wg.Add(1)
	s.mu.Unlock()

	observability.InFlightMutations.Inc()
	defer func() {
		observability.InFlightMutations.Dec()
		s.wg.Done()
	}()

	return fn(context.WithoutCancel(ctx))
}

// Close rejects new jobs and waits for running ones, or until ctx is done.
func (s *Scheduler) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Closed reports whether Close has been called.
func (s *Scheduler) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
