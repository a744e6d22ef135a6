package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomic_DetachesCancellation(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Atomic(ctx, func(jobCtx context.Context) error {
		return jobCtx.Err()
	})
	assert.NoError(t, err)
}

func TestAtomic_ReturnsJobError(t *testing.T) {
	s := New()
	boom := errors.New("boom")
	assert.ErrorIs(t, s.Atomic(context.Background(), func(context.Context) error { return boom }), boom)
}

func TestClose_WaitsForInFlightJobs(t *testing.T) {
	s := New()
	started := make(chan struct{})
	release := make(chan struct{})
	finished := make(chan struct{})

	go func() {
		_ = s.Atomic(context.Background(), func(context.Context) error {
			close(started)
			<-release
			return nil
		})
		close(finished)
	}()
	<-started

	closeErr := make(chan error, 1)
	go func() { closeErr <- s.Close(context.Background()) }()

	select {
	case <-closeErr:
		t.Fatal("Close returned while a job was still running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	require.NoError(t, <-closeErr)
	<-finished

	assert.True(t, s.Closed())
	assert.ErrorIs(t, s.Atomic(context.Background(), func(context.Context) error { return nil }), ErrClosed)
}

func TestClose_HonoursDeadline(t *testing.T) {
	s := New()
	started := make(chan struct{})
	release := make(chan struct{})
	defer close(release)

	go func() {
		_ = s.Atomic(context.Background(), func(context.Context) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, s.Close(ctx), context.DeadlineExceeded)
}
