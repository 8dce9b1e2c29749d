package reconcile

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueSerializes(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	var inFlight, maxInFlight atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := q.Do(context.Background(), func(context.Context) error {
				n := inFlight.Add(1)
				for {
					m := maxInFlight.Load()
					if n <= m || maxInFlight.CompareAndSwap(m, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				inFlight.Add(-1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), maxInFlight.Load())
}

func TestQueueCancelledWhileQueuedNeverRuns(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	release := make(chan struct{})
	go func() {
		_ = q.Do(context.Background(), func(context.Context) error {
			<-release
			return nil
		})
	}()
	time.Sleep(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	var ran atomic.Bool
	errCh := make(chan error, 1)
	go func() {
		errCh <- q.Do(ctx, func(context.Context) error {
			ran.Store(true)
			return nil
		})
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()

	err := <-errCh
	assert.ErrorIs(t, err, context.Canceled)
	close(release)

	require.NoError(t, q.Do(context.Background(), func(context.Context) error { return nil }))
	assert.False(t, ran.Load())
}

func TestQueueRecoversPanics(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	err := q.Do(context.Background(), func(context.Context) error { panic("boom") })
	assert.ErrorContains(t, err, "boom")

	sentinel := errors.New("sentinel")
	err = q.Do(context.Background(), func(context.Context) error { return sentinel })
	assert.ErrorIs(t, err, sentinel)
}

func TestQueueClosed(t *testing.T) {
	q := NewQueue()
	q.Close()
	err := q.Do(context.Background(), func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrQueueClosed)
}
