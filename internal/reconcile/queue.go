package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gammazero/workerpool"
	"go.uber.org/zap"
)

var ErrQueueClosed = errors.New("write queue is closed")

// Queue runs every mutation and projection rebuild one at a time, so at most
// one console process is in flight against the data directory.
type Queue struct {
	mu     sync.RWMutex
	pool   *workerpool.WorkerPool
	closed bool
}

func NewQueue() *Queue {
	return &Queue{
		pool: workerpool.New(1),
	}
}

const (
	taskQueued int32 = iota
	taskRunning
	taskAbandoned
)

// Do runs fn on the queue and waits for it. If ctx is cancelled while fn is
// still queued, fn never runs and ctx.Err() is returned. Once fn has started
// Do waits for it to finish.
func (q *Queue) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	var state atomic.Int32
	done := make(chan error, 1)

	err := q.submit(func() {
		if !state.CompareAndSwap(taskQueued, taskRunning) {
			return
		}
		done <- runGuarded(ctx, fn)
	})
	if err != nil {
		return err
	}

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		if state.CompareAndSwap(taskQueued, taskAbandoned) {
			return ctx.Err()
		}
		return <-done
	}
}

// Submit enqueues fn without waiting. Errors are logged.
func (q *Queue) Submit(name string, fn func(ctx context.Context) error) {
	err := q.submit(func() {
		if err := runGuarded(context.Background(), fn); err != nil {
			zap.L().Error("queued task failed", zap.String("task", name), zap.Error(err))
		}
	})
	if err != nil {
		zap.L().Debug("task dropped", zap.String("task", name), zap.Error(err))
	}
}

func (q *Queue) submit(task func()) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}
	q.pool.Submit(task)
	return nil
}

// Close waits for queued tasks and stops the worker.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.mu.Unlock()
	q.pool.StopWait()
}

func runGuarded(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in queued task: %v", r)
		}
	}()
	return fn(ctx)
}
