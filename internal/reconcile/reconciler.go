package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vietanh2810/eventdesk/internal/metrics"
)

var ErrNotSettled = errors.New("store does not reflect the change after the settle retry")

const DefaultSettleDelay = 150 * time.Millisecond

// Reconciler confirms console mutations against the store. It reads once,
// waits one settle delay, reads once more, and then gives up.
type Reconciler struct {
	delay time.Duration
}

func NewReconciler(delay time.Duration) *Reconciler {
	if delay <= 0 {
		delay = DefaultSettleDelay
	}
	return &Reconciler{
		delay: delay,
	}
}

// Lookup reads the store and reports whether the expected state is present.
type Lookup[T any] func() (T, bool, error)

// Await returns the value once lookup finds it. It never invents a value: a
// second miss is ErrNotSettled.
func Await[T any](ctx context.Context, r *Reconciler, what string, lookup Lookup[T]) (T, error) {
	var zero T

	v, ok, err := lookup()
	if err != nil {
		return zero, fmt.Errorf("await %s -> %w", what, err)
	}
	if ok {
		metrics.SettleRetries.WithLabelValues("first_read").Inc()
		return v, nil
	}

	timer := time.NewTimer(r.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return zero, fmt.Errorf("await %s -> %w", what, ctx.Err())
	case <-timer.C:
	}

	v, ok, err = lookup()
	if err != nil {
		return zero, fmt.Errorf("await %s -> %w", what, err)
	}
	if ok {
		metrics.SettleRetries.WithLabelValues("retry_hit").Inc()
		return v, nil
	}

	metrics.SettleRetries.WithLabelValues("miss").Inc()
	zap.L().Warn("store did not settle", zap.String("what", what), zap.Duration("delay", r.delay))

	return zero, fmt.Errorf("await %s -> %w", what, ErrNotSettled)
}

// AwaitNew finds a record that was not in the before snapshot and matches the
// submitted fields. It serves console outputs that carry no id.
func AwaitNew[T any](ctx context.Context, r *Reconciler, what string, before []int32,
	list func() ([]T, error), key func(T) int32, match func(T) bool) (T, error) {
	seen := make(map[int32]struct{}, len(before))
	for _, k := range before {
		seen[k] = struct{}{}
	}

	return Await(ctx, r, what, func() (T, bool, error) {
		var zero T
		all, err := list()
		if err != nil {
			return zero, false, err
		}
		for _, rec := range all {
			if _, old := seen[key(rec)]; !old && match(rec) {
				return rec, true, nil
			}
		}
		return zero, false, nil
	})
}
