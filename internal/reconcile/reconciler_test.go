package reconcile

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwaitFirstRead(t *testing.T) {
	r := NewReconciler(time.Millisecond)
	calls := 0
	v, err := Await(context.Background(), r, "staff 731", func() (int, bool, error) {
		calls++
		return 731, true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 731, v)
	assert.Equal(t, 1, calls)
}

func TestAwaitSettleRetry(t *testing.T) {
	r := NewReconciler(10 * time.Millisecond)
	calls := 0
	v, err := Await(context.Background(), r, "staff 731", func() (int, bool, error) {
		calls++
		return 731, calls == 2, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 731, v)
	assert.Equal(t, 2, calls)
}

func TestAwaitNotSettled(t *testing.T) {
	r := NewReconciler(time.Millisecond)
	calls := 0
	_, err := Await(context.Background(), r, "staff 731", func() (int, bool, error) {
		calls++
		return 0, false, nil
	})
	assert.ErrorIs(t, err, ErrNotSettled)
	assert.Equal(t, 2, calls)
}

func TestAwaitNewDiffsSnapshot(t *testing.T) {
	type rec struct {
		id   int32
		name string
	}
	r := NewReconciler(time.Millisecond)
	records := []rec{{100, "Dana"}, {200, "Eve"}, {300, "Dana"}}

	got, err := AwaitNew(context.Background(), r, "staff Dana", []int32{100, 200},
		func() ([]rec, error) { return records, nil },
		func(x rec) int32 { return x.id },
		func(x rec) bool { return x.name == "Dana" },
	)
	require.NoError(t, err)
	assert.Equal(t, int32(300), got.id)

	_, err = AwaitNew(context.Background(), r, "staff Zed", []int32{100, 200, 300},
		func() ([]rec, error) { return records, nil },
		func(x rec) int32 { return x.id },
		func(x rec) bool { return true },
	)
	assert.ErrorIs(t, err, ErrNotSettled)
}
