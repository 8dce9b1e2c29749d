package reconcile

import (
	"context"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/eventdesk/internal/domain"
	"github.com/vietanh2810/eventdesk/internal/repository/dao"
)

func TestWatcherBatchesDatChanges(t *testing.T) {
	store, err := dao.Open(t.TempDir(), dao.LayoutV2)
	require.NoError(t, err)

	batches := make(chan []domain.Change, 4)
	w := NewWatcher(store.Dir, 50*time.Millisecond, func(changes []domain.Change) { batches <- changes })
	feed, unsubscribe := w.Subscribe()
	defer unsubscribe()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()
	time.Sleep(100 * time.Millisecond)

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Staff.Append(dao.Staff{ID: int32(100 + i), EventID: 1}))
	}

	select {
	case batch := <-batches:
		require.NotEmpty(t, batch)
		assert.Equal(t, "staff", batch[0].Entity)
		assert.Equal(t, "staff.dat", batch[0].File)
	case <-time.After(5 * time.Second):
		t.Fatal("no change batch")
	}

	select {
	case c := <-feed:
		assert.Equal(t, "staff.dat", c.File)
	case <-time.After(time.Second):
		t.Fatal("subscriber saw nothing")
	}
}

func TestWatcherIgnoresProjectionFiles(t *testing.T) {
	w := NewWatcher(t.TempDir(), 0, nil)
	_, ok := w.classify(fsnotifyEvent("events.json"))
	assert.False(t, ok)
	_, ok = w.classify(fsnotifyEvent(".events.dat.1234.tmp"))
	assert.False(t, ok)
	c, ok := w.classify(fsnotifyEvent("registrations.dat"))
	assert.True(t, ok)
	assert.Equal(t, "registration", c.Entity)
}

func fsnotifyEvent(name string) fsnotify.Event {
	return fsnotify.Event{Name: name, Op: fsnotify.Write}
}
