package reconcile

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/eventdesk/internal/repository/dao"
)

func TestProjectorRebuild(t *testing.T) {
	store, err := dao.Open(t.TempDir(), dao.LayoutV2)
	require.NoError(t, err)

	require.NoError(t, store.Events.Append(dao.Event{ID: 1, OrgID: 7, Name: "Summer Fest", TotalSeats: 500, Type: 5}))
	require.NoError(t, store.Staff.Append(dao.Staff{ID: 731, EventID: 1, Name: "Dana"}))
	require.NoError(t, store.Customers.Append(dao.User{ID: 42, Name: "Alice", Email: "alice@example.com"}))
	require.NoError(t, store.Registrations.Append(dao.Registration{CustomerID: 42, EventID: 1, TicketNumber: 10532, FeeStatus: "Unpaid"}))

	p := NewProjector(store)
	first := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return first }
	require.NoError(t, p.Rebuild(context.Background(), "test"))

	events, err := ReadEvents(store.Dir)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "FESTIVAL", events[0].TypeName)
	assert.Equal(t, 1, events[0].StaffCount)
	assert.Equal(t, 1, events[0].RegistrationCount)
	assert.Equal(t, "2025-06-01T09:00:00Z", events[0].CreatedAt)

	require.NoError(t, store.Events.Append(dao.Event{ID: 2, OrgID: 7, Name: "Winter Gala", TotalSeats: 50, Type: 4}))
	p.now = func() time.Time { return first.Add(time.Hour) }
	require.NoError(t, p.Rebuild(context.Background(), "test"))

	events, err = ReadEvents(store.Dir)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "2025-06-01T09:00:00Z", events[0].CreatedAt)
	assert.Equal(t, "2025-06-01T10:00:00Z", events[1].CreatedAt)
}
