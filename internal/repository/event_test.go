package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/eventdesk/internal/domain"
	"github.com/vietanh2810/eventdesk/internal/repository/dao"
)

func newEventRepository(t *testing.T) *EventRepository {
	store, err := dao.Open(t.TempDir(), dao.LayoutV2)
	require.NoError(t, err)
	return NewEventRepository(store.Events)
}

func TestEventRepositoryLifecycle(t *testing.T) {
	repo := newEventRepository(t)

	created, err := repo.Create(domain.Event{
		OrganiserID: 7,
		Name:        "Summer Fest",
		Venue:       "Central Park",
		StartDate:   "2025-06-01",
		EndDate:     "2025-06-03",
		TotalSeats:  500,
		Type:        domain.EventTypeFestival,
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, created.ID, dao.IDMin)
	assert.LessOrEqual(t, created.ID, dao.IDMax)

	found, err := repo.FindByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, found)

	created.SoldTickets = 3
	_, err = repo.Update(created)
	require.NoError(t, err)

	byOrg, err := repo.ListByOrganiser(7)
	require.NoError(t, err)
	require.Len(t, byOrg, 1)
	assert.Equal(t, 3, byOrg[0].SoldTickets)

	require.NoError(t, repo.Delete(created.ID))
	_, err = repo.FindByID(created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(created.ID), ErrNotFound)
}

func TestRegistrationRepositoryFind(t *testing.T) {
	store, err := dao.Open(t.TempDir(), dao.LayoutV2)
	require.NoError(t, err)
	repo := NewRegistrationRepository(store.Registrations)

	require.NoError(t, store.Registrations.Append(dao.Registration{CustomerID: 42, EventID: 1, TicketNumber: 10532, FeeStatus: "Unpaid"}))

	reg, err := repo.Find(42, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.FeeUnpaid, reg.FeeStatus)

	_, err = repo.Find(42, 2)
	assert.ErrorIs(t, err, ErrNotFound)

	ticket, err := repo.NewTicket()
	require.NoError(t, err)
	assert.NotEqual(t, 10532, ticket)
	assert.GreaterOrEqual(t, ticket, dao.TicketMin)
}
