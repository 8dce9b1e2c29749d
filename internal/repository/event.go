package repository

import (
	"fmt"

	"github.com/vietanh2810/eventdesk/internal/domain"
	"github.com/vietanh2810/eventdesk/internal/repository/dao"
)

// EventRepository owns events.dat; the console process keeps no event file,
// so this is the only writer.
type EventRepository struct {
	table Table[dao.Event]
}

func NewEventRepository(table Table[dao.Event]) *EventRepository {
	return &EventRepository{
		table: table,
	}
}

func (r *EventRepository) List() ([]domain.Event, error) {
	all, err := r.table.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("r.table.ReadAll -> %w", err)
	}

	return mapAll(all, daoToDomainEvent), nil
}

func (r *EventRepository) FindByID(id int) (domain.Event, error) {
	k, ok := key(id)
	if !ok {
		return domain.Event{}, fmt.Errorf("id %d -> %w", id, ErrNotFound)
	}

	found, err := r.table.FindByID(k)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.table.FindByID -> %w", err)
	}

	return daoToDomainEvent(found), nil
}

func (r *EventRepository) ListByOrganiser(orgID int) ([]domain.Event, error) {
	found, err := r.table.Filter(func(e dao.Event) bool { return int(e.OrgID) == orgID })
	if err != nil {
		return nil, fmt.Errorf("r.table.Filter -> %w", err)
	}

	return mapAll(found, daoToDomainEvent), nil
}

// Create allocates an id the way the console process does and appends the event.
func (r *EventRepository) Create(event domain.Event) (domain.Event, error) {
	keys, err := r.table.Keys()
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.table.Keys -> %w", err)
	}
	id, err := dao.NextKey(keys, dao.IDMin, dao.IDMax, nil)
	if err != nil {
		return domain.Event{}, fmt.Errorf("dao.NextKey -> %w", err)
	}
	event.ID = int(id)

	rec := domainToDaoEvent(event)
	if err := r.table.Append(rec); err != nil {
		return domain.Event{}, fmt.Errorf("r.table.Append -> %w", err)
	}

	return stored(rec), nil
}

// Update rewrites the first record with the event's id.
func (r *EventRepository) Update(event domain.Event) (domain.Event, error) {
	all, err := r.table.ReadAll()
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.table.ReadAll -> %w", err)
	}

	rec := domainToDaoEvent(event)
	replaced := false
	for i := range all {
		if int(all[i].ID) == event.ID {
			all[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		return domain.Event{}, fmt.Errorf("event %d -> %w", event.ID, ErrNotFound)
	}

	if err := r.table.Rewrite(all); err != nil {
		return domain.Event{}, fmt.Errorf("r.table.Rewrite -> %w", err)
	}

	return stored(rec), nil
}

// Delete removes every record carrying the id.
func (r *EventRepository) Delete(id int) error {
	all, err := r.table.ReadAll()
	if err != nil {
		return fmt.Errorf("r.table.ReadAll -> %w", err)
	}

	kept := make([]dao.Event, 0, len(all))
	for _, e := range all {
		if int(e.ID) != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(all) {
		return fmt.Errorf("event %d -> %w", id, ErrNotFound)
	}

	if err := r.table.Rewrite(kept); err != nil {
		return fmt.Errorf("r.table.Rewrite -> %w", err)
	}

	return nil
}

// stored is the event as a later read returns it: text truncated to its field
// and decoded the way the codec decodes it.
func stored(rec dao.Event) domain.Event {
	return daoToDomainEvent(dao.RoundTrip(dao.EventCodec(), rec))
}

func daoToDomainEvent(e dao.Event) domain.Event {
	return domain.Event{
		ID:            int(e.ID),
		OrganiserID:   int(e.OrgID),
		Name:          e.Name,
		OrganiserName: e.OrgName,
		Venue:         e.Venue,
		StartDate:     e.StartDate,
		EndDate:       e.EndDate,
		TotalSeats:    int(e.TotalSeats),
		SoldTickets:   int(e.SoldTickets),
		Type:          domain.EventType(e.Type),
	}
}

func domainToDaoEvent(e domain.Event) dao.Event {
	return dao.Event{
		ID:          int32(e.ID),
		OrgID:       int32(e.OrganiserID),
		Name:        e.Name,
		OrgName:     e.OrganiserName,
		Venue:       e.Venue,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		TotalSeats:  int32(e.TotalSeats),
		SoldTickets: int32(e.SoldTickets),
		Type:        int32(e.Type),
	}
}
