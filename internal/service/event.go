package service

import (
	"fmt"

	"github.com/vietanh2810/eventdesk/internal/domain"
)

type EventRepository interface {
	List() ([]domain.Event, error)
	FindByID(id int) (domain.Event, error)
	ListByOrganiser(orgID int) ([]domain.Event, error)
	Create(event domain.Event) (domain.Event, error)
	Update(event domain.Event) (domain.Event, error)
	Delete(id int) error
}

type EventService struct {
	events        EventRepository
	organisers    UserRepository
	staff         StaffRepository
	vendors       VendorRepository
	registrations RegistrationRepository
}

func NewEventService(events EventRepository, organisers UserRepository, staff StaffRepository,
	vendors VendorRepository, registrations RegistrationRepository) *EventService {
	return &EventService{
		events:        events,
		organisers:    organisers,
		staff:         staff,
		vendors:       vendors,
		registrations: registrations,
	}
}

// EventInput is the organiser-supplied part of a new event.
type EventInput struct {
	Name       string
	Venue      string
	StartDate  string
	EndDate    string
	TotalSeats int
	Type       domain.EventType
}

func (s *EventService) Create(session domain.Session, input EventInput) (domain.Event, error) {
	if !session.IsOrganiser() {
		return domain.Event{}, ErrOrganiserRequired
	}

	organiser, err := s.organisers.FindByID(session.UserID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.organisers.FindByID -> %w", notFound(err, ErrOrganiserNotFound))
	}

	event := domain.Event{
		OrganiserID:   organiser.ID,
		OrganiserName: organiser.Name,
		Name:          input.Name,
		Venue:         input.Venue,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		TotalSeats:    input.TotalSeats,
		Type:          input.Type,
	}
	if err := validateEvent(&event); err != nil {
		return domain.Event{}, err
	}

	created, err := s.events.Create(event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.events.Create -> %w", err)
	}

	return created, nil
}

func (s *EventService) List() ([]domain.Event, error) {
	events, err := s.events.List()
	if err != nil {
		return nil, fmt.Errorf("s.events.List -> %w", err)
	}

	return events, nil
}

func (s *EventService) Get(id int) (domain.Event, error) {
	event, err := s.events.FindByID(id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.events.FindByID -> %w", notFound(err, ErrEventNotFound))
	}

	return event, nil
}

func (s *EventService) ListByOrganiser(orgID int) ([]domain.Event, error) {
	events, err := s.events.ListByOrganiser(orgID)
	if err != nil {
		return nil, fmt.Errorf("s.events.ListByOrganiser -> %w", err)
	}

	return events, nil
}

// Owned returns the event if the session's organiser owns it.
func (s *EventService) Owned(session domain.Session, id int) (domain.Event, error) {
	if !session.IsOrganiser() {
		return domain.Event{}, ErrOrganiserRequired
	}

	event, err := s.Get(id)
	if err != nil {
		return domain.Event{}, err
	}
	if event.OrganiserID != session.UserID {
		return domain.Event{}, ErrNotEventOwner
	}

	return event, nil
}

func (s *EventService) Modify(session domain.Session, id int, patch domain.EventPatch) (domain.Event, error) {
	event, err := s.Owned(session, id)
	if err != nil {
		return domain.Event{}, err
	}

	updated := patch.Apply(event)
	if err := validateEvent(&updated); err != nil {
		return domain.Event{}, err
	}
	if updated.TotalSeats < updated.SoldTickets {
		return domain.Event{}, ErrSeatsBelowSold
	}

	saved, err := s.events.Update(updated)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.events.Update -> %w", notFound(err, ErrEventNotFound))
	}

	return saved, nil
}

// Delete removes the event. Staff, vendors and registrations of the event are
// left in place; readers skip rows whose event is gone.
func (s *EventService) Delete(session domain.Session, id int) error {
	if _, err := s.Owned(session, id); err != nil {
		return err
	}

	if err := s.events.Delete(id); err != nil {
		return fmt.Errorf("s.events.Delete -> %w", notFound(err, ErrEventNotFound))
	}

	return nil
}

// SellTicket records one more sold ticket on the event.
func (s *EventService) SellTicket(id int) (domain.Event, error) {
	event, err := s.Get(id)
	if err != nil {
		return domain.Event{}, err
	}
	event.SoldTickets++

	saved, err := s.events.Update(event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.events.Update -> %w", notFound(err, ErrEventNotFound))
	}

	return saved, nil
}

func (s *EventService) Summary(id int) (domain.EventSummary, error) {
	event, err := s.Get(id)
	if err != nil {
		return domain.EventSummary{}, err
	}

	staff, err := s.staff.ListByEvent(id)
	if err != nil {
		return domain.EventSummary{}, fmt.Errorf("s.staff.ListByEvent -> %w", err)
	}
	vendors, err := s.vendors.ListByEvent(id)
	if err != nil {
		return domain.EventSummary{}, fmt.Errorf("s.vendors.ListByEvent -> %w", err)
	}
	regs, err := s.registrations.ListByEvent(id)
	if err != nil {
		return domain.EventSummary{}, fmt.Errorf("s.registrations.ListByEvent -> %w", err)
	}

	paid := 0
	for _, r := range regs {
		if r.FeeStatus == domain.FeePaid {
			paid++
		}
	}

	return domain.EventSummary{
		EventID:           event.ID,
		TotalSeats:        event.TotalSeats,
		SoldTickets:       event.SoldTickets,
		Remaining:         event.Remaining(),
		StaffCount:        len(staff),
		VendorCount:       len(vendors),
		RegistrationCount: len(regs),
		PaidCount:         paid,
	}, nil
}
