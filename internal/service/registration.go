package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/vietanh2810/eventdesk/internal/bridge"
	"github.com/vietanh2810/eventdesk/internal/domain"
	"github.com/vietanh2810/eventdesk/internal/reconcile"
)

// Shown for registrations whose customer record is gone.
const (
	UnknownCustomerName  = "Unknown"
	UnknownCustomerEmail = "unknown@email.com"
)

type RegistrationRepository interface {
	List() ([]domain.Registration, error)
	ListByEvent(eventID int) ([]domain.Registration, error)
	ListByCustomer(customerID int) ([]domain.Registration, error)
	Find(customerID, eventID int) (domain.Registration, error)
	NewTicket() (int, error)
}

type RegistrationService struct {
	customers     UserRepository
	events        *EventService
	registrations RegistrationRepository
	bridge        Bridge
	settle        *reconcile.Reconciler
}

func NewRegistrationService(customers UserRepository, events *EventService, registrations RegistrationRepository,
	b Bridge, settle *reconcile.Reconciler) *RegistrationService {
	return &RegistrationService{
		customers:     customers,
		events:        events,
		registrations: registrations,
		bridge:        b,
		settle:        settle,
	}
}

// Register books one seat for the customer. The ticket is written by the
// console process; the sold count is bumped only once the store shows it.
func (s *RegistrationService) Register(ctx context.Context, customerID, eventID int) (domain.Registration, error) {
	if _, err := s.customers.FindByID(customerID); err != nil {
		return domain.Registration{}, fmt.Errorf("s.customers.FindByID -> %w", notFound(err, ErrCustomerNotFound))
	}

	event, err := s.events.Get(eventID)
	if err != nil {
		return domain.Registration{}, err
	}

	_, err = s.registrations.Find(customerID, eventID)
	if err == nil {
		return domain.Registration{}, ErrAlreadyRegistered
	}
	if !errors.Is(err, ErrNotFound) {
		return domain.Registration{}, fmt.Errorf("s.registrations.Find -> %w", err)
	}

	if event.IsFull() {
		return domain.Registration{}, ErrEventFull
	}

	ticket, err := s.registrations.NewTicket()
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.registrations.NewTicket -> %w", err)
	}

	_, err = mutate(ctx, s.bridge, bridge.AddRegistration{
		CustomerID:   customerID,
		EventID:      eventID,
		TicketNumber: ticket,
		FeeStatus:    string(domain.FeeUnpaid),
	}, nil)
	if err != nil {
		return domain.Registration{}, err
	}

	reg, err := reconcile.Await(ctx, s.settle, fmt.Sprintf("ticket %d", ticket), func() (domain.Registration, bool, error) {
		r, err := s.registrations.Find(customerID, eventID)
		if errors.Is(err, ErrNotFound) {
			return r, false, nil
		}
		if err != nil {
			return r, false, err
		}
		return r, r.TicketNumber == ticket, nil
	})
	if err != nil {
		return domain.Registration{}, err
	}

	if _, err := s.events.SellTicket(eventID); err != nil {
		// The registration is on disk but the event's sold count is not.
		zap.L().Error("registration stored without a sold ticket",
			zap.Int("customer_id", customerID),
			zap.Int("event_id", eventID),
			zap.Int("ticket", ticket),
			zap.Error(err),
		)
		return domain.Registration{}, fmt.Errorf("ticket %d registered, s.events.SellTicket -> %w", ticket, err)
	}

	return reg, nil
}

func (s *RegistrationService) ListByEvent(eventID int) ([]domain.EventRegistration, error) {
	if _, err := s.events.Get(eventID); err != nil {
		return nil, err
	}

	regs, err := s.registrations.ListByEvent(eventID)
	if err != nil {
		return nil, fmt.Errorf("s.registrations.ListByEvent -> %w", err)
	}

	rows := make([]domain.EventRegistration, 0, len(regs))
	for _, r := range regs {
		row := domain.EventRegistration{
			Registration:  r,
			CustomerName:  UnknownCustomerName,
			CustomerEmail: UnknownCustomerEmail,
		}

		c, err := s.customers.FindByID(r.CustomerID)
		switch {
		case err == nil:
			row.CustomerName, row.CustomerEmail = c.Name, c.Email
		case !errors.Is(err, ErrNotFound):
			return nil, fmt.Errorf("s.customers.FindByID -> %w", err)
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// ListByCustomer joins a customer's registrations with their events, leaving
// out registrations of deleted events.
func (s *RegistrationService) ListByCustomer(customerID int) ([]domain.CustomerRegistration, error) {
	regs, err := s.registrations.ListByCustomer(customerID)
	if err != nil {
		return nil, fmt.Errorf("s.registrations.ListByCustomer -> %w", err)
	}

	events, err := s.events.List()
	if err != nil {
		return nil, err
	}
	byID := make(map[int]domain.Event, len(events))
	for _, e := range events {
		if _, dup := byID[e.ID]; !dup {
			byID[e.ID] = e
		}
	}

	rows := make([]domain.CustomerRegistration, 0, len(regs))
	for _, r := range regs {
		e, ok := byID[r.EventID]
		if !ok {
			continue
		}
		rows = append(rows, domain.CustomerRegistration{
			Registration: r,
			EventName:    e.Name,
			EventVenue:   e.Venue,
			StartDate:    e.StartDate,
		})
	}

	return rows, nil
}

func (s *RegistrationService) UpdateFeeStatus(ctx context.Context, session domain.Session, customerID, eventID int,
	status domain.FeeStatus) (domain.Registration, error) {
	if err := validateFeeStatus(status); err != nil {
		return domain.Registration{}, err
	}

	if _, err := s.registrations.Find(customerID, eventID); err != nil {
		return domain.Registration{}, fmt.Errorf("s.registrations.Find -> %w", notFound(err, ErrRegistrationNotFound))
	}
	if _, err := s.events.Owned(session, eventID); err != nil {
		return domain.Registration{}, err
	}

	_, err := mutate(ctx, s.bridge, bridge.UpdateFeeStatus{
		CustomerID: customerID,
		EventID:    eventID,
		FeeStatus:  string(status),
	}, ErrRegistrationNotFound)
	if err != nil {
		return domain.Registration{}, err
	}

	return reconcile.Await(ctx, s.settle, fmt.Sprintf("fee status %d/%d", customerID, eventID),
		func() (domain.Registration, bool, error) {
			r, err := s.registrations.Find(customerID, eventID)
			if errors.Is(err, ErrNotFound) {
				return r, false, nil
			}
			if err != nil {
				return r, false, err
			}
			return r, r.FeeStatus == status, nil
		})
}
