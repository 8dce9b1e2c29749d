package repository

import (
	"fmt"

	"github.com/vietanh2810/eventdesk/internal/domain"
	"github.com/vietanh2810/eventdesk/internal/repository/dao"
)

type RegistrationRepository struct {
	table Table[dao.Registration]
}

func NewRegistrationRepository(table Table[dao.Registration]) *RegistrationRepository {
	return &RegistrationRepository{
		table: table,
	}
}

func (r *RegistrationRepository) List() ([]domain.Registration, error) {
	all, err := r.table.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("r.table.ReadAll -> %w", err)
	}

	return mapAll(all, daoToDomainRegistration), nil
}

func (r *RegistrationRepository) ListByEvent(eventID int) ([]domain.Registration, error) {
	found, err := r.table.Filter(func(reg dao.Registration) bool { return int(reg.EventID) == eventID })
	if err != nil {
		return nil, fmt.Errorf("r.table.Filter -> %w", err)
	}

	return mapAll(found, daoToDomainRegistration), nil
}

func (r *RegistrationRepository) ListByCustomer(customerID int) ([]domain.Registration, error) {
	found, err := r.table.Filter(func(reg dao.Registration) bool { return int(reg.CustomerID) == customerID })
	if err != nil {
		return nil, fmt.Errorf("r.table.Filter -> %w", err)
	}

	return mapAll(found, daoToDomainRegistration), nil
}

// Find returns the first registration of a customer for an event.
func (r *RegistrationRepository) Find(customerID, eventID int) (domain.Registration, error) {
	found, err := r.table.Filter(func(reg dao.Registration) bool {
		return int(reg.CustomerID) == customerID && int(reg.EventID) == eventID
	})
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.table.Filter -> %w", err)
	}
	if len(found) == 0 {
		return domain.Registration{}, fmt.Errorf("registration %d/%d -> %w", customerID, eventID, ErrNotFound)
	}

	return daoToDomainRegistration(found[0]), nil
}

// NewTicket picks a ticket number no registration uses yet.
func (r *RegistrationRepository) NewTicket() (int, error) {
	keys, err := r.table.Keys()
	if err != nil {
		return 0, fmt.Errorf("r.table.Keys -> %w", err)
	}
	ticket, err := dao.NextKey(keys, dao.TicketMin, dao.TicketMax, nil)
	if err != nil {
		return 0, fmt.Errorf("dao.NextKey -> %w", err)
	}

	return int(ticket), nil
}

func daoToDomainRegistration(reg dao.Registration) domain.Registration {
	return domain.Registration{
		CustomerID:   int(reg.CustomerID),
		EventID:      int(reg.EventID),
		TicketNumber: int(reg.TicketNumber),
		FeeStatus:    domain.FeeStatus(reg.FeeStatus),
	}
}
