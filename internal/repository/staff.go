package repository

import (
	"fmt"

	"github.com/vietanh2810/eventdesk/internal/domain"
	"github.com/vietanh2810/eventdesk/internal/repository/dao"
)

type StaffRepository struct {
	table Table[dao.Staff]
}

func NewStaffRepository(table Table[dao.Staff]) *StaffRepository {
	return &StaffRepository{
		table: table,
	}
}

func (r *StaffRepository) List() ([]domain.Staff, error) {
	all, err := r.table.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("r.table.ReadAll -> %w", err)
	}

	return mapAll(all, daoToDomainStaff), nil
}

func (r *StaffRepository) FindByID(id int) (domain.Staff, error) {
	k, ok := key(id)
	if !ok {
		return domain.Staff{}, fmt.Errorf("id %d -> %w", id, ErrNotFound)
	}

	found, err := r.table.FindByID(k)
	if err != nil {
		return domain.Staff{}, fmt.Errorf("r.table.FindByID -> %w", err)
	}

	return daoToDomainStaff(found), nil
}

func (r *StaffRepository) ListByEvent(eventID int) ([]domain.Staff, error) {
	found, err := r.table.Filter(func(s dao.Staff) bool { return int(s.EventID) == eventID })
	if err != nil {
		return nil, fmt.Errorf("r.table.Filter -> %w", err)
	}

	return mapAll(found, daoToDomainStaff), nil
}

func (r *StaffRepository) IDs() ([]int32, error) {
	keys, err := r.table.Keys()
	if err != nil {
		return nil, fmt.Errorf("r.table.Keys -> %w", err)
	}

	return keys, nil
}

func daoToDomainStaff(s dao.Staff) domain.Staff {
	return domain.Staff{
		ID:       int(s.ID),
		EventID:  int(s.EventID),
		Name:     s.Name,
		Email:    s.Email,
		Team:     s.Team,
		Position: s.Position,
	}
}
