package repository

import (
	"fmt"

	"github.com/vietanh2810/eventdesk/internal/domain"
	"github.com/vietanh2810/eventdesk/internal/repository/dao"
)

type VendorRepository struct {
	table Table[dao.Vendor]
}

func NewVendorRepository(table Table[dao.Vendor]) *VendorRepository {
	return &VendorRepository{
		table: table,
	}
}

func (r *VendorRepository) List() ([]domain.Vendor, error) {
	all, err := r.table.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("r.table.ReadAll -> %w", err)
	}

	return mapAll(all, daoToDomainVendor), nil
}

func (r *VendorRepository) FindByID(id int) (domain.Vendor, error) {
	k, ok := key(id)
	if !ok {
		return domain.Vendor{}, fmt.Errorf("id %d -> %w", id, ErrNotFound)
	}

	found, err := r.table.FindByID(k)
	if err != nil {
		return domain.Vendor{}, fmt.Errorf("r.table.FindByID -> %w", err)
	}

	return daoToDomainVendor(found), nil
}

func (r *VendorRepository) ListByEvent(eventID int) ([]domain.Vendor, error) {
	found, err := r.table.Filter(func(v dao.Vendor) bool { return int(v.EventID) == eventID })
	if err != nil {
		return nil, fmt.Errorf("r.table.Filter -> %w", err)
	}

	return mapAll(found, daoToDomainVendor), nil
}

func (r *VendorRepository) IDs() ([]int32, error) {
	keys, err := r.table.Keys()
	if err != nil {
		return nil, fmt.Errorf("r.table.Keys -> %w", err)
	}

	return keys, nil
}

func daoToDomainVendor(v dao.Vendor) domain.Vendor {
	return domain.Vendor{
		ID:             int(v.ID),
		EventID:        int(v.EventID),
		Name:           v.Name,
		Email:          v.Email,
		ProductService: v.ProductService,
		ChargesDue:     v.ChargesDue,
	}
}
