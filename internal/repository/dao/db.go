package dao

import (
	"errors"
	"fmt"
	"os"
)

// Store groups the six tables of one data directory under one layout.
type Store struct {
	Dir           string
	Layout        Layout
	Organisers    *Table[User]
	Customers     *Table[User]
	Events        *Table[Event]
	Staff         *Table[Staff]
	Vendors       *Table[Vendor]
	Registrations *Table[Registration]
}

func Open(dataDir string, layout Layout) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("dao.Open(%s) -> %w", dataDir, err)
	}
	return &Store{
		Dir:           dataDir,
		Layout:        layout,
		Organisers:    NewTable(dataDir, EntityOrganiser, UserCodec(layout)),
		Customers:     NewTable(dataDir, EntityCustomer, UserCodec(layout)),
		Events:        NewTable(dataDir, EntityEvent, EventCodec()),
		Staff:         NewTable(dataDir, EntityStaff, StaffCodec()),
		Vendors:       NewTable(dataDir, EntityVendor, VendorCodec()),
		Registrations: NewTable(dataDir, EntityRegistration, RegistrationCodec()),
	}, nil
}

func (s *Store) otherWidths(e Entity) []int {
	var widths []int
	for _, l := range []Layout{LayoutV1, LayoutV2} {
		if l != s.Layout {
			widths = append(widths, l.Width(e))
		}
	}
	return widths
}

// Verify checks every table against the configured layout and joins the failures.
func (s *Store) Verify() error {
	var errs []error
	check := func(e Entity, verify func(...int) error) {
		if err := verify(s.otherWidths(e)...); err != nil {
			errs = append(errs, err)
		}
	}
	check(EntityOrganiser, s.Organisers.Verify)
	check(EntityCustomer, s.Customers.Verify)
	check(EntityEvent, s.Events.Verify)
	check(EntityStaff, s.Staff.Verify)
	check(EntityVendor, s.Vendors.Verify)
	check(EntityRegistration, s.Registrations.Verify)
	return errors.Join(errs...)
}

// Migrate rewrites an entity file written under from into the configured layout.
func (s *Store) Migrate(e Entity, from Layout) (int, error) {
	if from == s.Layout {
		return 0, nil
	}
	switch e {
	case EntityOrganiser:
		return s.Organisers.Migrate(UserCodec(from))
	case EntityCustomer:
		return s.Customers.Migrate(UserCodec(from))
	}
	// Only the user layouts changed between versions.
	return 0, nil
}
