package dao

import (
	"errors"
	"fmt"
	"strings"
)

var ErrWidthMismatch = errors.New("data file does not match the configured record width")

// Layout versions the byte layout shared with the console process. Widths are
// never assumed global: every table resolves its codec through a Layout.
type Layout int

const (
	// LayoutV1 is the legacy reader layout: organiser and customer records
	// were walked in 140-byte strides, leaving 16 bytes for the password.
	LayoutV1 Layout = 1
	// LayoutV2 matches the console process structs byte for byte, including
	// alignment padding before numeric fields.
	LayoutV2 Layout = 2
)

func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "v2", "2":
		return LayoutV2, nil
	case "v1", "1":
		return LayoutV1, nil
	}
	return 0, fmt.Errorf("unknown record layout %q", s)
}

func (l Layout) String() string {
	return fmt.Sprintf("v%d", int(l))
}

// Entity names one record type and its file.
type Entity string

const (
	EntityOrganiser    Entity = "organiser"
	EntityCustomer     Entity = "customer"
	EntityEvent        Entity = "event"
	EntityStaff        Entity = "staff"
	EntityVendor       Entity = "vendor"
	EntityRegistration Entity = "registration"
)

var Entities = []Entity{
	EntityOrganiser, EntityCustomer, EntityEvent, EntityStaff, EntityVendor, EntityRegistration,
}

// FileName is the file the console process uses for the entity.
func (e Entity) FileName() string {
	switch e {
	case EntityOrganiser:
		return "organisers.dat"
	case EntityCustomer:
		return "customers.dat"
	case EntityEvent:
		return "events.dat"
	case EntityStaff:
		return "staff.dat"
	case EntityVendor:
		return "vendors.dat"
	case EntityRegistration:
		return "registrations.dat"
	}
	return string(e) + ".dat"
}

func ParseEntity(s string) (Entity, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimSuffix(s, "s")
	for _, e := range Entities {
		if string(e) == s {
			return e, nil
		}
	}
	return "", fmt.Errorf("unknown entity %q", s)
}

// Width reports the record width of an entity under this layout.
func (l Layout) Width(e Entity) int {
	switch e {
	case EntityOrganiser, EntityCustomer:
		return UserCodec(l).Width()
	case EntityEvent:
		return EventCodec().Width()
	case EntityStaff:
		return StaffCodec().Width()
	case EntityVendor:
		return VendorCodec().Width()
	case EntityRegistration:
		return RegistrationCodec().Width()
	}
	return 0
}
