package dao

import "strconv"

type Staff struct {
	ID       int32
	EventID  int32
	Name     string
	Email    string
	Team     string
	Position string
}

func (s Staff) Key() int32 { return s.ID }

func (s Staff) Field(name string) (string, bool) {
	switch name {
	case "id":
		return strconv.Itoa(int(s.ID)), true
	case "eventId":
		return strconv.Itoa(int(s.EventID)), true
	case "name":
		return s.Name, true
	case "email":
		return s.Email, true
	case "team":
		return s.Team, true
	case "position":
		return s.Position, true
	}
	return "", false
}

type staffRaw struct {
	ID       int32
	EventID  int32
	Name     [50]byte
	Email    [50]byte
	Team     [20]byte
	Position [20]byte
}

var staffCodec = newRawCodec(
	func(s Staff) staffRaw {
		return staffRaw{
			ID:       s.ID,
			EventID:  s.EventID,
			Name:     fixed50(s.Name),
			Email:    fixed50(s.Email),
			Team:     fixed20(s.Team),
			Position: fixed20(s.Position),
		}
	},
	func(r *staffRaw) Staff {
		return Staff{
			ID:       r.ID,
			EventID:  r.EventID,
			Name:     getString(r.Name[:]),
			Email:    getString(r.Email[:]),
			Team:     getString(r.Team[:]),
			Position: getString(r.Position[:]),
		}
	},
)

func StaffCodec() Codec[Staff] { return staffCodec }
