package dao

import "strconv"

type Event struct {
	ID          int32
	OrgID       int32
	Name        string
	OrgName     string
	Venue       string
	StartDate   string
	EndDate     string
	TotalSeats  int32
	SoldTickets int32
	Type        int32
}

func (e Event) Key() int32 { return e.ID }

func (e Event) Field(name string) (string, bool) {
	switch name {
	case "id":
		return strconv.Itoa(int(e.ID)), true
	case "orgId":
		return strconv.Itoa(int(e.OrgID)), true
	case "name":
		return e.Name, true
	case "orgName":
		return e.OrgName, true
	case "venue":
		return e.Venue, true
	case "startDate":
		return e.StartDate, true
	case "endDate":
		return e.EndDate, true
	case "totalSeats":
		return strconv.Itoa(int(e.TotalSeats)), true
	case "soldTickets":
		return strconv.Itoa(int(e.SoldTickets)), true
	case "type":
		return strconv.Itoa(int(e.Type)), true
	}
	return "", false
}

// IsFull reports whether every seat has been sold.
func (e Event) IsFull() bool {
	return e.SoldTickets >= e.TotalSeats
}

type eventRaw struct {
	ID          int32
	OrgID       int32
	Name        [50]byte
	OrgName     [50]byte
	Venue       [50]byte
	StartDate   [20]byte
	EndDate     [20]byte
	_           [2]byte
	TotalSeats  int32
	SoldTickets int32
	Type        int32
}

var eventCodec = newRawCodec(
	func(e Event) eventRaw {
		return eventRaw{
			ID:          e.ID,
			OrgID:       e.OrgID,
			Name:        fixed50(e.Name),
			OrgName:     fixed50(e.OrgName),
			Venue:       fixed50(e.Venue),
			StartDate:   fixed20(e.StartDate),
			EndDate:     fixed20(e.EndDate),
			TotalSeats:  e.TotalSeats,
			SoldTickets: e.SoldTickets,
			Type:        e.Type,
		}
	},
	func(r *eventRaw) Event {
		return Event{
			ID:          r.ID,
			OrgID:       r.OrgID,
			Name:        getString(r.Name[:]),
			OrgName:     getString(r.OrgName[:]),
			Venue:       getString(r.Venue[:]),
			StartDate:   getString(r.StartDate[:]),
			EndDate:     getString(r.EndDate[:]),
			TotalSeats:  r.TotalSeats,
			SoldTickets: r.SoldTickets,
			Type:        r.Type,
		}
	},
)

func EventCodec() Codec[Event] { return eventCodec }
