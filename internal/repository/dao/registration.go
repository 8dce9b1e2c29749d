package dao

import "strconv"

const (
	FeeStatusUnpaid = "Unpaid"
	FeeStatusPaid   = "Paid"
)

// Registration has no id of its own; the ticket number is its key.
type Registration struct {
	CustomerID   int32
	EventID      int32
	TicketNumber int32
	FeeStatus    string
}

func (r Registration) Key() int32 { return r.TicketNumber }

func (r Registration) Field(name string) (string, bool) {
	switch name {
	case "customerId":
		return strconv.Itoa(int(r.CustomerID)), true
	case "eventId":
		return strconv.Itoa(int(r.EventID)), true
	case "ticketNumber":
		return strconv.Itoa(int(r.TicketNumber)), true
	case "feeStatus":
		return r.FeeStatus, true
	}
	return "", false
}

type registrationRaw struct {
	CustomerID   int32
	EventID      int32
	TicketNumber int32
	FeeStatus    [10]byte
	_            [2]byte
}

var registrationCodec = newRawCodec(
	func(r Registration) registrationRaw {
		return registrationRaw{
			CustomerID:   r.CustomerID,
			EventID:      r.EventID,
			TicketNumber: r.TicketNumber,
			FeeStatus:    fixed10(r.FeeStatus),
		}
	},
	func(r *registrationRaw) Registration {
		return Registration{
			CustomerID:   r.CustomerID,
			EventID:      r.EventID,
			TicketNumber: r.TicketNumber,
			FeeStatus:    getString(r.FeeStatus[:]),
		}
	},
)

func RegistrationCodec() Codec[Registration] { return registrationCodec }
