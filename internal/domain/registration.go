package domain

type FeeStatus string

const (
	FeeUnpaid FeeStatus = "Unpaid"
	FeePaid   FeeStatus = "Paid"
)

func (s FeeStatus) Valid() bool {
	return s == FeeUnpaid || s == FeePaid
}

type Registration struct {
	CustomerID   int       `json:"customerId"`
	EventID      int       `json:"eventId"`
	TicketNumber int       `json:"ticketNumber"`
	FeeStatus    FeeStatus `json:"feeStatus"`
}

// EventRegistration is a registration row joined with its customer.
type EventRegistration struct {
	Registration
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
}

// CustomerRegistration is a registration row joined with its event.
type CustomerRegistration struct {
	Registration
	EventName  string `json:"eventName"`
	EventVenue string `json:"eventVenue"`
	StartDate  string `json:"startDate"`
}
