package domain

import (
	"fmt"
	"strings"
	"time"
)

type EventType int

const (
	EventTypeMUN EventType = iota + 1
	EventTypeOlympiad
	EventTypeSeminar
	EventTypeCeremony
	EventTypeFestival
	EventTypeConcert
	EventTypeCustom
)

var eventTypeNames = map[EventType]string{
	EventTypeMUN:      "MUN",
	EventTypeOlympiad: "OLYMPIAD",
	EventTypeSeminar:  "SEMINAR",
	EventTypeCeremony: "CEREMONY",
	EventTypeFestival: "FESTIVAL",
	EventTypeConcert:  "CONCERT",
	EventTypeCustom:   "CUSTOM",
}

func (t EventType) Valid() bool {
	_, ok := eventTypeNames[t]
	return ok
}

func (t EventType) String() string {
	if name, ok := eventTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

func ParseEventType(s string) (EventType, error) {
	for t, name := range eventTypeNames {
		if strings.EqualFold(name, s) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown event type %q", s)
}

// DateLayout is the date format stored in the 20-byte date fields.
const DateLayout = "2006-01-02"

type Event struct {
	ID            int       `json:"id"`
	OrganiserID   int       `json:"orgId"`
	Name          string    `json:"name"`
	OrganiserName string    `json:"orgName"`
	Venue         string    `json:"venue"`
	StartDate     string    `json:"startDate"`
	EndDate       string    `json:"endDate"`
	TotalSeats    int       `json:"totalSeats"`
	SoldTickets   int       `json:"soldTickets"`
	Type          EventType `json:"type"`
}

func (e Event) IsFull() bool {
	return e.SoldTickets >= e.TotalSeats
}

func (e Event) Remaining() int {
	if e.IsFull() {
		return 0
	}
	return e.TotalSeats - e.SoldTickets
}

// Dates parses the stored start and end dates.
func (e Event) Dates() (time.Time, time.Time, error) {
	start, err := time.Parse(DateLayout, e.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start date: %w", err)
	}
	end, err := time.Parse(DateLayout, e.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end date: %w", err)
	}
	return start, end, nil
}

// EventPatch holds the fields ModifyEvent may change; nil means unchanged.
type EventPatch struct {
	Name       *string
	Venue      *string
	StartDate  *string
	EndDate    *string
	TotalSeats *int
	Type       *EventType
}

func (p EventPatch) Apply(e Event) Event {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Venue != nil {
		e.Venue = *p.Venue
	}
	if p.StartDate != nil {
		e.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		e.EndDate = *p.EndDate
	}
	if p.TotalSeats != nil {
		e.TotalSeats = *p.TotalSeats
	}
	if p.Type != nil {
		e.Type = *p.Type
	}
	return e
}

type EventSummary struct {
	EventID           int `json:"eventId"`
	TotalSeats        int `json:"totalSeats"`
	SoldTickets       int `json:"soldTickets"`
	Remaining         int `json:"remaining"`
	StaffCount        int `json:"staffCount"`
	VendorCount       int `json:"vendorCount"`
	RegistrationCount int `json:"registrationCount"`
	PaidCount         int `json:"paidCount"`
}
