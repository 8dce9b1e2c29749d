package request

import (
	"math"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/vietanh2810/eventdesk/internal/domain"
	"github.com/vietanh2810/eventdesk/internal/service"
)

type CreateEventRequest struct {
	Name       string `json:"name"`
	Venue      string `json:"venue"`
	StartDate  string `json:"startDate" format:"YYYY-MM-DD"`
	EndDate    string `json:"endDate" format:"YYYY-MM-DD"`
	TotalSeats int    `json:"totalSeats"`
	Type       string `json:"type" enums:"MUN,OLYMPIAD,SEMINAR,CEREMONY,FESTIVAL,CONCERT,CUSTOM"`
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Venue, validation.Required),
		validation.Field(&req.StartDate, validation.Required),
		validation.Field(&req.EndDate, validation.Required),
		validation.Field(&req.TotalSeats, validation.Required, validation.Min(1), validation.Max(math.MaxInt32)),
		validation.Field(&req.Type, validation.Required, validation.By(eventType)),
	)
}

func (req *CreateEventRequest) Input() service.EventInput {
	t, _ := domain.ParseEventType(req.Type)
	return service.EventInput{
		Name:       req.Name,
		Venue:      req.Venue,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		TotalSeats: req.TotalSeats,
		Type:       t,
	}
}

// UpdateEventRequest changes only the fields that are present.
type UpdateEventRequest struct {
	Name       *string `json:"name"`
	Venue      *string `json:"venue"`
	StartDate  *string `json:"startDate"`
	EndDate    *string `json:"endDate"`
	TotalSeats *int    `json:"totalSeats"`
	Type       *string `json:"type"`
}

func (req *UpdateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.NilOrNotEmpty),
		validation.Field(&req.Venue, validation.NilOrNotEmpty),
		validation.Field(&req.TotalSeats, validation.NilOrNotEmpty, validation.Min(1), validation.Max(math.MaxInt32)),
		validation.Field(&req.Type, validation.NilOrNotEmpty, validation.By(eventType)),
	)
}

func (req *UpdateEventRequest) Patch() domain.EventPatch {
	patch := domain.EventPatch{
		Name:       req.Name,
		Venue:      req.Venue,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		TotalSeats: req.TotalSeats,
	}
	if req.Type != nil {
		t, _ := domain.ParseEventType(*req.Type)
		patch.Type = &t
	}
	return patch
}

func eventType(value interface{}) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case *string:
		if v != nil {
			s = *v
		}
	}
	if s == "" {
		return nil
	}
	_, err := domain.ParseEventType(s)
	return err
}
