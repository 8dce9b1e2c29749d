package service

import (
	"errors"
	"math"
	"time"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/vietanh2810/eventdesk/internal/domain"
)

// Widths of the record fields minus the terminating zero byte.
const (
	maxLongText  = 49
	maxShortText = 19
	maxFeeStatus = 9
)

const passwordRegexPattern = `^(?=.*[A-Za-z])(?=.*\d).{8,19}$`

var (
	passwordExp = regexp2.MustCompile(passwordRegexPattern, regexp2.None)

	errInvalidPassword = errors.New("the password must be 8 to 19 characters and contain at least 1 letter and 1 number")
	errNoNewline       = errors.New("must not contain line breaks")
	errInvalidDate     = errors.New("must be a date formatted as YYYY-MM-DD")
	errDatesOrder      = errors.New("end date must not be before start date")
)

// singleLine rejects values that would shift the console's line protocol.
var singleLine = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	for _, r := range s {
		if r == '\n' || r == '\r' {
			return errNoNewline
		}
	}
	return nil
})

var isDate = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if _, err := time.Parse(domain.DateLayout, s); err != nil {
		return errInvalidDate
	}
	return nil
})

// MatchPassword applies the password rule shared by signup surfaces.
func MatchPassword(password string) error {
	ok, err := passwordExp.MatchString(password)
	if err != nil || !ok {
		return errInvalidPassword
	}
	return nil
}

func validateProfile(p *domain.Profile) error {
	err := validation.ValidateStruct(p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, maxLongText), singleLine),
		validation.Field(&p.Email, validation.Required, validation.Length(1, maxLongText), is.Email),
		validation.Field(&p.Username, validation.Required, validation.Length(3, maxShortText), is.PrintableASCII, singleLine),
		validation.Field(&p.Password, validation.Required, singleLine),
	)
	if err != nil {
		return invalid(err)
	}
	return invalid(MatchPassword(p.Password))
}

func validateEvent(e *domain.Event) error {
	err := validation.ValidateStruct(e,
		validation.Field(&e.Name, validation.Required, validation.Length(1, maxLongText), singleLine),
		validation.Field(&e.Venue, validation.Required, validation.Length(1, maxLongText), singleLine),
		validation.Field(&e.StartDate, validation.Required, isDate),
		validation.Field(&e.EndDate, validation.Required, isDate),
		validation.Field(&e.TotalSeats, validation.Required, validation.Min(1), validation.Max(math.MaxInt32)),
		validation.Field(&e.Type, validation.Required, validation.By(func(value interface{}) error {
			if t, _ := value.(domain.EventType); !t.Valid() {
				return errors.New("unknown event type")
			}
			return nil
		})),
	)
	if err != nil {
		return invalid(err)
	}

	start, end, err := e.Dates()
	if err != nil {
		return invalid(err)
	}
	if end.Before(start) {
		return invalid(errDatesOrder)
	}
	return nil
}

func validateStaff(s *domain.Staff) error {
	return invalid(validation.ValidateStruct(s,
		validation.Field(&s.Name, validation.Required, validation.Length(1, maxLongText), singleLine),
		validation.Field(&s.Email, validation.Required, validation.Length(1, maxLongText), is.Email),
		validation.Field(&s.Team, validation.Required, validation.Length(1, maxShortText), singleLine),
		validation.Field(&s.Position, validation.Required, validation.Length(1, maxShortText), singleLine),
	))
}

func validateVendor(v *domain.Vendor) error {
	return invalid(validation.ValidateStruct(v,
		validation.Field(&v.Name, validation.Required, validation.Length(1, maxLongText), singleLine),
		validation.Field(&v.Email, validation.Required, validation.Length(1, maxLongText), is.Email),
		validation.Field(&v.ProductService, validation.Required, validation.Length(1, maxLongText), singleLine),
		validation.Field(&v.ChargesDue, validation.Min(float32(0))),
	))
}

func validateFeeStatus(status domain.FeeStatus) error {
	return invalid(validation.Validate(string(status),
		validation.Required,
		validation.Length(1, maxFeeStatus),
		validation.In(string(domain.FeePaid), string(domain.FeeUnpaid)),
	))
}
