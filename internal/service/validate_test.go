package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vietanh2810/eventdesk/internal/domain"
)

func TestMatchPassword(t *testing.T) {
	tests := []struct {
		password string
		valid    bool
	}{
		{"secret123", true},
		{"a1b2c3d4", true},
		{"12345678", false},
		{"abcdefgh", false},
		{"ab1", false},
		{strings.Repeat("a", 18) + "1", true},
		{strings.Repeat("a", 19) + "1", false},
	}

	for _, tt := range tests {
		err := MatchPassword(tt.password)
		if tt.valid {
			assert.NoError(t, err, tt.password)
		} else {
			assert.ErrorIs(t, err, errInvalidPassword, tt.password)
		}
	}
}

func TestValidateProfile(t *testing.T) {
	valid := domain.Profile{Name: "Alice", Email: "alice@example.com", Username: "alice", Password: "secret123"}
	assert.NoError(t, validateProfile(&valid))

	tooLong := valid
	tooLong.Username = strings.Repeat("u", maxShortText+1)
	err := validateProfile(&tooLong)
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))

	multiline := valid
	multiline.Name = "Alice\n2"
	assert.Error(t, validateProfile(&multiline))

	badEmail := valid
	badEmail.Email = "alice"
	assert.Error(t, validateProfile(&badEmail))
}

func TestValidateEvent(t *testing.T) {
	event := domain.Event{
		Name: "Olympiad", Venue: "Gym", StartDate: "2025-04-01", EndDate: "2025-04-01",
		TotalSeats: 10, Type: domain.EventTypeOlympiad,
	}
	assert.NoError(t, validateEvent(&event))

	event.Type = 9
	assert.Error(t, validateEvent(&event))

	event.Type = domain.EventTypeOlympiad
	event.StartDate = "01/04/2025"
	assert.Error(t, validateEvent(&event))
}

func TestValidateVendorCharges(t *testing.T) {
	v := domain.Vendor{Name: "Dan", Email: "dan@example.com", ProductService: "Food"}
	assert.NoError(t, validateVendor(&v))

	v.ChargesDue = -1
	assert.Error(t, validateVendor(&v))
}
