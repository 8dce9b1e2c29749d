package service

import (
	"errors"

	"github.com/vietanh2810/eventdesk/internal/bridge"
	"github.com/vietanh2810/eventdesk/internal/reconcile"
	"github.com/vietanh2810/eventdesk/internal/repository"
)

var (
	ErrNotFound           = repository.ErrNotFound
	ErrTimeout            = bridge.ErrTimeout
	ErrUnrecognizedOutput = bridge.ErrUnrecognizedOutput
	ErrNotSettled         = reconcile.ErrNotSettled

	ErrUsernameTaken        = errors.New("username already taken")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrOrganiserNotFound    = errors.New("organiser not found")
	ErrCustomerNotFound     = errors.New("customer not found")
	ErrEventNotFound        = errors.New("event not found")
	ErrStaffNotFound        = errors.New("staff not found")
	ErrVendorNotFound       = errors.New("vendor not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrOrganiserRequired    = errors.New("an organiser session is required")
	ErrNotEventOwner        = errors.New("event belongs to another organiser")
	ErrAlreadyRegistered    = errors.New("customer already registered for this event")
	ErrEventFull            = errors.New("event is fully booked")
	ErrSeatsBelowSold       = errors.New("total seats cannot be lower than tickets already sold")
	ErrUnexpectedResponse   = errors.New("console reported failure")
)

// ValidationError carries field errors from input validation.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }
func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Err: err}
}

// notFound maps a repository miss to the service sentinel for the entity.
func notFound(err, sentinel error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return sentinel
	}
	return err
}
