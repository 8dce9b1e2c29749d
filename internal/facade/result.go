package facade

import (
	"context"
	"errors"
	"io/fs"

	"github.com/vietanh2810/eventdesk/internal/bridge"
	"github.com/vietanh2810/eventdesk/internal/reconcile"
	"github.com/vietanh2810/eventdesk/internal/repository/dao"
	"github.com/vietanh2810/eventdesk/internal/service"
)

type Code string

const (
	CodeOK           Code = "ok"
	CodeValidation   Code = "validation"
	CodeConflict     Code = "conflict"
	CodeNotFound     Code = "not_found"
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"
	CodeTimeout      Code = "timeout"
	CodeParseMiss    Code = "parse_miss"
	CodeIO           Code = "io"
	CodeInternal     Code = "internal"
)

// Result is the uniform outcome of every façade action.
type Result struct {
	OK      bool   `json:"ok"`
	Code    Code   `json:"code"`
	Message string `json:"message,omitempty"`
	Payload any    `json:"payload,omitempty"`
}

func success(payload any) Result {
	return Result{OK: true, Code: CodeOK, Payload: payload}
}

var errPanic = errors.New("action panicked")

// Classify maps an error chain onto a result code.
func Classify(err error) Code {
	var verr *service.ValidationError
	var perr *fs.PathError

	switch {
	case err == nil:
		return CodeOK
	case errors.As(err, &verr):
		return CodeValidation
	case errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrAlreadyRegistered),
		errors.Is(err, service.ErrEventFull),
		errors.Is(err, service.ErrSeatsBelowSold):
		return CodeConflict
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrOrganiserNotFound),
		errors.Is(err, service.ErrCustomerNotFound),
		errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrStaffNotFound),
		errors.Is(err, service.ErrVendorNotFound),
		errors.Is(err, service.ErrRegistrationNotFound):
		return CodeNotFound
	case errors.Is(err, service.ErrInvalidCredentials):
		return CodeUnauthorized
	case errors.Is(err, service.ErrOrganiserRequired),
		errors.Is(err, service.ErrNotEventOwner):
		return CodeForbidden
	case errors.Is(err, bridge.ErrTimeout),
		errors.Is(err, context.DeadlineExceeded):
		return CodeTimeout
	case errors.Is(err, bridge.ErrUnrecognizedOutput),
		errors.Is(err, reconcile.ErrNotSettled),
		errors.Is(err, service.ErrUnexpectedResponse):
		return CodeParseMiss
	case errors.Is(err, bridge.ErrProcessFailed),
		errors.Is(err, dao.ErrShortRecord),
		errors.Is(err, dao.ErrWidthMismatch),
		errors.Is(err, dao.ErrIDSpaceExhausted),
		errors.As(err, &perr):
		return CodeIO
	}
	return CodeInternal
}

// message is what the caller sees. Internal failures are not spelled out.
func message(code Code, err error) string {
	switch code {
	case CodeOK:
		return ""
	case CodeInternal:
		return "internal error"
	case CodeTimeout:
		return "the console process did not answer in time; the data files may or may not reflect the change"
	}
	return err.Error()
}
