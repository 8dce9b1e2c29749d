package v1

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/eventdesk/internal/api/handler/v1/response"
	"github.com/vietanh2810/eventdesk/internal/api/middleware"
	"github.com/vietanh2810/eventdesk/internal/domain"
	"github.com/vietanh2810/eventdesk/internal/facade"
	"github.com/vietanh2810/eventdesk/internal/service"
)

// Facade is the action surface the handlers call. *facade.Facade satisfies it.
type Facade interface {
	OrganiserSignup(ctx context.Context, profile domain.Profile) facade.Result
	CustomerSignup(ctx context.Context, profile domain.Profile) facade.Result
	OrganiserLogin(ctx context.Context, username, password string) facade.Result
	CustomerLogin(ctx context.Context, username, password string) facade.Result

	AddEvent(ctx context.Context, session domain.Session, input service.EventInput) facade.Result
	ListEvents(ctx context.Context) facade.Result
	GetEvent(ctx context.Context, id int) facade.Result
	ListEventsByOrganiser(ctx context.Context, orgID int) facade.Result
	ModifyEvent(ctx context.Context, session domain.Session, id int, patch domain.EventPatch) facade.Result
	DeleteEvent(ctx context.Context, session domain.Session, id int) facade.Result
	EventSummary(ctx context.Context, eventID int) facade.Result

	AddStaff(ctx context.Context, session domain.Session, eventID int, input service.StaffInput) facade.Result
	GetStaffByEvent(ctx context.Context, eventID int) facade.Result
	UpdateStaff(ctx context.Context, session domain.Session, id int, input service.StaffInput) facade.Result
	DeleteStaff(ctx context.Context, session domain.Session, id int) facade.Result

	AddVendor(ctx context.Context, session domain.Session, eventID int, input service.VendorInput) facade.Result
	GetVendorsByEvent(ctx context.Context, eventID int) facade.Result
	UpdateVendor(ctx context.Context, session domain.Session, id int, input service.VendorInput) facade.Result
	DeleteVendor(ctx context.Context, session domain.Session, id int) facade.Result

	RegisterForEvent(ctx context.Context, customerID, eventID int) facade.Result
	GetRegistrationsByEvent(ctx context.Context, eventID int) facade.Result
	GetCustomerRegistrations(ctx context.Context, customerID int) facade.Result
	UpdateFeeStatus(ctx context.Context, session domain.Session, customerID, eventID int, status domain.FeeStatus) facade.Result
}

func pathID(ctx *gin.Context, name string) (int, bool) {
	// Record ids are 32-bit on disk.
	id, err := strconv.ParseInt(ctx.Param(name), 10, 32)
	if err != nil || id <= 0 {
		response.ErrBadRequest(ctx, fmt.Errorf("invalid %s %q", name, ctx.Param(name)))
		return 0, false
	}
	return int(id), true
}

func session(ctx *gin.Context) (domain.Session, bool) {
	s, err := middleware.Session(ctx)
	if err != nil {
		response.ErrUnauthorized(ctx, err)
		return domain.Session{}, false
	}
	return s, true
}

// bind decodes and validates a JSON body.
func bind(ctx *gin.Context, req interface{ Validate() error }) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		response.ErrBadRequest(ctx, err)
		return false
	}
	if err := req.Validate(); err != nil {
		response.ErrBadRequest(ctx, err)
		return false
	}
	return true
}
