package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/eventdesk/internal/api/handler/v1/request"
	"github.com/vietanh2810/eventdesk/internal/api/handler/v1/response"
	"github.com/vietanh2810/eventdesk/internal/domain"
)

var (
	errCustomerOnly  = errors.New("only customers can register for events")
	errOtherCustomer = errors.New("registrations of another customer")
)

type RegistrationHandler struct {
	facade Facade
}

func NewRegistrationHandler(f Facade) *RegistrationHandler {
	return &RegistrationHandler{
		facade: f,
	}
}

// HandleRegister godoc
// @Summary      Register the logged-in customer for an event
// @Tags         registrations
// @Produce      json
// @Param        eventID   path      int  true "Event ID"
// @Success      201      {object}   facade.Result{payload=domain.Registration}
// @Failure      403      {object}   facade.Result
// @Failure      404      {object}   facade.Result
// @Failure      409      {object}   facade.Result
// @Router       /events/{eventID}/registrations [post]
// @Security     BearerAuth
func (h *RegistrationHandler) HandleRegister(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}
	if !s.IsCustomer() {
		response.ErrForbidden(ctx, errCustomerOnly)
		return
	}
	eventID, ok := pathID(ctx, "eventID")
	if !ok {
		return
	}

	response.Render(ctx, h.facade.RegisterForEvent(ctx.Request.Context(), s.UserID, eventID), http.StatusCreated)
}

// HandleListEventRegistrations godoc
// @Summary      Registrations of an event with customer name and email
// @Tags         registrations
// @Produce      json
// @Param        eventID   path      int  true "Event ID"
// @Success      200      {object}   facade.Result{payload=[]domain.EventRegistration}
// @Failure      404      {object}   facade.Result
// @Router       /events/{eventID}/registrations [get]
// @Security     BearerAuth
func (h *RegistrationHandler) HandleListEventRegistrations(ctx *gin.Context) {
	eventID, ok := pathID(ctx, "eventID")
	if !ok {
		return
	}

	response.Render(ctx, h.facade.GetRegistrationsByEvent(ctx.Request.Context(), eventID))
}

// HandleUpdateFeeStatus godoc
// @Summary      Mark a registration as Paid or Unpaid
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Param        eventID      path      int  true "Event ID"
// @Param        customerID   path      int  true "Customer ID"
// @Param        request      body      request.FeeStatusRequest true "request body"
// @Success      200      {object}   facade.Result{payload=domain.Registration}
// @Failure      400      {object}   facade.Result
// @Failure      403      {object}   facade.Result
// @Failure      404      {object}   facade.Result
// @Router       /events/{eventID}/registrations/{customerID} [patch]
// @Security     BearerAuth
func (h *RegistrationHandler) HandleUpdateFeeStatus(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}
	eventID, ok := pathID(ctx, "eventID")
	if !ok {
		return
	}
	customerID, ok := pathID(ctx, "customerID")
	if !ok {
		return
	}

	var req request.FeeStatusRequest
	if !bind(ctx, &req) {
		return
	}

	res := h.facade.UpdateFeeStatus(ctx.Request.Context(), s, customerID, eventID, domain.FeeStatus(req.FeeStatus))
	response.Render(ctx, res)
}

// HandleCustomerRegistrations godoc
// @Summary      Registrations of a customer with event names
// @Description  Customers only see their own registrations. Registrations of deleted events are left out.
// @Tags         registrations
// @Produce      json
// @Param        customerID   path      int  true "Customer ID"
// @Success      200      {object}   facade.Result{payload=[]domain.CustomerRegistration}
// @Failure      403      {object}   facade.Result
// @Router       /customers/{customerID}/registrations [get]
// @Security     BearerAuth
func (h *RegistrationHandler) HandleCustomerRegistrations(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}
	customerID, ok := pathID(ctx, "customerID")
	if !ok {
		return
	}
	if s.IsCustomer() && s.UserID != customerID {
		response.ErrForbidden(ctx, errOtherCustomer)
		return
	}

	response.Render(ctx, h.facade.GetCustomerRegistrations(ctx.Request.Context(), customerID))
}
