package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/eventdesk/internal/api/handler/v1/request"
	"github.com/vietanh2810/eventdesk/internal/api/handler/v1/response"
)

type StaffHandler struct {
	facade Facade
}

func NewStaffHandler(f Facade) *StaffHandler {
	return &StaffHandler{
		facade: f,
	}
}

// HandleListStaff godoc
// @Summary      List the staff of an event
// @Tags         staff
// @Produce      json
// @Param        eventID   path      int  true "Event ID"
// @Success      200      {object}   facade.Result{payload=[]domain.Staff}
// @Router       /events/{eventID}/staff [get]
// @Security     BearerAuth
func (h *StaffHandler) HandleListStaff(ctx *gin.Context) {
	eventID, ok := pathID(ctx, "eventID")
	if !ok {
		return
	}

	response.Render(ctx, h.facade.GetStaffByEvent(ctx.Request.Context(), eventID))
}

// HandleAddStaff godoc
// @Summary      Add a staff member through the console process
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        eventID   path      int  true "Event ID"
// @Param        request   body      request.StaffRequest true "request body"
// @Success      201      {object}   facade.Result{payload=domain.Staff}
// @Failure      400      {object}   facade.Result
// @Failure      403      {object}   facade.Result
// @Failure      502      {object}   facade.Result
// @Failure      504      {object}   facade.Result
// @Router       /events/{eventID}/staff [post]
// @Security     BearerAuth
func (h *StaffHandler) HandleAddStaff(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}
	eventID, ok := pathID(ctx, "eventID")
	if !ok {
		return
	}

	var req request.StaffRequest
	if !bind(ctx, &req) {
		return
	}

	response.Render(ctx, h.facade.AddStaff(ctx.Request.Context(), s, eventID, req.Input()), http.StatusCreated)
}

// HandleUpdateStaff godoc
// @Summary      Update a staff member
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        staffID   path      int  true "Staff ID"
// @Param        request   body      request.StaffRequest true "request body"
// @Success      200      {object}   facade.Result{payload=domain.Staff}
// @Failure      403      {object}   facade.Result
// @Failure      404      {object}   facade.Result
// @Router       /staff/{staffID} [put]
// @Security     BearerAuth
func (h *StaffHandler) HandleUpdateStaff(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "staffID")
	if !ok {
		return
	}

	var req request.StaffRequest
	if !bind(ctx, &req) {
		return
	}

	response.Render(ctx, h.facade.UpdateStaff(ctx.Request.Context(), s, id, req.Input()))
}

// HandleDeleteStaff godoc
// @Summary      Delete a staff member
// @Tags         staff
// @Produce      json
// @Param        staffID   path      int  true "Staff ID"
// @Success      200      {object}   facade.Result
// @Failure      403      {object}   facade.Result
// @Failure      404      {object}   facade.Result
// @Router       /staff/{staffID} [delete]
// @Security     BearerAuth
func (h *StaffHandler) HandleDeleteStaff(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "staffID")
	if !ok {
		return
	}

	response.Render(ctx, h.facade.DeleteStaff(ctx.Request.Context(), s, id))
}
