package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/eventdesk/internal/api/handler/v1/request"
	"github.com/vietanh2810/eventdesk/internal/api/handler/v1/response"
)

type EventHandler struct {
	facade Facade
}

func NewEventHandler(f Facade) *EventHandler {
	return &EventHandler{
		facade: f,
	}
}

// HandleListEvents godoc
// @Summary      List events
// @Tags         events
// @Produce      json
// @Param        organiserID   query     int  false "only events of this organiser"
// @Success      200      {object}   facade.Result{payload=[]domain.Event}
// @Failure      400      {object}   facade.Result
// @Router       /events [get]
// @Security     BearerAuth
func (h *EventHandler) HandleListEvents(ctx *gin.Context) {
	if q := ctx.Query("organiserID"); q != "" {
		orgID, err := strconv.Atoi(q)
		if err != nil {
			response.ErrBadRequest(ctx, err)
			return
		}
		response.Render(ctx, h.facade.ListEventsByOrganiser(ctx.Request.Context(), orgID))
		return
	}

	response.Render(ctx, h.facade.ListEvents(ctx.Request.Context()))
}

// HandleCreateEvent godoc
// @Summary      Create an event
// @Description  Only organisers can create events. Ids are allocated in 100-999.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        request   body      request.CreateEventRequest true "request body"
// @Success      201      {object}   facade.Result{payload=domain.Event}
// @Failure      400      {object}   facade.Result
// @Failure      403      {object}   facade.Result
// @Router       /events [post]
// @Security     BearerAuth
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}

	var req request.CreateEventRequest
	if !bind(ctx, &req) {
		return
	}

	response.Render(ctx, h.facade.AddEvent(ctx.Request.Context(), s, req.Input()), http.StatusCreated)
}

// HandleGetEvent godoc
// @Summary      Get an event
// @Tags         events
// @Produce      json
// @Param        eventID   path      int  true "Event ID"
// @Success      200      {object}   facade.Result{payload=domain.Event}
// @Failure      404      {object}   facade.Result
// @Router       /events/{eventID} [get]
// @Security     BearerAuth
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	id, ok := pathID(ctx, "eventID")
	if !ok {
		return
	}

	response.Render(ctx, h.facade.GetEvent(ctx.Request.Context(), id))
}

// HandleUpdateEvent godoc
// @Summary      Modify an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventID   path      int  true "Event ID"
// @Param        request   body      request.UpdateEventRequest true "fields to change"
// @Success      200      {object}   facade.Result{payload=domain.Event}
// @Failure      400      {object}   facade.Result
// @Failure      403      {object}   facade.Result
// @Failure      409      {object}   facade.Result
// @Router       /events/{eventID} [patch]
// @Security     BearerAuth
func (h *EventHandler) HandleUpdateEvent(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "eventID")
	if !ok {
		return
	}

	var req request.UpdateEventRequest
	if !bind(ctx, &req) {
		return
	}

	response.Render(ctx, h.facade.ModifyEvent(ctx.Request.Context(), s, id, req.Patch()))
}

// HandleDeleteEvent godoc
// @Summary      Delete an event
// @Tags         events
// @Produce      json
// @Param        eventID   path      int  true "Event ID"
// @Success      200      {object}   facade.Result
// @Failure      403      {object}   facade.Result
// @Failure      404      {object}   facade.Result
// @Router       /events/{eventID} [delete]
// @Security     BearerAuth
func (h *EventHandler) HandleDeleteEvent(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "eventID")
	if !ok {
		return
	}

	response.Render(ctx, h.facade.DeleteEvent(ctx.Request.Context(), s, id))
}

// HandleEventSummary godoc
// @Summary      Seat, staff, vendor and registration counts of an event
// @Tags         events
// @Produce      json
// @Param        eventID   path      int  true "Event ID"
// @Success      200      {object}   facade.Result{payload=domain.EventSummary}
// @Failure      404      {object}   facade.Result
// @Router       /events/{eventID}/summary [get]
// @Security     BearerAuth
func (h *EventHandler) HandleEventSummary(ctx *gin.Context) {
	id, ok := pathID(ctx, "eventID")
	if !ok {
		return
	}

	response.Render(ctx, h.facade.EventSummary(ctx.Request.Context(), id))
}

