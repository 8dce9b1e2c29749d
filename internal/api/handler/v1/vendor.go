package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/eventdesk/internal/api/handler/v1/request"
	"github.com/vietanh2810/eventdesk/internal/api/handler/v1/response"
)

type VendorHandler struct {
	facade Facade
}

func NewVendorHandler(f Facade) *VendorHandler {
	return &VendorHandler{
		facade: f,
	}
}

// HandleListVendors godoc
// @Summary      List the vendors of an event
// @Tags         vendors
// @Produce      json
// @Param        eventID   path      int  true "Event ID"
// @Success      200      {object}   facade.Result{payload=[]domain.Vendor}
// @Router       /events/{eventID}/vendors [get]
// @Security     BearerAuth
func (h *VendorHandler) HandleListVendors(ctx *gin.Context) {
	eventID, ok := pathID(ctx, "eventID")
	if !ok {
		return
	}

	response.Render(ctx, h.facade.GetVendorsByEvent(ctx.Request.Context(), eventID))
}

// HandleAddVendor godoc
// @Summary      Add a vendor through the console process
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        eventID   path      int  true "Event ID"
// @Param        request   body      request.VendorRequest true "request body"
// @Success      201      {object}   facade.Result{payload=domain.Vendor}
// @Failure      400      {object}   facade.Result
// @Failure      403      {object}   facade.Result
// @Failure      502      {object}   facade.Result
// @Failure      504      {object}   facade.Result
// @Router       /events/{eventID}/vendors [post]
// @Security     BearerAuth
func (h *VendorHandler) HandleAddVendor(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}
	eventID, ok := pathID(ctx, "eventID")
	if !ok {
		return
	}

	var req request.VendorRequest
	if !bind(ctx, &req) {
		return
	}

	response.Render(ctx, h.facade.AddVendor(ctx.Request.Context(), s, eventID, req.Input()), http.StatusCreated)
}

// HandleUpdateVendor godoc
// @Summary      Update a vendor
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        vendorID   path      int  true "Vendor ID"
// @Param        request   body      request.VendorRequest true "request body"
// @Success      200      {object}   facade.Result{payload=domain.Vendor}
// @Failure      403      {object}   facade.Result
// @Failure      404      {object}   facade.Result
// @Router       /vendors/{vendorID} [put]
// @Security     BearerAuth
func (h *VendorHandler) HandleUpdateVendor(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "vendorID")
	if !ok {
		return
	}

	var req request.VendorRequest
	if !bind(ctx, &req) {
		return
	}

	response.Render(ctx, h.facade.UpdateVendor(ctx.Request.Context(), s, id, req.Input()))
}

// HandleDeleteVendor godoc
// @Summary      Delete a vendor
// @Tags         vendors
// @Produce      json
// @Param        vendorID   path      int  true "Vendor ID"
// @Success      200      {object}   facade.Result
// @Failure      403      {object}   facade.Result
// @Failure      404      {object}   facade.Result
// @Router       /vendors/{vendorID} [delete]
// @Security     BearerAuth
func (h *VendorHandler) HandleDeleteVendor(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "vendorID")
	if !ok {
		return
	}

	response.Render(ctx, h.facade.DeleteVendor(ctx.Request.Context(), s, id))
}
