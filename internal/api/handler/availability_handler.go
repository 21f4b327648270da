package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/wompwomp13/elderease-care-connect-sub000/internal/dto"
	"github.com/wompwomp13/elderease-care-connect-sub000/internal/service"
	"github.com/wompwomp13/elderease-care-connect-sub000/pkg/response"
)

// AvailabilityHandler serves volunteer unavailability endpoints.
type AvailabilityHandler struct {
	availabilitySvc service.AvailabilityService
}

// NewAvailabilityHandler creates an AvailabilityHandler.
func NewAvailabilityHandler(availabilitySvc service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availabilitySvc: availabilitySvc}
}

// Create adds one manual unavailable window.
// POST /api/v1/availability
func (h *AvailabilityHandler) Create(c *gin.Context) {
	volunteerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateUnavailableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.availabilitySvc.Create(c.Request.Context(), volunteerID, &req)
	if err != nil {
		if errors.Is(err, service.ErrMalformedClock) || errors.Is(err, service.ErrInvalidTimeWindow) {
			response.BadRequest(c, 15001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// List lists the caller's unavailable windows.
// GET /api/v1/availability
func (h *AvailabilityHandler) List(c *gin.Context) {
	volunteerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	list, total, err := h.availabilitySvc.List(c.Request.Context(), volunteerID, &page)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, page.GetPage(), page.GetPageSize())
}

// Delete removes one of the caller's windows.
// DELETE /api/v1/availability/:id
func (h *AvailabilityHandler) Delete(c *gin.Context) {
	volunteerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.availabilitySvc.Delete(c.Request.Context(), volunteerID, c.Param("id")); err != nil {
		if errors.Is(err, service.ErrUnavailableNotFound) {
			response.NotFound(c, 15002, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// ImportICS imports unavailable windows from an iCalendar feed.
// POST /api/v1/availability/import
func (h *AvailabilityHandler) ImportICS(c *gin.Context) {
	volunteerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ImportICSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.availabilitySvc.ImportICS(c.Request.Context(), volunteerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrICSSourceRequired):
			response.BadRequest(c, 15003, err.Error())
		case errors.Is(err, service.ErrICSFetchFailed),
			errors.Is(err, service.ErrICSParseFailed):
			response.BadRequest(c, 15004, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}
