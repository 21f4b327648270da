package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/wompwomp13/elderease-care-connect-sub000/internal/dto"
	"github.com/wompwomp13/elderease-care-connect-sub000/internal/service"
	"github.com/wompwomp13/elderease-care-connect-sub000/pkg/response"
)

// VolunteerHandler serves performance and admin moderation endpoints.
type VolunteerHandler struct {
	volunteerSvc service.VolunteerService
}

// NewVolunteerHandler creates a VolunteerHandler.
func NewVolunteerHandler(volunteerSvc service.VolunteerService) *VolunteerHandler {
	return &VolunteerHandler{volunteerSvc: volunteerSvc}
}

// Performance returns the volunteer's live aggregate and tier.
// GET /api/v1/volunteers/:id/performance
func (h *VolunteerHandler) Performance(c *gin.Context) {
	result, err := h.volunteerSvc.Performance(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 14001, err.Error())
		case errors.Is(err, service.ErrNotAVolunteer):
			response.BadRequest(c, 14002, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// List lists volunteer accounts. Admin only.
// GET /api/v1/volunteers
func (h *VolunteerHandler) List(c *gin.Context) {
	var req dto.VolunteerListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	list, total, err := h.volunteerSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// UpdateStatus approves or suspends a volunteer. Admin only.
// PUT /api/v1/volunteers/:id/status
func (h *VolunteerHandler) UpdateStatus(c *gin.Context) {
	adminID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateVolunteerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	if err := h.volunteerSvc.UpdateStatus(c.Request.Context(), adminID, c.Param("id"), &req); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 14001, err.Error())
		case errors.Is(err, service.ErrNotAVolunteer):
			response.BadRequest(c, 14002, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}
