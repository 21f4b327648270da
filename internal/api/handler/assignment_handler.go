package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/wompwomp13/elderease-care-connect-sub000/internal/dto"
	"github.com/wompwomp13/elderease-care-connect-sub000/internal/model"
	"github.com/wompwomp13/elderease-care-connect-sub000/internal/service"
	"github.com/wompwomp13/elderease-care-connect-sub000/pkg/response"
)

// AssignmentHandler serves the assignment lifecycle endpoints.
type AssignmentHandler struct {
	assignmentSvc service.AssignmentService
}

// NewAssignmentHandler creates an AssignmentHandler.
func NewAssignmentHandler(assignmentSvc service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentSvc: assignmentSvc}
}

// Accept claims a pending request for the calling volunteer.
// POST /api/v1/assignments/accept
func (h *AssignmentHandler) Accept(c *gin.Context) {
	volunteerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.AcceptRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.assignmentSvc.Accept(c.Request.Context(), volunteerID, req.RequestID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRequestNotFound):
			response.NotFound(c, 12003, err.Error())
		case errors.Is(err, service.ErrRequestAlreadyAssigned),
			errors.Is(err, service.ErrRequestCancelled),
			errors.Is(err, service.ErrScheduleConflict),
			errors.Is(err, service.ErrVolunteerUnavailable):
			response.Conflict(c, 13001, err.Error())
		case errors.Is(err, service.ErrVolunteerNotApproved):
			response.Forbidden(c, 13002, err.Error())
		case errors.Is(err, service.ErrMalformedClock):
			response.BadRequest(c, 12002, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// Complete marks the assignment done.
// POST /api/v1/assignments/:id/complete
func (h *AssignmentHandler) Complete(c *gin.Context) {
	volunteerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.assignmentSvc.Complete(c.Request.Context(), volunteerID, c.Param("id")); err != nil {
		switch {
		case errors.Is(err, service.ErrAssignmentNotFound):
			response.NotFound(c, 13003, err.Error())
		case errors.Is(err, service.ErrNotAssignee):
			response.Forbidden(c, 13004, err.Error())
		case errors.Is(err, service.ErrAssignmentNotAssigned):
			response.Conflict(c, 13005, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}

// Confirm records the guardian's confirmation and rating.
// POST /api/v1/assignments/:id/confirm
func (h *AssignmentHandler) Confirm(c *gin.Context) {
	guardianID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ConfirmAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	if err := h.assignmentSvc.Confirm(c.Request.Context(), guardianID, c.Param("id"), &req); err != nil {
		switch {
		case errors.Is(err, service.ErrAssignmentNotFound):
			response.NotFound(c, 13003, err.Error())
		case errors.Is(err, service.ErrNotAssignmentGuardian):
			response.Forbidden(c, 13004, err.Error())
		case errors.Is(err, service.ErrAssignmentNotCompleted),
			errors.Is(err, service.ErrAlreadyConfirmed):
			response.Conflict(c, 13005, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}

// Get fetches one assignment.
// GET /api/v1/assignments/:id
func (h *AssignmentHandler) Get(c *gin.Context) {
	result, err := h.assignmentSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrAssignmentNotFound) {
			response.NotFound(c, 13003, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// ListMine lists the caller's assignments. Volunteers see the work they
// accepted; guardians see assignments on their requests.
// GET /api/v1/assignments
func (h *AssignmentHandler) ListMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	var (
		list  []dto.AssignmentResponse
		total int64
		err   error
	)
	if role == model.RoleVolunteer {
		list, total, err = h.assignmentSvc.ListByVolunteer(c.Request.Context(), userID, &page)
	} else {
		list, total, err = h.assignmentSvc.ListByGuardian(c.Request.Context(), userID, &page)
	}
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, page.GetPage(), page.GetPageSize())
}
