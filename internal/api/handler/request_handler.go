package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/wompwomp13/elderease-care-connect-sub000/internal/dto"
	"github.com/wompwomp13/elderease-care-connect-sub000/internal/model"
	"github.com/wompwomp13/elderease-care-connect-sub000/internal/pricing"
	"github.com/wompwomp13/elderease-care-connect-sub000/internal/service"
	"github.com/wompwomp13/elderease-care-connect-sub000/pkg/response"
)

// RequestHandler serves the guardian service-request endpoints.
type RequestHandler struct {
	requestSvc service.RequestService
}

// NewRequestHandler creates a RequestHandler.
func NewRequestHandler(requestSvc service.RequestService) *RequestHandler {
	return &RequestHandler{requestSvc: requestSvc}
}

// Create submits a new service request.
// POST /api/v1/requests
func (h *RequestHandler) Create(c *gin.Context) {
	guardianID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.requestSvc.Create(c.Request.Context(), guardianID, &req)
	if err != nil {
		var unknown *pricing.ErrUnknownService
		switch {
		case errors.As(err, &unknown):
			response.BadRequest(c, 12001, err.Error())
		case errors.Is(err, service.ErrMalformedClock),
			errors.Is(err, service.ErrInvalidTimeWindow):
			response.BadRequest(c, 12002, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// Get fetches one request.
// GET /api/v1/requests/:id
func (h *RequestHandler) Get(c *gin.Context) {
	result, err := h.requestSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrRequestNotFound) {
			response.NotFound(c, 12003, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	// guardians may only see their own requests; volunteers browse
	// pending ones
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}
	if role == model.RoleGuardian && result.GuardianID != userID {
		response.Forbidden(c, 10003, "insufficient permissions")
		return
	}

	response.OK(c, result)
}

// ListMine lists the guardian's own requests.
// GET /api/v1/requests
func (h *RequestHandler) ListMine(c *gin.Context) {
	guardianID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.RequestListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	list, total, err := h.requestSvc.ListByGuardian(c.Request.Context(), guardianID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// ListOpen lists pending requests for volunteers to browse.
// GET /api/v1/requests/open
func (h *RequestHandler) ListOpen(c *gin.Context) {
	var req dto.RequestListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	list, total, err := h.requestSvc.ListPending(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Cancel cancels a pending request.
// POST /api/v1/requests/:id/cancel
func (h *RequestHandler) Cancel(c *gin.Context) {
	guardianID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.requestSvc.Cancel(c.Request.Context(), guardianID, c.Param("id")); err != nil {
		switch {
		case errors.Is(err, service.ErrRequestNotFound):
			response.NotFound(c, 12003, err.Error())
		case errors.Is(err, service.ErrNotRequestOwner):
			response.Forbidden(c, 12004, err.Error())
		case errors.Is(err, service.ErrRequestNotPending):
			response.Conflict(c, 12005, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}
