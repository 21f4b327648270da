package handler

import "github.com/wompwomp13/elderease-care-connect-sub000/internal/service"

// Handler aggregates all HTTP handlers.
type Handler struct {
	Auth         *AuthHandler
	Request      *RequestHandler
	Assignment   *AssignmentHandler
	Volunteer    *VolunteerHandler
	Chat         *ChatHandler
	Availability *AvailabilityHandler
	Export       *ExportHandler
}

// NewHandler creates the handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		Request:      NewRequestHandler(svc.Request),
		Assignment:   NewAssignmentHandler(svc.Assignment),
		Volunteer:    NewVolunteerHandler(svc.Volunteer),
		Chat:         NewChatHandler(svc.Chat),
		Availability: NewAvailabilityHandler(svc.Availability),
		Export:       NewExportHandler(svc.Export),
	}
}
