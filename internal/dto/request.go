package dto

// CreateRequestRequest is a guardian's new service request.
type CreateRequestRequest struct {
	Services             []string           `json:"services"        binding:"required,min=1"`
	ServiceHours         map[string]float64 `json:"service_hours"   binding:"required"`
	RequestedDate        int64              `json:"requested_date"  binding:"required"` // epoch-millis day marker
	StartTime            string             `json:"start_time"      binding:"required"` // HH:MM
	EndTime              string             `json:"end_time"        binding:"required"`
	Address              string             `json:"address"         binding:"required,max=500"`
	Notes                string             `json:"notes"           binding:"omitempty,max=1000"`
	PreferredVolunteerID *string            `json:"preferred_volunteer_id" binding:"omitempty,uuid"`
}

// RequestListRequest filters a request listing.
type RequestListRequest struct {
	PaginationRequest
	Status string `form:"status" binding:"omitempty,oneof=pending assigned cancelled"`
}

// RequestResponse is a service request as returned to clients.
type RequestResponse struct {
	ID                   string             `json:"id"`
	GuardianID           string             `json:"guardian_id"`
	Services             []string           `json:"services"`
	ServiceHours         map[string]float64 `json:"service_hours"`
	RequestedDate        int64              `json:"requested_date"`
	StartTime            string             `json:"start_time"`
	EndTime              string             `json:"end_time"`
	Address              string             `json:"address"`
	Notes                string             `json:"notes,omitempty"`
	PreferredVolunteerID *string            `json:"preferred_volunteer_id,omitempty"`
	ConfirmationCode     string             `json:"confirmation_code"`
	Status               string             `json:"status"`
	CreatedAt            string             `json:"created_at"`
}
