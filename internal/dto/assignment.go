package dto

// AcceptRequestRequest is a volunteer accepting a pending service request.
type AcceptRequestRequest struct {
	RequestID string `json:"request_id" binding:"required,uuid"`
}

// ConfirmAssignmentRequest is the guardian's confirmation plus rating.
type ConfirmAssignmentRequest struct {
	Score   int    `json:"score"   binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"omitempty,max=500"`
}

// ReceiptLineResponse is one priced service on a receipt.
type ReceiptLineResponse struct {
	Service      string  `json:"service"`
	BaseRate     float64 `json:"base_rate"`
	Hours        float64 `json:"hours"`
	AdjustedRate float64 `json:"adjusted_rate"`
	Amount       float64 `json:"amount"`
}

// ReceiptResponse is the itemized receipt frozen into an assignment.
type ReceiptResponse struct {
	Lines       []ReceiptLineResponse `json:"lines"`
	Subtotal    float64               `json:"subtotal"`
	Commission  float64               `json:"commission"`
	Total       float64               `json:"total"`
	Tier        string                `json:"tier"`
	TierPercent float64               `json:"tier_percent"`
}

// VolunteerBrief identifies the accepting volunteer on an assignment.
type VolunteerBrief struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// AssignmentResponse is an assignment as returned to clients.
type AssignmentResponse struct {
	ID                string             `json:"id"`
	RequestID         string             `json:"request_id"`
	Volunteer         *VolunteerBrief    `json:"volunteer,omitempty"`
	Services          []string           `json:"services"`
	ServiceHours      map[string]float64 `json:"service_hours"`
	ScheduledDate     int64              `json:"scheduled_date"`
	StartTime         string             `json:"start_time"`
	EndTime           string             `json:"end_time"`
	Address           string             `json:"address"`
	Notes             string             `json:"notes,omitempty"`
	Receipt           ReceiptResponse    `json:"receipt"`
	Status            string             `json:"status"`
	GuardianConfirmed bool               `json:"guardian_confirmed"`
	CompletedAt       *string            `json:"completed_at,omitempty"`
	CreatedAt         string             `json:"created_at"`
}
