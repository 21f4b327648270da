package dto

// PerformanceResponse is the on-demand volunteer performance aggregate.
type PerformanceResponse struct {
	VolunteerID    string   `json:"volunteer_id"`
	TasksCompleted int      `json:"tasks_completed"` // completed and guardian-confirmed
	AverageRating  *float64 `json:"average_rating,omitempty"`
	RatingCount    int      `json:"rating_count"`
	Tier           string   `json:"tier"`
	TierPercent    float64  `json:"tier_percent"`
}

// VolunteerListRequest filters the admin volunteer listing.
type VolunteerListRequest struct {
	PaginationRequest
	Status string `form:"status" binding:"omitempty,oneof=pending approved suspended"`
}

// UpdateVolunteerStatusRequest is the admin approval/suspension action.
type UpdateVolunteerStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=approved suspended"`
}
