package dto

// CreateUnavailableRequest adds one manual unavailability window.
type CreateUnavailableRequest struct {
	Day       int64  `json:"day"        binding:"required"` // epoch-millis day marker
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time"   binding:"required"`
	Reason    string `json:"reason"     binding:"omitempty,max=200"`
}

// ImportICSRequest imports unavailability windows from an iCalendar feed.
// Exactly one of URL or Content must be set.
type ImportICSRequest struct {
	URL     string `json:"url"     binding:"omitempty,url"`
	Content string `json:"content" binding:"omitempty"`
}

// ImportICSResponse summarizes an import.
type ImportICSResponse struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Warnings []string `json:"warnings,omitempty"`
}

// UnavailableResponse is one unavailability window.
type UnavailableResponse struct {
	ID        string `json:"id"`
	Day       int64  `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Reason    string `json:"reason,omitempty"`
	Source    string `json:"source"`
}
