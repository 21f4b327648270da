package model

// Service request statuses. A request transitions to assigned exactly once,
// inside the acceptance transaction; the guardian may cancel while pending.
const (
	RequestPending   = "pending"
	RequestAssigned  = "assigned"
	RequestCancelled = "cancelled"
)

// ServiceRequest — maps to service_requests
type ServiceRequest struct {
	RequestID            string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"request_id"`
	GuardianID           string     `gorm:"type:uuid;not null"                             json:"guardian_id"`
	Services             StringList `gorm:"type:jsonb;not null"                            json:"services"`
	ServiceHours         HoursMap   `gorm:"type:jsonb;not null"                            json:"service_hours"`
	RequestedDate        int64      `gorm:"not null"                                       json:"requested_date"` // epoch-millis day marker
	StartTime            string     `gorm:"type:varchar(5);not null"                       json:"start_time"`     // HH:MM
	EndTime              string     `gorm:"type:varchar(5);not null"                       json:"end_time"`
	Address              string     `gorm:"type:varchar(500);not null"                     json:"address"`
	Notes                string     `gorm:"type:varchar(1000)"                             json:"notes,omitempty"`
	PreferredVolunteerID *string    `gorm:"type:uuid"                                      json:"preferred_volunteer_id,omitempty"`
	ConfirmationCode     string     `gorm:"type:varchar(16);not null"                      json:"confirmation_code"`
	Status               string     `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	VersionedModel

	// associations
	Guardian *User `gorm:"foreignKey:GuardianID;references:UserID" json:"guardian,omitempty"`
}

// TableName sets the table name.
func (ServiceRequest) TableName() string { return "service_requests" }
