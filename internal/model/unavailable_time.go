package model

import "time"

// Unavailable window sources.
const (
	UnavailableManual = "manual"
	UnavailableICS    = "ics"
)

// UnavailableTime — maps to unavailable_times
//
// A window on a specific day during which a volunteer cannot take
// assignments. Created manually or imported from an iCalendar feed.
type UnavailableTime struct {
	UnavailableID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"unavailable_id"`
	VolunteerID   string    `gorm:"type:uuid;not null"                             json:"volunteer_id"`
	Day           int64     `gorm:"not null"                                       json:"day"` // epoch-millis day marker
	StartTime     string    `gorm:"type:varchar(5);not null"                       json:"start_time"`
	EndTime       string    `gorm:"type:varchar(5);not null"                       json:"end_time"`
	Reason        string    `gorm:"type:varchar(200)"                              json:"reason,omitempty"`
	Source        string    `gorm:"type:varchar(10);not null;default:'manual'"     json:"source"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`

	// associations
	Volunteer *User `gorm:"foreignKey:VolunteerID;references:UserID" json:"volunteer,omitempty"`
}

// TableName sets the table name.
func (UnavailableTime) TableName() string { return "unavailable_times" }
