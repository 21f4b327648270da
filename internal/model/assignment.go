package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Assignment statuses.
const (
	AssignmentAssigned  = "assigned"
	AssignmentCompleted = "completed"
)

// ReceiptLine is one priced service on an issued receipt.
type ReceiptLine struct {
	Service      string  `json:"service"`
	BaseRate     float64 `json:"base_rate"`
	Hours        float64 `json:"hours"`
	AdjustedRate float64 `json:"adjusted_rate"`
	Amount       float64 `json:"amount"`
}

// Receipt is the line-itemized bill frozen into an assignment at acceptance.
// Stored as JSONB; immutable once issued.
type Receipt struct {
	Lines       []ReceiptLine `json:"lines"`
	Subtotal    float64       `json:"subtotal"`
	Commission  float64       `json:"commission"`
	Total       float64       `json:"total"`
	Tier        string        `json:"tier"`
	TierPercent float64       `json:"tier_percent"`
}

// Scan parses the JSONB receipt column.
func (r *Receipt) Scan(src interface{}) error {
	if src == nil {
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("Receipt.Scan: unsupported type %T", src)
	}
	return json.Unmarshal(b, r)
}

// Value serializes the receipt as JSONB.
func (r Receipt) Value() (driver.Value, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Assignment — maps to assignments
//
// The services/date/time/address/notes columns are a denormalized copy of
// the originating request, frozen at acceptance time.
type Assignment struct {
	AssignmentID      string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"assignment_id"`
	RequestID         string     `gorm:"type:uuid;not null;uniqueIndex"                 json:"request_id"`
	VolunteerID       string     `gorm:"type:uuid;not null"                             json:"volunteer_id"`
	Services          StringList `gorm:"type:jsonb;not null"                            json:"services"`
	ServiceHours      HoursMap   `gorm:"type:jsonb;not null"                            json:"service_hours"`
	ScheduledDate     int64      `gorm:"not null"                                       json:"scheduled_date"`
	StartTime         string     `gorm:"type:varchar(5);not null"                       json:"start_time"`
	EndTime           string     `gorm:"type:varchar(5);not null"                       json:"end_time"`
	Address           string     `gorm:"type:varchar(500);not null"                     json:"address"`
	Notes             string     `gorm:"type:varchar(1000)"                             json:"notes,omitempty"`
	Receipt           Receipt    `gorm:"type:jsonb;not null"                            json:"receipt"`
	Status            string     `gorm:"type:varchar(20);not null;default:'assigned'"   json:"status"`
	GuardianConfirmed bool       `gorm:"not null;default:false"                         json:"guardian_confirmed"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	VersionedModel

	// associations
	Request   *ServiceRequest `gorm:"foreignKey:RequestID;references:RequestID"  json:"request,omitempty"`
	Volunteer *User           `gorm:"foreignKey:VolunteerID;references:UserID"   json:"volunteer,omitempty"`
}

// TableName sets the table name.
func (Assignment) TableName() string { return "assignments" }
