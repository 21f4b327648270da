package model

import "time"

// Rating — maps to ratings
//
// One rating per assignment, left by the guardian after confirming
// completion. Ratings feed the volunteer performance aggregate.
type Rating struct {
	RatingID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"rating_id"`
	AssignmentID string    `gorm:"type:uuid;not null;uniqueIndex"                 json:"assignment_id"`
	VolunteerID  string    `gorm:"type:uuid;not null"                             json:"volunteer_id"`
	GuardianID   string    `gorm:"type:uuid;not null"                             json:"guardian_id"`
	Score        int       `gorm:"type:smallint;not null"                         json:"score"` // 1..5
	Comment      string    `gorm:"type:varchar(500)"                              json:"comment,omitempty"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName sets the table name.
func (Rating) TableName() string { return "ratings" }
