package model

// User roles.
const (
	RoleGuardian  = "guardian"
	RoleVolunteer = "volunteer"
	RoleAdmin     = "admin"
)

// Volunteer account states. Only approved volunteers may accept requests.
const (
	VolunteerPending   = "pending"
	VolunteerApproved  = "approved"
	VolunteerSuspended = "suspended"
)

// User — maps to users
type User struct {
	UserID          string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name            string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Email           string  `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	Phone           string  `gorm:"type:varchar(30)"                               json:"phone,omitempty"`
	PasswordHash    string  `gorm:"type:varchar(255);not null"                     json:"-"`
	Role            string  `gorm:"type:varchar(20);not null;default:'guardian'"   json:"role"`
	VolunteerStatus *string `gorm:"type:varchar(20)"                               json:"volunteer_status,omitempty"`
	SoftDeleteModel
	Version int `gorm:"not null;default:1" json:"version"`
}

// TableName sets the table name.
func (User) TableName() string { return "users" }

// IsApprovedVolunteer reports whether the user may accept requests.
func (u *User) IsApprovedVolunteer() bool {
	return u.Role == RoleVolunteer && u.VolunteerStatus != nil && *u.VolunteerStatus == VolunteerApproved
}
