package user

import "time"

// User is the persistence model for directory users. Role, TeamID and
// DepartmentID stay empty until onboarding completes.
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	ExternalID   string    `json:"external_id" gorm:"column:external_id;not null;uniqueIndex"`
	Email        string    `json:"email" gorm:"not null"`
	FirstName    string    `json:"first_name" gorm:"column:first_name;not null"`
	LastName     string    `json:"last_name" gorm:"column:last_name;not null"`
	Title        *string   `json:"title,omitempty"`
	TeamID       *int64    `json:"team_id,omitempty" gorm:"column:team_id;index"`
	DepartmentID *int64    `json:"department_id,omitempty" gorm:"column:department_id;index"`
	ImageURL     *string   `json:"image_url,omitempty" gorm:"column:image_url"`
	IsOnboarded  bool      `json:"is_onboarded" gorm:"column:is_onboarded;not null;default:false"`
	Role         string    `json:"role,omitempty"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (User) TableName() string {
	return "users"
}
