package user

import (
	"strings"
	"time"

	userDatamodel "github.com/frahmantamala/timeoff-management/internal/core/datamodel/user"
)

// Role is a closed enumeration. Input is normalized once at the boundary via
// ParseRole; everything downstream compares by value.
type Role string

const (
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RoleManager):
		return RoleManager, true
	case string(RoleEmployee):
		return RoleEmployee, true
	default:
		return "", false
	}
}

type User struct {
	ID           int64     `json:"id"`
	ExternalID   string    `json:"external_id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Title        *string   `json:"title,omitempty"`
	TeamID       *int64    `json:"team_id,omitempty"`
	DepartmentID *int64    `json:"department_id,omitempty"`
	ImageURL     *string   `json:"image_url,omitempty"`
	IsOnboarded  bool      `json:"is_onboarded"`
	Role         Role      `json:"role,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// SameTeam reports whether both users carry the same non-empty team assignment.
func (u *User) SameTeam(other *User) bool {
	if u.TeamID == nil || other.TeamID == nil {
		return false
	}
	return *u.TeamID == *other.TeamID
}

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:           u.ID,
		ExternalID:   u.ExternalID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Title:        u.Title,
		TeamID:       u.TeamID,
		DepartmentID: u.DepartmentID,
		ImageURL:     u.ImageURL,
		IsOnboarded:  u.IsOnboarded,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func FromDataModel(u *userDatamodel.User) *User {
	role, _ := ParseRole(u.Role)
	return &User{
		ID:           u.ID,
		ExternalID:   u.ExternalID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Title:        u.Title,
		TeamID:       u.TeamID,
		DepartmentID: u.DepartmentID,
		ImageURL:     u.ImageURL,
		IsOnboarded:  u.IsOnboarded,
		Role:         role,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func FromDataModelSlice(users []*userDatamodel.User) []*User {
	result := make([]*User, len(users))
	for i, u := range users {
		result[i] = FromDataModel(u)
	}
	return result
}
