package user

import "errors"

// RegisterUserDTO carries the identity-provider fields used to create a
// directory user on first sync or first visit.
type RegisterUserDTO struct {
	ExternalID string  `json:"external_id"`
	Email      string  `json:"email"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	ImageURL   *string `json:"image_url,omitempty"`
}

func (dto RegisterUserDTO) Validate() error {
	if dto.ExternalID == "" {
		return errors.New("external_id is required")
	}
	if dto.Email == "" {
		return errors.New("email is required")
	}
	return nil
}

// OnboardingDTO is the one-time profile completion payload.
type OnboardingDTO struct {
	Title        string `json:"title"`
	TeamID       int64  `json:"team_id"`
	DepartmentID int64  `json:"department_id"`
	Role         string `json:"role"`
}

func (dto OnboardingDTO) Validate() error {
	if dto.Title == "" {
		return errors.New("title is required")
	}
	if dto.TeamID == 0 {
		return errors.New("team_id is required")
	}
	if dto.DepartmentID == 0 {
		return errors.New("department_id is required")
	}
	if _, ok := ParseRole(dto.Role); !ok {
		return errors.New("role must be either 'manager' or 'employee'")
	}
	return nil
}

type UpdateNameDTO struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (dto UpdateNameDTO) Validate() error {
	if dto.FirstName == "" {
		return errors.New("first_name is required")
	}
	if dto.LastName == "" {
		return errors.New("last_name is required")
	}
	return nil
}

// TeamManagerStatus is the response shape for the team manager check used by
// the onboarding form.
type TeamManagerStatus struct {
	HasManager bool         `json:"has_manager"`
	Manager    *ManagerName `json:"manager,omitempty"`
}

type ManagerName struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
