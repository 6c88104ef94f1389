package user

import (
	"fmt"
	"log/slog"

	"github.com/frahmantamala/timeoff-management/internal"
	userDatamodel "github.com/frahmantamala/timeoff-management/internal/core/datamodel/user"
)

// Repository defines the data access methods for directory users. Lookups
// return (nil, nil) when no record matches.
type Repository interface {
	Create(u *userDatamodel.User) error
	GetByID(id int64) (*userDatamodel.User, error)
	GetByExternalID(externalID string) (*userDatamodel.User, error)
	GetByTeamID(teamID int64) ([]*userDatamodel.User, error)
	GetByDepartmentID(departmentID int64) ([]*userDatamodel.User, error)
	UpdateProfile(id int64, title string, teamID, departmentID int64, role string) error
	UpdateName(id int64, firstName, lastName string) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Register inserts a user keyed by external identity id. When the user already
// exists the stored record is returned untouched; this path never overwrites.
func (s *Service) Register(dto RegisterUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	existing, err := s.repo.GetByExternalID(dto.ExternalID)
	if err != nil {
		s.logger.Error("failed to look up user by external id", "error", err, "external_id", dto.ExternalID)
		return nil, err
	}
	if existing != nil {
		return FromDataModel(existing), nil
	}

	record := &userDatamodel.User{
		ExternalID: dto.ExternalID,
		Email:      dto.Email,
		FirstName:  dto.FirstName,
		LastName:   dto.LastName,
		ImageURL:   dto.ImageURL,
	}
	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create user", "error", err, "external_id", dto.ExternalID)
		return nil, err
	}

	s.logger.Info("user registered", "user_id", record.ID, "external_id", dto.ExternalID)
	return FromDataModel(record), nil
}

func (s *Service) GetByID(id int64) (*User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	if u == nil {
		return nil, internal.ErrUserNotFound
	}
	return FromDataModel(u), nil
}

func (s *Service) GetByExternalID(externalID string) (*User, error) {
	u, err := s.repo.GetByExternalID(externalID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by external id: %w", err)
	}
	if u == nil {
		return nil, internal.ErrUserNotFound
	}
	return FromDataModel(u), nil
}

// CompleteOnboarding assigns title, team, department and role in one step and
// marks the user onboarded. This is the only path that sets is_onboarded.
// When the chosen role is manager, the team is scanned first: a second manager
// on the same team is a conflict naming the existing one.
func (s *Service) CompleteOnboarding(userID int64, dto OnboardingDTO) (int64, error) {
	if err := dto.Validate(); err != nil {
		return 0, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	record, err := s.repo.GetByID(userID)
	if err != nil {
		s.logger.Error("failed to get user for onboarding", "error", err, "user_id", userID)
		return 0, err
	}
	if record == nil {
		return 0, internal.ErrUserNotFound
	}

	role, _ := ParseRole(dto.Role)

	if role == RoleManager {
		teamUsers, err := s.repo.GetByTeamID(dto.TeamID)
		if err != nil {
			s.logger.Error("failed to scan team for managers", "error", err, "team_id", dto.TeamID)
			return 0, err
		}
		for _, tu := range teamUsers {
			existingRole, _ := ParseRole(tu.Role)
			if existingRole == RoleManager && tu.ID != userID {
				s.logger.Warn("onboarding rejected: team already has a manager",
					"team_id", dto.TeamID,
					"existing_manager_id", tu.ID)
				return 0, internal.NewConflictError(
					fmt.Sprintf("this team already has a manager: %s %s", tu.FirstName, tu.LastName),
					internal.ErrCodeManagerExists)
			}
		}
	}

	if err := s.repo.UpdateProfile(userID, dto.Title, dto.TeamID, dto.DepartmentID, string(role)); err != nil {
		s.logger.Error("failed to update profile", "error", err, "user_id", userID)
		return 0, err
	}

	s.logger.Info("user onboarded",
		"user_id", userID,
		"team_id", dto.TeamID,
		"department_id", dto.DepartmentID,
		"role", role)
	return userID, nil
}

func (s *Service) UpdateName(userID int64, dto UpdateNameDTO) (int64, error) {
	if err := dto.Validate(); err != nil {
		return 0, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	record, err := s.repo.GetByID(userID)
	if err != nil {
		return 0, err
	}
	if record == nil {
		return 0, internal.ErrUserNotFound
	}

	if err := s.repo.UpdateName(userID, dto.FirstName, dto.LastName); err != nil {
		s.logger.Error("failed to update name", "error", err, "user_id", userID)
		return 0, err
	}
	return userID, nil
}

func (s *Service) UsersByTeam(teamID int64) ([]*User, error) {
	users, err := s.repo.GetByTeamID(teamID)
	if err != nil {
		s.logger.Error("failed to list users by team", "error", err, "team_id", teamID)
		return nil, err
	}
	return FromDataModelSlice(users), nil
}

func (s *Service) UsersByDepartment(departmentID int64) ([]*User, error) {
	users, err := s.repo.GetByDepartmentID(departmentID)
	if err != nil {
		s.logger.Error("failed to list users by department", "error", err, "department_id", departmentID)
		return nil, err
	}
	return FromDataModelSlice(users), nil
}

// TeamHasManager reports whether the team already has a manager, with the
// manager's name for the onboarding form hint.
func (s *Service) TeamHasManager(teamID int64) (*TeamManagerStatus, error) {
	users, err := s.repo.GetByTeamID(teamID)
	if err != nil {
		s.logger.Error("failed to scan team for manager", "error", err, "team_id", teamID)
		return nil, err
	}

	for _, u := range users {
		role, _ := ParseRole(u.Role)
		if role == RoleManager {
			return &TeamManagerStatus{
				HasManager: true,
				Manager:    &ManagerName{FirstName: u.FirstName, LastName: u.LastName},
			}, nil
		}
	}
	return &TeamManagerStatus{HasManager: false}, nil
}
