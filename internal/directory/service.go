package directory

import (
	"log/slog"

	directoryDatamodel "github.com/frahmantamala/timeoff-management/internal/core/datamodel/directory"
)

// Repository defines the data access methods for the department/team hierarchy.
type Repository interface {
	Departments() ([]*directoryDatamodel.Department, error)
	Teams() ([]*directoryDatamodel.Team, error)
	TeamsByDepartment(departmentID int64) ([]*directoryDatamodel.Team, error)
	GetTeam(id int64) (*directoryDatamodel.Team, error)
	GetDepartment(id int64) (*directoryDatamodel.Department, error)
	CountDepartments() (int64, error)
	CreateDepartment(dept *directoryDatamodel.Department) error
	CreateTeam(team *directoryDatamodel.Team) error
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

func (s *Service) Departments() ([]*Department, error) {
	depts, err := s.repo.Departments()
	if err != nil {
		s.logger.Error("failed to list departments", "error", err)
		return nil, err
	}
	return DepartmentsFromDataModel(depts), nil
}

// Teams lists all teams, optionally scoped to one department. An unknown
// department id yields an empty list, not an error.
func (s *Service) Teams(departmentID *int64) ([]*Team, error) {
	var (
		teams []*directoryDatamodel.Team
		err   error
	)
	if departmentID != nil {
		teams, err = s.repo.TeamsByDepartment(*departmentID)
	} else {
		teams, err = s.repo.Teams()
	}
	if err != nil {
		s.logger.Error("failed to list teams", "error", err)
		return nil, err
	}
	return TeamsFromDataModel(teams), nil
}

// TeamWithDepartment resolves a team together with its department. A missing
// team yields nil, not an error.
func (s *Service) TeamWithDepartment(teamID int64) (*TeamWithDepartment, error) {
	team, err := s.repo.GetTeam(teamID)
	if err != nil {
		s.logger.Error("failed to get team", "error", err, "team_id", teamID)
		return nil, err
	}
	if team == nil {
		return nil, nil
	}

	dept, err := s.repo.GetDepartment(team.DepartmentID)
	if err != nil {
		s.logger.Error("failed to get department", "error", err, "department_id", team.DepartmentID)
		return nil, err
	}

	result := &TeamWithDepartment{Team: TeamFromDataModel(team)}
	if dept != nil {
		result.Department = DepartmentFromDataModel(dept)
	}
	return result, nil
}
