package directory

import (
	directoryDatamodel "github.com/frahmantamala/timeoff-management/internal/core/datamodel/directory"
)

var seedDepartments = []string{
	"Engineering",
	"Marketing",
	"Sales",
	"Human Resources",
	"Finance",
	"Operations",
	"Enterprise Digital",
}

var seedTeams = map[string][]string{
	"Engineering":        {"Frontend", "Backend", "DevOps", "QA"},
	"Marketing":          {"Content", "Digital", "Brand"},
	"Sales":              {"Enterprise", "SMB", "Partnerships"},
	"Human Resources":    {"Recruiting", "People Ops"},
	"Finance":            {"Accounting", "FP&A"},
	"Operations":         {"IT", "Facilities"},
	"Enterprise Digital": {"Digital Strategy", "Digital Products", "Digital Transformation"},
}

// Seed bulk-inserts the fixed department/team hierarchy. It is a no-op when
// any department already exists, so re-runs are safe.
func (s *Service) Seed() (bool, error) {
	count, err := s.repo.CountDepartments()
	if err != nil {
		s.logger.Error("failed to count departments", "error", err)
		return false, err
	}
	if count > 0 {
		s.logger.Info("departments already seeded, skipping", "count", count)
		return false, nil
	}

	for _, name := range seedDepartments {
		dept := &directoryDatamodel.Department{Name: name}
		if err := s.repo.CreateDepartment(dept); err != nil {
			s.logger.Error("failed to seed department", "error", err, "name", name)
			return false, err
		}

		for _, teamName := range seedTeams[name] {
			team := &directoryDatamodel.Team{Name: teamName, DepartmentID: dept.ID}
			if err := s.repo.CreateTeam(team); err != nil {
				s.logger.Error("failed to seed team", "error", err, "name", teamName, "department", name)
				return false, err
			}
		}
	}

	s.logger.Info("departments and teams seeded")
	return true, nil
}
