package directory

import (
	"time"

	directoryDatamodel "github.com/frahmantamala/timeoff-management/internal/core/datamodel/directory"
)

type Department struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Team struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	DepartmentID int64     `json:"department_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// TeamWithDepartment pairs a team with its owning department for display.
type TeamWithDepartment struct {
	Team       *Team       `json:"team"`
	Department *Department `json:"department"`
}

func DepartmentFromDataModel(d *directoryDatamodel.Department) *Department {
	return &Department{
		ID:        d.ID,
		Name:      d.Name,
		CreatedAt: d.CreatedAt,
	}
}

func TeamFromDataModel(t *directoryDatamodel.Team) *Team {
	return &Team{
		ID:           t.ID,
		Name:         t.Name,
		DepartmentID: t.DepartmentID,
		CreatedAt:    t.CreatedAt,
	}
}

func DepartmentsFromDataModel(depts []*directoryDatamodel.Department) []*Department {
	result := make([]*Department, len(depts))
	for i, d := range depts {
		result[i] = DepartmentFromDataModel(d)
	}
	return result
}

func TeamsFromDataModel(teams []*directoryDatamodel.Team) []*Team {
	result := make([]*Team, len(teams))
	for i, t := range teams {
		result[i] = TeamFromDataModel(t)
	}
	return result
}
