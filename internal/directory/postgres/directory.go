package postgres

import (
	"errors"

	directoryDatamodel "github.com/frahmantamala/timeoff-management/internal/core/datamodel/directory"
	"github.com/frahmantamala/timeoff-management/internal/directory"
	"gorm.io/gorm"
)

// DirectoryRepository implements directory.Repository using GORM.
type DirectoryRepository struct {
	db *gorm.DB
}

func NewDirectoryRepository(db *gorm.DB) directory.Repository {
	return &DirectoryRepository{db: db}
}

func (r *DirectoryRepository) Departments() ([]*directoryDatamodel.Department, error) {
	var depts []*directoryDatamodel.Department
	err := r.db.Order("name ASC").Find(&depts).Error
	return depts, err
}

func (r *DirectoryRepository) Teams() ([]*directoryDatamodel.Team, error) {
	var teams []*directoryDatamodel.Team
	err := r.db.Order("name ASC").Find(&teams).Error
	return teams, err
}

func (r *DirectoryRepository) TeamsByDepartment(departmentID int64) ([]*directoryDatamodel.Team, error) {
	var teams []*directoryDatamodel.Team
	err := r.db.Where("department_id = ?", departmentID).Order("name ASC").Find(&teams).Error
	return teams, err
}

func (r *DirectoryRepository) GetTeam(id int64) (*directoryDatamodel.Team, error) {
	var team directoryDatamodel.Team
	err := r.db.Where("id = ?", id).First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

func (r *DirectoryRepository) GetDepartment(id int64) (*directoryDatamodel.Department, error) {
	var dept directoryDatamodel.Department
	err := r.db.Where("id = ?", id).First(&dept).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dept, nil
}

func (r *DirectoryRepository) CountDepartments() (int64, error) {
	var count int64
	err := r.db.Model(&directoryDatamodel.Department{}).Count(&count).Error
	return count, err
}

func (r *DirectoryRepository) CreateDepartment(dept *directoryDatamodel.Department) error {
	return r.db.Create(dept).Error
}

func (r *DirectoryRepository) CreateTeam(team *directoryDatamodel.Team) error {
	return r.db.Create(team).Error
}
