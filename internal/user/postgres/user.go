package postgres

import (
	"errors"
	"time"

	userDatamodel "github.com/frahmantamala/timeoff-management/internal/core/datamodel/user"
	"github.com/frahmantamala/timeoff-management/internal/user"
	"gorm.io/gorm"
)

// UserRepository implements user.Repository using GORM.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *userDatamodel.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) GetByID(id int64) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByExternalID(externalID string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Where("external_id = ?", externalID).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByTeamID(teamID int64) ([]*userDatamodel.User, error) {
	var users []*userDatamodel.User
	err := r.db.Where("team_id = ?", teamID).Find(&users).Error
	return users, err
}

func (r *UserRepository) GetByDepartmentID(departmentID int64) ([]*userDatamodel.User, error) {
	var users []*userDatamodel.User
	err := r.db.Where("department_id = ?", departmentID).Find(&users).Error
	return users, err
}

func (r *UserRepository) UpdateProfile(id int64, title string, teamID, departmentID int64, role string) error {
	return r.db.Model(&userDatamodel.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"title":         title,
			"team_id":       teamID,
			"department_id": departmentID,
			"role":          role,
			"is_onboarded":  true,
			"updated_at":    time.Now(),
		}).Error
}

func (r *UserRepository) UpdateName(id int64, firstName, lastName string) error {
	return r.db.Model(&userDatamodel.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"first_name": firstName,
			"last_name":  lastName,
			"updated_at": time.Now(),
		}).Error
}
