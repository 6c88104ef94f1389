package postgres

import (
	"errors"
	"time"

	timeoffDatamodel "github.com/frahmantamala/timeoff-management/internal/core/datamodel/timeoff"
	"github.com/frahmantamala/timeoff-management/internal/timeoff"
	"gorm.io/gorm"
)

// TimeOffRepository implements timeoff.Repository using GORM.
type TimeOffRepository struct {
	db *gorm.DB
}

func NewTimeOffRepository(db *gorm.DB) timeoff.Repository {
	return &TimeOffRepository{db: db}
}

func (r *TimeOffRepository) Create(e *timeoffDatamodel.Entry) error {
	return r.db.Create(e).Error
}

func (r *TimeOffRepository) GetByID(id int64) (*timeoffDatamodel.Entry, error) {
	var entry timeoffDatamodel.Entry
	err := r.db.Where("id = ?", id).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *TimeOffRepository) GetByUserAndDate(userID int64, date string) (*timeoffDatamodel.Entry, error) {
	var entry timeoffDatamodel.Entry
	err := r.db.Where("user_id = ? AND date = ?", userID, date).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *TimeOffRepository) GetByUserID(userID int64) ([]*timeoffDatamodel.Entry, error) {
	var entries []*timeoffDatamodel.Entry
	err := r.db.Where("user_id = ?", userID).Find(&entries).Error
	return entries, err
}

func (r *TimeOffRepository) GetByUserIDs(userIDs []int64) ([]*timeoffDatamodel.Entry, error) {
	var entries []*timeoffDatamodel.Entry
	err := r.db.Where("user_id IN ?", userIDs).Find(&entries).Error
	return entries, err
}

func (r *TimeOffRepository) GetInRange(startDate, endDate string) ([]*timeoffDatamodel.Entry, error) {
	var entries []*timeoffDatamodel.Entry
	err := r.db.Where("date >= ? AND date <= ?", startDate, endDate).
		Order("date ASC").
		Find(&entries).Error
	return entries, err
}

// UpdateReview patches the decision fields in one statement. A nil
// rejectionReason clears any previously stored reason.
func (r *TimeOffRepository) UpdateReview(id int64, status string, reviewedBy int64, reviewedAt time.Time, rejectionReason *string) error {
	return r.db.Model(&timeoffDatamodel.Entry{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":           status,
			"reviewed_by":      reviewedBy,
			"reviewed_at":      reviewedAt,
			"rejection_reason": rejectionReason,
			"updated_at":       time.Now(),
		}).Error
}

func (r *TimeOffRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&timeoffDatamodel.Entry{}).Error
}
