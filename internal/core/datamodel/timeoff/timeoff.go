package timeoff

import "time"

// Entry is the persistence model for time off requests. Dates are stored as
// zero-padded YYYY-MM-DD strings so lexicographic order is chronological order.
type Entry struct {
	ID              int64      `json:"id" gorm:"primaryKey"`
	UserID          int64      `json:"user_id" gorm:"column:user_id;not null;index"`
	Date            string     `json:"date" gorm:"not null;index;size:10"`
	Status          string     `json:"status" gorm:"not null;index;default:pending"`
	ReviewedBy      *int64     `json:"reviewed_by,omitempty" gorm:"column:reviewed_by"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty" gorm:"column:reviewed_at"`
	RejectionReason *string    `json:"rejection_reason,omitempty" gorm:"column:rejection_reason"`
	CreatedAt       time.Time  `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt       time.Time  `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Entry) TableName() string {
	return "time_off_entries"
}
