package timeoff

import (
	"strings"
	"time"

	timeoffDatamodel "github.com/frahmantamala/timeoff-management/internal/core/datamodel/timeoff"
	"github.com/frahmantamala/timeoff-management/internal/user"
)

// Status is a closed enumeration for the entry lifecycle. Raw input is
// normalized once at the boundary; all comparisons are by value.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ParseDecision accepts only the two reviewer decisions.
func ParseDecision(s string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(StatusApproved):
		return StatusApproved, true
	case string(StatusRejected):
		return StatusRejected, true
	default:
		return "", false
	}
}

// DateLayout is the wire format for calendar days. Zero-padded, so
// lexicographic comparison of two dates is chronological comparison.
const DateLayout = "2006-01-02"

func ValidDate(date string) bool {
	if len(date) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, date)
	return err == nil
}

type Entry struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"user_id"`
	Date            string     `json:"date"`
	Status          Status     `json:"status"`
	ReviewedBy      *int64     `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (e *Entry) IsPending() bool {
	return e.Status == StatusPending
}

func (e *Entry) IsApproved() bool {
	return e.Status == StatusApproved
}

// EntryWithUser joins an entry to its owning user for calendar and approval
// views.
type EntryWithUser struct {
	Entry
	User *user.User `json:"user"`
}

func FromDataModel(e *timeoffDatamodel.Entry) *Entry {
	return &Entry{
		ID:              e.ID,
		UserID:          e.UserID,
		Date:            e.Date,
		Status:          Status(e.Status),
		ReviewedBy:      e.ReviewedBy,
		ReviewedAt:      e.ReviewedAt,
		RejectionReason: e.RejectionReason,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func FromDataModelSlice(entries []*timeoffDatamodel.Entry) []*Entry {
	result := make([]*Entry, len(entries))
	for i, e := range entries {
		result[i] = FromDataModel(e)
	}
	return result
}
