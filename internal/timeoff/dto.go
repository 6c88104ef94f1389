package timeoff

import "errors"

// RequestTimeOffDTO asks for a single day off.
type RequestTimeOffDTO struct {
	Date string `json:"date"`
}

func (dto RequestTimeOffDTO) Validate() error {
	if dto.Date == "" {
		return errors.New("date is required")
	}
	if !ValidDate(dto.Date) {
		return errors.New("date must be a calendar day in YYYY-MM-DD format")
	}
	return nil
}

// ReviewDTO carries a manager's decision over a pending request.
type ReviewDTO struct {
	Decision        string  `json:"decision"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

func (dto ReviewDTO) Validate() error {
	if _, ok := ParseDecision(dto.Decision); !ok {
		return errors.New("decision must be either 'approved' or 'rejected'")
	}
	return nil
}

// RangeQuery scopes the calendar view. Department and team filters apply to
// the owner's current assignment, not a historical snapshot.
type RangeQuery struct {
	StartDate    string
	EndDate      string
	DepartmentID *int64
	TeamID       *int64
}

func (q RangeQuery) Validate() error {
	if !ValidDate(q.StartDate) {
		return errors.New("start_date must be a calendar day in YYYY-MM-DD format")
	}
	if !ValidDate(q.EndDate) {
		return errors.New("end_date must be a calendar day in YYYY-MM-DD format")
	}
	if q.EndDate < q.StartDate {
		return errors.New("end_date must not be before start_date")
	}
	return nil
}
