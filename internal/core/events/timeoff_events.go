package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TimeOffRequested = "timeoff.requested"
	TimeOffCancelled = "timeoff.cancelled"
	TimeOffReviewed  = "timeoff.reviewed"
)

func newBaseEvent(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

func NewTimeOffRequestedEvent(entryID, userID int64, date string) Event {
	return newBaseEvent(TimeOffRequested, map[string]interface{}{
		"entry_id": entryID,
		"user_id":  userID,
		"date":     date,
	})
}

func NewTimeOffCancelledEvent(entryID, userID int64, date string) Event {
	return newBaseEvent(TimeOffCancelled, map[string]interface{}{
		"entry_id": entryID,
		"user_id":  userID,
		"date":     date,
	})
}

func NewTimeOffReviewedEvent(entryID, reviewerID int64, decision string) Event {
	return newBaseEvent(TimeOffReviewed, map[string]interface{}{
		"entry_id":    entryID,
		"reviewer_id": reviewerID,
		"decision":    decision,
	})
}
