package timeoff

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/frahmantamala/timeoff-management/internal"
	timeoffDatamodel "github.com/frahmantamala/timeoff-management/internal/core/datamodel/timeoff"
	"github.com/frahmantamala/timeoff-management/internal/core/events"
	"github.com/frahmantamala/timeoff-management/internal/user"
)

// Repository defines the data access methods for the time off ledger.
// Single-record lookups return (nil, nil) when no record matches.
type Repository interface {
	Create(e *timeoffDatamodel.Entry) error
	GetByID(id int64) (*timeoffDatamodel.Entry, error)
	GetByUserAndDate(userID int64, date string) (*timeoffDatamodel.Entry, error)
	GetByUserID(userID int64) ([]*timeoffDatamodel.Entry, error)
	GetByUserIDs(userIDs []int64) ([]*timeoffDatamodel.Entry, error)
	GetInRange(startDate, endDate string) ([]*timeoffDatamodel.Entry, error)
	UpdateReview(id int64, status string, reviewedBy int64, reviewedAt time.Time, rejectionReason *string) error
	Delete(id int64) error
}

// UserDirectory is the read-only slice of the user service the workflow needs
// for authorization scoping and entry/user joins.
type UserDirectory interface {
	GetByID(id int64) (*user.User, error)
	UsersByTeam(teamID int64) ([]*user.User, error)
	UsersByDepartment(departmentID int64) ([]*user.User, error)
}

// Service is the workflow engine and read-side query layer over the ledger.
type Service struct {
	repo   Repository
	users  UserDirectory
	events events.Publisher
	logger *slog.Logger
}

func NewService(repo Repository, users UserDirectory, bus events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		events: bus,
		logger: logger,
	}
}

func (s *Service) publish(event events.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(context.Background(), event); err != nil {
		s.logger.Error("failed to publish event", "error", err, "event_type", event.EventType())
	}
}

// RequestTimeOff records one pending request for (user, date). Calling it
// again for the same pair returns the existing entry id and does not touch
// its status.
func (s *Service) RequestTimeOff(userID int64, dto RequestTimeOffDTO) (int64, error) {
	if err := dto.Validate(); err != nil {
		return 0, internal.NewValidationError(err.Error(), internal.ErrCodeInvalidDate)
	}

	existing, err := s.repo.GetByUserAndDate(userID, dto.Date)
	if err != nil {
		s.logger.Error("failed to look up entry", "error", err, "user_id", userID, "date", dto.Date)
		return 0, err
	}
	if existing != nil {
		return existing.ID, nil
	}

	entry := &timeoffDatamodel.Entry{
		UserID: userID,
		Date:   dto.Date,
		Status: string(StatusPending),
	}
	if err := s.repo.Create(entry); err != nil {
		s.logger.Error("failed to create entry", "error", err, "user_id", userID, "date", dto.Date)
		return 0, err
	}

	s.logger.Info("time off requested", "entry_id", entry.ID, "user_id", userID, "date", dto.Date)
	s.publish(events.NewTimeOffRequestedEvent(entry.ID, userID, dto.Date))

	return entry.ID, nil
}

// CancelTimeOff deletes the (user, date) entry. A missing entry is a no-op;
// an approved entry cannot be removed by its owner.
func (s *Service) CancelTimeOff(userID int64, date string) error {
	if !ValidDate(date) {
		return internal.NewValidationError("date must be a calendar day in YYYY-MM-DD format", internal.ErrCodeInvalidDate)
	}

	entry, err := s.repo.GetByUserAndDate(userID, date)
	if err != nil {
		s.logger.Error("failed to look up entry", "error", err, "user_id", userID, "date", date)
		return err
	}
	if entry == nil {
		return nil
	}

	if Status(entry.Status) == StatusApproved {
		s.logger.Warn("cancel rejected: entry already approved", "entry_id", entry.ID, "user_id", userID)
		return internal.ErrApprovedImmutable
	}

	if err := s.repo.Delete(entry.ID); err != nil {
		s.logger.Error("failed to delete entry", "error", err, "entry_id", entry.ID)
		return err
	}

	s.logger.Info("time off cancelled", "entry_id", entry.ID, "user_id", userID, "date", date)
	s.publish(events.NewTimeOffCancelledEvent(entry.ID, userID, date))

	return nil
}

// ReviewTimeOff applies a manager's decision. Preconditions are checked in
// order: entry exists, owner exists, reviewer exists, reviewer is a manager,
// reviewer is on the owner's team. A rejection reason is stored only on
// rejection and cleared otherwise. Re-reviewing a decided entry is allowed.
func (s *Service) ReviewTimeOff(entryID, reviewerID int64, dto ReviewDTO) (int64, error) {
	if err := dto.Validate(); err != nil {
		return 0, internal.NewValidationError(err.Error(), internal.ErrCodeInvalidDecision)
	}
	decision, _ := ParseDecision(dto.Decision)

	entry, err := s.repo.GetByID(entryID)
	if err != nil {
		s.logger.Error("failed to look up entry", "error", err, "entry_id", entryID)
		return 0, err
	}
	if entry == nil {
		return 0, internal.ErrEntryNotFound
	}

	owner, err := s.lookupUser(entry.UserID)
	if err != nil {
		return 0, err
	}
	if owner == nil {
		return 0, internal.ErrUserNotFound
	}

	reviewer, err := s.lookupUser(reviewerID)
	if err != nil {
		return 0, err
	}
	if reviewer == nil {
		return 0, internal.ErrReviewerNotFound
	}

	if !reviewer.IsManager() {
		s.logger.Warn("review denied: reviewer is not a manager",
			"entry_id", entryID,
			"reviewer_id", reviewerID)
		return 0, internal.ErrNotManager
	}

	if !reviewer.SameTeam(owner) {
		s.logger.Warn("review denied: reviewer not on owner's team",
			"entry_id", entryID,
			"reviewer_id", reviewerID,
			"owner_id", owner.ID)
		return 0, internal.ErrWrongTeam
	}

	var reason *string
	if decision == StatusRejected {
		reason = dto.RejectionReason
	}

	if err := s.repo.UpdateReview(entryID, string(decision), reviewerID, time.Now(), reason); err != nil {
		s.logger.Error("failed to record review", "error", err, "entry_id", entryID)
		return 0, err
	}

	s.logger.Info("time off reviewed",
		"entry_id", entryID,
		"reviewer_id", reviewerID,
		"decision", decision)
	s.publish(events.NewTimeOffReviewedEvent(entryID, reviewerID, string(decision)))

	return entryID, nil
}

// MyTimeOff returns all of one user's entries. Callers sort as needed.
func (s *Service) MyTimeOff(userID int64) ([]*Entry, error) {
	entries, err := s.repo.GetByUserID(userID)
	if err != nil {
		s.logger.Error("failed to list entries", "error", err, "user_id", userID)
		return nil, err
	}
	return FromDataModelSlice(entries), nil
}

// TimeOffInRange returns entries in the inclusive [start, end] range joined
// with their owning users. Entries whose user no longer exists are dropped.
// Department/team filters match the owner's current assignment.
func (s *Service) TimeOffInRange(q RangeQuery) ([]*EntryWithUser, error) {
	if err := q.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeInvalidDate)
	}

	entries, err := s.repo.GetInRange(q.StartDate, q.EndDate)
	if err != nil {
		s.logger.Error("failed to query entries in range", "error", err,
			"start", q.StartDate, "end", q.EndDate)
		return nil, err
	}

	userCache := make(map[int64]*user.User)
	result := make([]*EntryWithUser, 0, len(entries))
	for _, e := range entries {
		owner, cached := userCache[e.UserID]
		if !cached {
			owner, err = s.lookupUser(e.UserID)
			if err != nil {
				return nil, err
			}
			userCache[e.UserID] = owner
		}
		if owner == nil {
			continue
		}

		if q.DepartmentID != nil && (owner.DepartmentID == nil || *owner.DepartmentID != *q.DepartmentID) {
			continue
		}
		if q.TeamID != nil && (owner.TeamID == nil || *owner.TeamID != *q.TeamID) {
			continue
		}

		result = append(result, &EntryWithUser{Entry: *FromDataModel(e), User: owner})
	}

	return result, nil
}

// PendingForManager returns the pending requests of the manager's teammates,
// sorted ascending by date. The manager's own entries are excluded. A caller
// who is not a manager with a team gets an empty list, not an error.
func (s *Service) PendingForManager(managerID int64) ([]*EntryWithUser, error) {
	manager, err := s.lookupUser(managerID)
	if err != nil {
		return nil, err
	}
	if manager == nil || !manager.IsManager() || manager.TeamID == nil {
		return []*EntryWithUser{}, nil
	}

	teamUsers, err := s.users.UsersByTeam(*manager.TeamID)
	if err != nil {
		s.logger.Error("failed to list team users", "error", err, "team_id", *manager.TeamID)
		return nil, err
	}

	byID := make(map[int64]*user.User, len(teamUsers))
	userIDs := make([]int64, 0, len(teamUsers))
	for _, u := range teamUsers {
		if u.ID == managerID {
			continue
		}
		byID[u.ID] = u
		userIDs = append(userIDs, u.ID)
	}
	if len(userIDs) == 0 {
		return []*EntryWithUser{}, nil
	}

	entries, err := s.repo.GetByUserIDs(userIDs)
	if err != nil {
		s.logger.Error("failed to list team entries", "error", err, "team_id", *manager.TeamID)
		return nil, err
	}

	result := make([]*EntryWithUser, 0, len(entries))
	for _, e := range entries {
		if Status(e.Status) != StatusPending {
			continue
		}
		result = append(result, &EntryWithUser{Entry: *FromDataModel(e), User: byID[e.UserID]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})

	return result, nil
}

// TimeOffByDepartment returns all entries, any status, for users currently in
// the department. An unknown department yields an empty list.
func (s *Service) TimeOffByDepartment(departmentID int64) ([]*EntryWithUser, error) {
	users, err := s.users.UsersByDepartment(departmentID)
	if err != nil {
		s.logger.Error("failed to list department users", "error", err, "department_id", departmentID)
		return nil, err
	}
	return s.entriesForUsers(users)
}

// TimeOffByTeam returns all entries, any status, for users currently on the
// team. An unknown team yields an empty list.
func (s *Service) TimeOffByTeam(teamID int64) ([]*EntryWithUser, error) {
	users, err := s.users.UsersByTeam(teamID)
	if err != nil {
		s.logger.Error("failed to list team users", "error", err, "team_id", teamID)
		return nil, err
	}
	return s.entriesForUsers(users)
}

func (s *Service) entriesForUsers(users []*user.User) ([]*EntryWithUser, error) {
	if len(users) == 0 {
		return []*EntryWithUser{}, nil
	}

	byID := make(map[int64]*user.User, len(users))
	userIDs := make([]int64, 0, len(users))
	for _, u := range users {
		byID[u.ID] = u
		userIDs = append(userIDs, u.ID)
	}

	entries, err := s.repo.GetByUserIDs(userIDs)
	if err != nil {
		s.logger.Error("failed to list entries for users", "error", err)
		return nil, err
	}

	result := make([]*EntryWithUser, 0, len(entries))
	for _, e := range entries {
		result = append(result, &EntryWithUser{Entry: *FromDataModel(e), User: byID[e.UserID]})
	}
	return result, nil
}

// lookupUser maps the user service's not-found error to (nil, nil) so call
// sites can raise their own precondition error.
func (s *Service) lookupUser(id int64) (*user.User, error) {
	u, err := s.users.GetByID(id)
	if err != nil {
		if errors.Is(err, internal.ErrUserNotFound) {
			return nil, nil
		}
		s.logger.Error("failed to look up user", "error", err, "user_id", id)
		return nil, err
	}
	return u, nil
}
