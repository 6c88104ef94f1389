package timeoff

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/frahmantamala/timeoff-management/internal"
	"github.com/frahmantamala/timeoff-management/internal/transport"
	"github.com/frahmantamala/timeoff-management/internal/user"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	RequestTimeOff(userID int64, dto RequestTimeOffDTO) (int64, error)
	CancelTimeOff(userID int64, date string) error
	ReviewTimeOff(entryID, reviewerID int64, dto ReviewDTO) (int64, error)
	MyTimeOff(userID int64) ([]*Entry, error)
	TimeOffInRange(q RangeQuery) ([]*EntryWithUser, error)
	PendingForManager(managerID int64) ([]*EntryWithUser, error)
	TimeOffByDepartment(departmentID int64) ([]*EntryWithUser, error)
	TimeOffByTeam(teamID int64) ([]*EntryWithUser, error)
}

// UserResolver maps the authenticated identity to a directory user.
type UserResolver interface {
	GetByExternalID(externalID string) (*user.User, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	Users   UserResolver
}

func NewHandler(base *transport.BaseHandler, service ServiceAPI, users UserResolver) *Handler {
	return &Handler{
		BaseHandler: base,
		Service:     service,
		Users:       users,
	}
}

func (h *Handler) currentUser(r *http.Request) (*user.User, *internal.AppError) {
	claims, ok := internal.ClaimsFromContext(r.Context())
	if !ok {
		return nil, internal.NewUnauthorizedError("unauthorized", internal.ErrCodeInvalidToken)
	}

	u, err := h.Users.GetByExternalID(claims.ExternalID)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return nil, appErr
		}
		return nil, internal.NewInternalError("failed to resolve user", err)
	}
	return u, nil
}

// RequestTimeOff handles POST /timeoff.
func (h *Handler) RequestTimeOff(w http.ResponseWriter, r *http.Request) {
	u, appErr := h.currentUser(r)
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	var dto RequestTimeOffDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entryID, err := h.Service.RequestTimeOff(u.ID, dto)
	if err != nil {
		h.Logger.Error("RequestTimeOff: service error", "error", err, "user_id", u.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]int64{"entry_id": entryID})
}

// CancelTimeOff handles DELETE /timeoff/{date}.
func (h *Handler) CancelTimeOff(w http.ResponseWriter, r *http.Request) {
	u, appErr := h.currentUser(r)
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	date := chi.URLParam(r, "date")
	if err := h.Service.CancelTimeOff(u.ID, date); err != nil {
		h.Logger.Error("CancelTimeOff: service error", "error", err, "user_id", u.ID, "date", date)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

// ReviewTimeOff handles PATCH /timeoff/{id}/review.
func (h *Handler) ReviewTimeOff(w http.ResponseWriter, r *http.Request) {
	u, appErr := h.currentUser(r)
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	entryIDStr := chi.URLParam(r, "id")
	entryID, err := strconv.ParseInt(entryIDStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid entry ID")
		return
	}

	var dto ReviewDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := h.Service.ReviewTimeOff(entryID, u.ID, dto); err != nil {
		h.Logger.Error("ReviewTimeOff: service error", "error", err, "entry_id", entryID, "reviewer_id", u.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("ReviewTimeOff: decision recorded",
		"entry_id", entryID,
		"reviewer_id", u.ID,
		"decision", dto.Decision)
	h.WriteJSON(w, http.StatusOK, map[string]int64{"entry_id": entryID})
}

// GetMyTimeOff handles GET /timeoff/mine.
func (h *Handler) GetMyTimeOff(w http.ResponseWriter, r *http.Request) {
	u, appErr := h.currentUser(r)
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	entries, err := h.Service.MyTimeOff(u.ID)
	if err != nil {
		h.Logger.Error("GetMyTimeOff: service error", "error", err, "user_id", u.ID)
		h.WriteError(w, http.StatusInternalServerError, "failed to list time off")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

// GetCalendar handles GET /timeoff/calendar.
func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	if _, appErr := h.currentUser(r); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	q := RangeQuery{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}
	if deptStr := r.URL.Query().Get("department_id"); deptStr != "" {
		id, err := strconv.ParseInt(deptStr, 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid department_id")
			return
		}
		q.DepartmentID = &id
	}
	if teamStr := r.URL.Query().Get("team_id"); teamStr != "" {
		id, err := strconv.ParseInt(teamStr, 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid team_id")
			return
		}
		q.TeamID = &id
	}

	entries, err := h.Service.TimeOffInRange(q)
	if err != nil {
		h.Logger.Error("GetCalendar: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

// GetPendingApprovals handles GET /timeoff/pending.
func (h *Handler) GetPendingApprovals(w http.ResponseWriter, r *http.Request) {
	u, appErr := h.currentUser(r)
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	entries, err := h.Service.PendingForManager(u.ID)
	if err != nil {
		h.Logger.Error("GetPendingApprovals: service error", "error", err, "manager_id", u.ID)
		h.WriteError(w, http.StatusInternalServerError, "failed to list pending requests")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

// GetTimeOffByDepartment handles GET /departments/{id}/timeoff.
func (h *Handler) GetTimeOffByDepartment(w http.ResponseWriter, r *http.Request) {
	deptIDStr := chi.URLParam(r, "id")
	deptID, err := strconv.ParseInt(deptIDStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid department ID")
		return
	}

	entries, err := h.Service.TimeOffByDepartment(deptID)
	if err != nil {
		h.Logger.Error("GetTimeOffByDepartment: service error", "error", err, "department_id", deptID)
		h.WriteError(w, http.StatusInternalServerError, "failed to list department time off")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

// GetTimeOffByTeam handles GET /teams/{id}/timeoff.
func (h *Handler) GetTimeOffByTeam(w http.ResponseWriter, r *http.Request) {
	teamIDStr := chi.URLParam(r, "id")
	teamID, err := strconv.ParseInt(teamIDStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid team ID")
		return
	}

	entries, err := h.Service.TimeOffByTeam(teamID)
	if err != nil {
		h.Logger.Error("GetTimeOffByTeam: service error", "error", err, "team_id", teamID)
		h.WriteError(w, http.StatusInternalServerError, "failed to list team time off")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}
