package user

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/frahmantamala/timeoff-management/internal"
	"github.com/frahmantamala/timeoff-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Register(dto RegisterUserDTO) (*User, error)
	GetByExternalID(externalID string) (*User, error)
	CompleteOnboarding(userID int64, dto OnboardingDTO) (int64, error)
	UpdateName(userID int64, dto UpdateNameDTO) (int64, error)
	UsersByTeam(teamID int64) ([]*User, error)
	UsersByDepartment(departmentID int64) ([]*User, error)
	TeamHasManager(teamID int64) (*TeamManagerStatus, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(base *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: base,
		Service:     service,
	}
}

// currentUser resolves the authenticated caller to a directory user.
func (h *Handler) currentUser(r *http.Request) (*User, *internal.AppError) {
	claims, ok := internal.ClaimsFromContext(r.Context())
	if !ok {
		return nil, internal.NewUnauthorizedError("unauthorized", internal.ErrCodeInvalidToken)
	}

	u, err := h.Service.GetByExternalID(claims.ExternalID)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return nil, appErr
		}
		return nil, internal.NewInternalError("failed to resolve user", err)
	}
	return u, nil
}

// GetCurrentUser handles GET /users/me.
func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	u, appErr := h.currentUser(r)
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}
	h.WriteJSON(w, http.StatusOK, u)
}

// SyncCurrentUser handles POST /users/sync: insert-if-absent from the verified
// token claims, mirroring the identity webhook for first app visits.
func (h *Handler) SyncCurrentUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := internal.ClaimsFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	dto := RegisterUserDTO{
		ExternalID: claims.ExternalID,
		Email:      claims.Email,
		FirstName:  claims.FirstName,
		LastName:   claims.LastName,
	}
	if claims.ImageURL != "" {
		dto.ImageURL = &claims.ImageURL
	}

	u, err := h.Service.Register(dto)
	if err != nil {
		h.Logger.Error("SyncCurrentUser: service error", "error", err, "external_id", claims.ExternalID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}

// CompleteOnboarding handles POST /users/me/onboarding.
func (h *Handler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	u, appErr := h.currentUser(r)
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	var dto OnboardingDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := h.Service.CompleteOnboarding(u.ID, dto); err != nil {
		h.Logger.Error("CompleteOnboarding: service error", "error", err, "user_id", u.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CompleteOnboarding: profile completed", "user_id", u.ID)
	h.WriteJSON(w, http.StatusOK, map[string]int64{"user_id": u.ID})
}

// UpdateName handles PATCH /users/me/name.
func (h *Handler) UpdateName(w http.ResponseWriter, r *http.Request) {
	u, appErr := h.currentUser(r)
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	var dto UpdateNameDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := h.Service.UpdateName(u.ID, dto); err != nil {
		h.Logger.Error("UpdateName: service error", "error", err, "user_id", u.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]int64{"user_id": u.ID})
}

// GetTeamManagerStatus handles GET /teams/{id}/manager.
func (h *Handler) GetTeamManagerStatus(w http.ResponseWriter, r *http.Request) {
	teamIDStr := chi.URLParam(r, "id")
	teamID, err := strconv.ParseInt(teamIDStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid team ID")
		return
	}

	status, err := h.Service.TeamHasManager(teamID)
	if err != nil {
		h.Logger.Error("GetTeamManagerStatus: service error", "error", err, "team_id", teamID)
		h.WriteError(w, http.StatusInternalServerError, "failed to check team manager")
		return
	}

	h.WriteJSON(w, http.StatusOK, status)
}
