package directory

import (
	"net/http"
	"strconv"

	"github.com/frahmantamala/timeoff-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Departments() ([]*Department, error)
	Teams(departmentID *int64) ([]*Team, error)
	TeamWithDepartment(teamID int64) (*TeamWithDepartment, error)
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

func (h *Handler) GetDepartments(w http.ResponseWriter, r *http.Request) {
	depts, err := h.Service.Departments()
	if err != nil {
		h.Logger.Error("GetDepartments: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to list departments")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"departments": depts})
}

func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	var departmentID *int64
	if deptStr := r.URL.Query().Get("department_id"); deptStr != "" {
		id, err := strconv.ParseInt(deptStr, 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid department_id")
			return
		}
		departmentID = &id
	}

	teams, err := h.Service.Teams(departmentID)
	if err != nil {
		h.Logger.Error("GetTeams: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to list teams")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"teams": teams})
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	teamIDStr := chi.URLParam(r, "id")
	teamID, err := strconv.ParseInt(teamIDStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid team ID")
		return
	}

	result, err := h.Service.TeamWithDepartment(teamID)
	if err != nil {
		h.Logger.Error("GetTeam: service error", "error", err, "team_id", teamID)
		h.WriteError(w, http.StatusInternalServerError, "failed to get team")
		return
	}
	if result == nil {
		h.WriteError(w, http.StatusNotFound, "team not found")
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}
