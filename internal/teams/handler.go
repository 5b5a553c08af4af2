package teams

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/sadiqful/tournament/internal/apperrors"
	"github.com/sadiqful/tournament/internal/httpx"
	"github.com/sadiqful/tournament/internal/models"
)

// TeamsApp defines what the handler needs from the teams application
type TeamsApp interface {
	RegisterTeam(ctx context.Context, req RegisterTeamRequest) (*models.Team, error)
	SetStatus(ctx context.Context, id uuid.UUID, status models.TeamStatus) (*models.Team, error)
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
	ListTeams(ctx context.Context, status *models.TeamStatus) ([]models.Team, error)
	ListApprovedTeams(ctx context.Context) ([]models.Team, error)
	DeleteTeam(ctx context.Context, id uuid.UUID) error
	GetTeamStats(ctx context.Context) (*TeamStats, error)
}

// Handler serves the team registry HTTP surface
type Handler struct {
	app TeamsApp
}

// NewHandler creates a new teams handler
func NewHandler(app TeamsApp) *Handler {
	return &Handler{app: app}
}

// RegisterRoutes registers public team routes
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/teams", h.handleRegister)
	mux.HandleFunc("GET /api/teams", h.handleListApproved)
	mux.HandleFunc("GET /api/teams/{id}", h.handleGet)
}

// RegisterAdminRoutes registers admin-guarded team routes
func (h *Handler) RegisterAdminRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/admin/teams", h.handleList)
	mux.HandleFunc("GET /api/admin/teams/stats", h.handleStats)
	mux.HandleFunc("PATCH /api/admin/teams/{id}/status", h.handleSetStatus)
	mux.HandleFunc("DELETE /api/admin/teams/{id}", h.handleDelete)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterTeamRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}

	team, err := h.app.RegisterTeam(r.Context(), req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, team)
}

func (h *Handler) handleListApproved(w http.ResponseWriter, r *http.Request) {
	teams, err := h.app.ListApprovedTeams(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, teams)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	var status *models.TeamStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := models.TeamStatus(s)
		status = &st
	}

	teams, err := h.app.ListTeams(r.Context(), status)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, teams)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	team, err := h.app.GetTeam(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, team)
}

func (h *Handler) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	var req UpdateStatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}

	team, err := h.app.SetStatus(r.Context(), id, models.TeamStatus(req.Status))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, team)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	if err := h.app.DeleteTeam(r.Context(), id); err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.app.GetTeamStats(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, stats)
}

func parseID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, apperrors.Validationf("invalid id format")
	}
	return id, nil
}
