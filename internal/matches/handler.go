package matches

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/sadiqful/tournament/internal/apperrors"
	"github.com/sadiqful/tournament/internal/httpx"
	"github.com/sadiqful/tournament/internal/models"
)

// MatchesApp defines what the handler needs from the matches application
type MatchesApp interface {
	ScheduleMatch(ctx context.Context, req ScheduleMatchRequest) (*models.Match, error)
	GetMatch(ctx context.Context, id uuid.UUID) (*models.Match, error)
	ListMatches(ctx context.Context, filter MatchFilter) ([]models.Match, error)
	ListUpcoming(ctx context.Context) ([]models.Match, error)
	ListResults(ctx context.Context) ([]models.Match, error)
	UpdateMatch(ctx context.Context, id uuid.UUID, req UpdateMatchRequest) (*models.Match, error)
	RecordResult(ctx context.Context, id uuid.UUID, req RecordResultRequest) (*models.Match, error)
	SetStatus(ctx context.Context, id uuid.UUID, status models.MatchStatus) (*models.Match, error)
	DeleteMatch(ctx context.Context, id uuid.UUID) error
	GetMatchStats(ctx context.Context) (*MatchStats, error)
}

// Handler serves the match scheduling HTTP surface
type Handler struct {
	app MatchesApp
}

// NewHandler creates a new matches handler
func NewHandler(app MatchesApp) *Handler {
	return &Handler{app: app}
}

// RegisterRoutes registers public match routes
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/matches", h.handleList)
	mux.HandleFunc("GET /api/matches/upcoming", h.handleUpcoming)
	mux.HandleFunc("GET /api/matches/results", h.handleResults)
	mux.HandleFunc("GET /api/matches/stats", h.handleStats)
	mux.HandleFunc("GET /api/matches/{id}", h.handleGet)
}

// RegisterAdminRoutes registers admin-guarded match routes
func (h *Handler) RegisterAdminRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/admin/matches", h.handleSchedule)
	mux.HandleFunc("PATCH /api/admin/matches/{id}", h.handleUpdate)
	mux.HandleFunc("PATCH /api/admin/matches/{id}/result", h.handleRecordResult)
	mux.HandleFunc("PATCH /api/admin/matches/{id}/status", h.handleSetStatus)
	mux.HandleFunc("DELETE /api/admin/matches/{id}", h.handleDelete)
}

func (h *Handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	var req ScheduleMatchRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}

	match, err := h.app.ScheduleMatch(r.Context(), req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, match)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	var filter MatchFilter
	if s := r.URL.Query().Get("status"); s != "" {
		status := models.MatchStatus(s)
		filter.Status = &status
	}
	if s := r.URL.Query().Get("stage"); s != "" {
		stage := models.MatchStage(s)
		filter.Stage = &stage
	}

	matchesList, err := h.app.ListMatches(r.Context(), filter)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, matchesList)
}

func (h *Handler) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	matchesList, err := h.app.ListUpcoming(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, matchesList)
}

func (h *Handler) handleResults(w http.ResponseWriter, r *http.Request) {
	matchesList, err := h.app.ListResults(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, matchesList)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	match, err := h.app.GetMatch(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, match)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	var req UpdateMatchRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}

	match, err := h.app.UpdateMatch(r.Context(), id, req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, match)
}

func (h *Handler) handleRecordResult(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	var req RecordResultRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}

	match, err := h.app.RecordResult(r.Context(), id, req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, match)
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

	match, err := h.app.SetStatus(r.Context(), id, models.MatchStatus(req.Status))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, match)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	if err := h.app.DeleteMatch(r.Context(), id); err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.app.GetMatchStats(r.Context())
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
