package players

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/sadiqful/tournament/internal/apperrors"
	"github.com/sadiqful/tournament/internal/httpx"
	"github.com/sadiqful/tournament/internal/models"
)

// PlayersApp defines what the handler needs from the players application
type PlayersApp interface {
	AddPlayer(ctx context.Context, req CreatePlayerRequest) (*models.Player, error)
	AddPlayersBulk(ctx context.Context, req CreateBulkPlayersRequest) ([]models.Player, error)
	GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error)
	ListPlayers(ctx context.Context) ([]models.Player, error)
	ListPlayersByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Player, error)
	UpdatePlayer(ctx context.Context, id uuid.UUID, req UpdatePlayerRequest) (*models.Player, error)
	DeletePlayer(ctx context.Context, id uuid.UUID) error
	GetPlayerStats(ctx context.Context) (*PlayerStats, error)
}

// Handler serves the roster HTTP surface
type Handler struct {
	app PlayersApp
}

// NewHandler creates a new players handler
func NewHandler(app PlayersApp) *Handler {
	return &Handler{app: app}
}

// RegisterRoutes registers public player routes
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/players", h.handleList)
	mux.HandleFunc("GET /api/players/{id}", h.handleGet)
	mux.HandleFunc("GET /api/players/team/{teamId}", h.handleListByTeam)
}

// RegisterAdminRoutes registers admin-guarded player routes
func (h *Handler) RegisterAdminRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/admin/players", h.handleAdd)
	mux.HandleFunc("POST /api/admin/players/bulk", h.handleAddBulk)
	mux.HandleFunc("GET /api/admin/players/stats", h.handleStats)
	mux.HandleFunc("PATCH /api/admin/players/{id}", h.handleUpdate)
	mux.HandleFunc("DELETE /api/admin/players/{id}", h.handleDelete)
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req CreatePlayerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}

	player, err := h.app.AddPlayer(r.Context(), req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, player)
}

func (h *Handler) handleAddBulk(w http.ResponseWriter, r *http.Request) {
	var req CreateBulkPlayersRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}

	created, err := h.app.AddPlayersBulk(r.Context(), req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	playersList, err := h.app.ListPlayers(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, playersList)
}

func (h *Handler) handleListByTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := uuid.Parse(r.PathValue("teamId"))
	if err != nil {
		httpx.WriteError(w, apperrors.Validationf("invalid team id format"))
		return
	}

	roster, err := h.app.ListPlayersByTeam(r.Context(), teamID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, roster)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	player, err := h.app.GetPlayer(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, player)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	var req UpdatePlayerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}

	player, err := h.app.UpdatePlayer(r.Context(), id, req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, player)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	if err := h.app.DeletePlayer(r.Context(), id); err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.app.GetPlayerStats(r.Context())
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
