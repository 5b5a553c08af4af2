package standings

import (
	"context"
	"net/http"

	"github.com/sadiqful/tournament/internal/httpx"
)

// StandingsApp defines what the handler needs from the standings application
type StandingsApp interface {
	ComputeTable(ctx context.Context) ([]TableRow, error)
}

// Handler serves the standings HTTP surface
type Handler struct {
	app StandingsApp
}

// NewHandler creates a new standings handler
func NewHandler(app StandingsApp) *Handler {
	return &Handler{app: app}
}

// RegisterRoutes registers public standings routes
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/standings", h.handleTable)
}

func (h *Handler) handleTable(w http.ResponseWriter, r *http.Request) {
	table, err := h.app.ComputeTable(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, table)
}
