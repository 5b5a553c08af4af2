package livefeed

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// Handler serves WebSocket upgrade requests for the match live feed.
type Handler struct {
	connectionManager *ConnectionManager
}

// NewHandler creates a new livefeed handler.
func NewHandler(cm *ConnectionManager) *Handler {
	return &Handler{connectionManager: cm}
}

// RegisterRoutes registers the live feed routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /ws/matches", h.handleConnect)
}

func (h *Handler) handleConnect(w http.ResponseWriter, r *http.Request) {
	if err := h.connectionManager.UpgradeConnection(w, r); err != nil {
		log.Error().Err(err).Msg("failed to upgrade WebSocket connection")
		// Upgrade already wrote the error response.
	}
}
