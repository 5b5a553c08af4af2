package auth

import (
	"context"
	"net/http"

	"github.com/sadiqful/tournament/internal/httpx"
)

// AuthApp defines what the handler needs from the auth application
type AuthApp interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
}

// Handler serves the auth HTTP surface
type Handler struct {
	app AuthApp
}

// NewHandler creates a new auth handler
func NewHandler(app AuthApp) *Handler {
	return &Handler{app: app}
}

// RegisterRoutes registers public auth routes
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/login", h.handleLogin)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}

	resp, err := h.app.Login(r.Context(), req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
