package payments

import (
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/sadiqful/tournament/internal/apperrors"
	"github.com/sadiqful/tournament/internal/httpx"
	"github.com/sadiqful/tournament/internal/models"
)

// PaymentsApp defines what the handler needs from the payments application
type PaymentsApp interface {
	CreateIntent(ctx context.Context, req CreateIntentRequest) (*CreateIntentResponse, error)
	IngestWebhook(ctx context.Context, payload []byte, sigHeader string) error
	GetPayment(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	GetPaymentByTeam(ctx context.Context, teamID uuid.UUID) (*models.Payment, error)
	ListPayments(ctx context.Context) ([]models.Payment, error)
	GetPaymentStats(ctx context.Context) (*PaymentStats, error)
}

// Handler serves the payments HTTP surface
type Handler struct {
	app PaymentsApp
}

// NewHandler creates a new payments handler
func NewHandler(app PaymentsApp) *Handler {
	return &Handler{app: app}
}

// RegisterRoutes registers public payment routes
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/payments/intent", h.handleCreateIntent)
	mux.HandleFunc("POST /api/payments/webhook", h.handleWebhook)
}

// RegisterAdminRoutes registers admin-guarded payment routes
func (h *Handler) RegisterAdminRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/admin/payments", h.handleList)
	mux.HandleFunc("GET /api/admin/payments/stats", h.handleStats)
	mux.HandleFunc("GET /api/admin/payments/team/{teamId}", h.handleGetByTeam)
	mux.HandleFunc("GET /api/admin/payments/{id}", h.handleGet)
}

func (h *Handler) handleCreateIntent(w http.ResponseWriter, r *http.Request) {
	var req CreateIntentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}

	resp, err := h.app.CreateIntent(r.Context(), req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, resp)
}

// handleWebhook ingests a raw gateway callback. The body must be read
// unmodified since the signature covers the exact bytes.
func (h *Handler) handleWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		httpx.WriteError(w, apperrors.Validationf("failed to read webhook body"))
		return
	}

	if err := h.app.IngestWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature")); err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"received": true})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	payments, err := h.app.ListPayments(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, payments)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, apperrors.Validationf("invalid id format"))
		return
	}

	payment, err := h.app.GetPayment(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, payment)
}

func (h *Handler) handleGetByTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := uuid.Parse(r.PathValue("teamId"))
	if err != nil {
		httpx.WriteError(w, apperrors.Validationf("invalid team id format"))
		return
	}

	payment, err := h.app.GetPaymentByTeam(r.Context(), teamID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, payment)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.app.GetPaymentStats(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, stats)
}
