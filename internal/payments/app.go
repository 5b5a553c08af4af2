package payments

import (
	"context"
	"errors"
	"math"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sadiqful/tournament/clients/stripe"
	"github.com/sadiqful/tournament/internal/apperrors"
	"github.com/sadiqful/tournament/internal/models"
	"github.com/sadiqful/tournament/internal/notifications"
)

// PaymentsRepository defines what the app layer needs from the repository
type PaymentsRepository interface {
	CreatePayment(ctx context.Context, rec PaymentRecord) (*models.Payment, error)
	GetPayment(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	GetPaymentByTeam(ctx context.Context, teamID uuid.UUID) (*models.Payment, error)
	ListPayments(ctx context.Context) ([]models.Payment, error)
	DeletePayment(ctx context.Context, id uuid.UUID) error
	MarkSucceeded(ctx context.Context, intentID string) (*models.Payment, bool, error)
	MarkFailed(ctx context.Context, intentID string) (*models.Payment, bool, error)
	GetPaymentStats(ctx context.Context) (*PaymentStats, error)
}

// TeamLookup defines what the app layer needs from the team registry
type TeamLookup interface {
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
}

// PaymentGateway defines the gateway calls the reconciler makes
type PaymentGateway interface {
	CreatePaymentIntent(params stripe.CreateIntentParams) (*stripe.PaymentIntent, error)
}

// WebhookParser verifies and parses raw gateway callbacks
type WebhookParser interface {
	VerifyAndParse(payload []byte, sigHeader string) (*stripe.Event, error)
}

// App owns the payment-intent lifecycle and reconciles asynchronous gateway
// callbacks. Callbacks may arrive duplicated, delayed, or out of order; the
// persisted pending status is the idempotency guard.
type App struct {
	repo       PaymentsRepository
	teams      TeamLookup
	gateway    PaymentGateway
	parser     WebhookParser
	dispatcher notifications.Dispatcher
}

// NewApp creates a new payments App
func NewApp(repo PaymentsRepository, teams TeamLookup, gateway PaymentGateway, parser WebhookParser, dispatcher notifications.Dispatcher) *App {
	return &App{
		repo:       repo,
		teams:      teams,
		gateway:    gateway,
		parser:     parser,
		dispatcher: dispatcher,
	}
}

// CreateIntent creates a gateway payment intent and a pending payment record.
// A team whose payment already succeeded cannot pay again; a failed or
// abandoned pending payment is discarded and replaced.
func (a *App) CreateIntent(ctx context.Context, req CreateIntentRequest) (*CreateIntentResponse, error) {
	if req.Amount <= 0 {
		return nil, apperrors.Validationf("amount must be positive")
	}
	if len(req.Currency) != 3 {
		return nil, apperrors.Validationf("currency must be a 3-letter code")
	}

	team, err := a.teams.GetTeam(ctx, req.TeamID)
	if err != nil {
		return nil, err
	}

	existing, err := a.repo.GetPaymentByTeam(ctx, req.TeamID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		if existing.Status == models.PaymentStatusSuccess {
			return nil, apperrors.Conflictf("team has already completed payment")
		}
		// Failed or stale pending payments are replaced by a fresh intent.
		// Late callbacks for the discarded intent hit the unknown-intent
		// absorb path.
		if err := a.repo.DeletePayment(ctx, existing.ID); err != nil {
			return nil, err
		}
	}

	minorUnits := int64(math.Round(req.Amount * 100))
	intent, err := a.gateway.CreatePaymentIntent(stripe.CreateIntentParams{
		AmountMinorUnits: minorUnits,
		Currency:         req.Currency,
		Metadata: map[string]string{
			"team_id":   team.ID.String(),
			"team_name": team.Name,
		},
	})
	if err != nil {
		return nil, apperrors.Gatewayf("failed to create payment intent: %v", err)
	}

	payment, err := a.repo.CreatePayment(ctx, PaymentRecord{
		TeamID:   req.TeamID,
		Amount:   req.Amount,
		Currency: req.Currency,
		IntentID: intent.ID,
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("payment_id", payment.ID.String()).
		Str("team_id", team.ID.String()).
		Str("intent_id", intent.ID).
		Int64("amount_minor", minorUnits).
		Msg("created payment intent")

	return &CreateIntentResponse{
		PaymentID:    payment.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       req.Amount,
		Currency:     req.Currency,
	}, nil
}

// IngestWebhook verifies and applies one gateway callback. A bad signature is
// the only fatal outcome; unknown event types and unknown intents are
// absorbed so the gateway stops retrying deliveries this system can never
// resolve.
func (a *App) IngestWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := a.parser.VerifyAndParse(payload, sigHeader)
	if err != nil {
		return apperrors.WebhookVerificationf("webhook rejected: %v", err)
	}

	switch event.Type {
	case stripe.EventPaymentSucceeded:
		return a.applySuccess(ctx, event.IntentID)
	case stripe.EventPaymentFailed:
		return a.applyFailure(ctx, event.IntentID)
	default:
		log.Info().Str("event_type", event.Type).Msg("ignoring unhandled webhook event type")
		return nil
	}
}

func (a *App) applySuccess(ctx context.Context, intentID string) error {
	payment, applied, err := a.repo.MarkSucceeded(ctx, intentID)
	if errors.Is(err, apperrors.ErrNotFound) {
		log.Warn().Str("intent_id", intentID).Msg("success event for unknown payment intent, ignoring")
		return nil
	}
	if err != nil {
		return err
	}
	if !applied {
		log.Info().
			Str("intent_id", intentID).
			Str("status", string(payment.Status)).
			Msg("duplicate success event, no transition applied")
		return nil
	}

	log.Info().
		Str("payment_id", payment.ID.String()).
		Str("team_id", payment.TeamID.String()).
		Msg("payment succeeded")

	a.sendConfirmation(ctx, payment)
	return nil
}

func (a *App) applyFailure(ctx context.Context, intentID string) error {
	payment, applied, err := a.repo.MarkFailed(ctx, intentID)
	if errors.Is(err, apperrors.ErrNotFound) {
		log.Warn().Str("intent_id", intentID).Msg("failure event for unknown payment intent, ignoring")
		return nil
	}
	if err != nil {
		return err
	}
	if !applied {
		log.Info().
			Str("intent_id", intentID).
			Str("status", string(payment.Status)).
			Msg("stale failure event, no transition applied")
		return nil
	}

	log.Info().
		Str("payment_id", payment.ID.String()).
		Str("team_id", payment.TeamID.String()).
		Msg("payment failed")
	return nil
}

// sendConfirmation dispatches the payment confirmation best-effort.
func (a *App) sendConfirmation(ctx context.Context, payment *models.Payment) {
	if a.dispatcher == nil {
		return
	}

	team, err := a.teams.GetTeam(ctx, payment.TeamID)
	if err != nil {
		log.Warn().Err(err).Str("team_id", payment.TeamID.String()).Msg("failed to load team for payment confirmation")
		return
	}

	err = a.dispatcher.Notify(ctx, notifications.Notification{
		Kind:      notifications.KindPaymentConfirmed,
		Recipient: team.ContactEmail,
		Data: map[string]string{
			"team_name":      team.Name,
			"amount":         strconv.FormatFloat(payment.Amount, 'f', 2, 64),
			"currency":       payment.Currency,
			"transaction_id": payment.TransactionReference,
		},
	})
	if err != nil {
		log.Warn().Err(err).Str("payment_id", payment.ID.String()).Msg("failed to dispatch payment confirmation")
	}
}

// GetPayment retrieves a payment by ID
func (a *App) GetPayment(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	return a.repo.GetPayment(ctx, id)
}

// GetPaymentByTeam retrieves the payment owned by a team
func (a *App) GetPaymentByTeam(ctx context.Context, teamID uuid.UUID) (*models.Payment, error) {
	if _, err := a.teams.GetTeam(ctx, teamID); err != nil {
		return nil, err
	}
	return a.repo.GetPaymentByTeam(ctx, teamID)
}

// ListPayments retrieves all payments
func (a *App) ListPayments(ctx context.Context) ([]models.Payment, error) {
	return a.repo.ListPayments(ctx)
}

// GetPaymentStats returns aggregate payment counts and revenue
func (a *App) GetPaymentStats(ctx context.Context) (*PaymentStats, error) {
	return a.repo.GetPaymentStats(ctx)
}
