package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sadiqful/tournament/internal/apperrors"
	"github.com/sadiqful/tournament/internal/models"
	"github.com/sadiqful/tournament/internal/sqlutil"
)

const paymentColumns = `id, team_id, amount, currency, status, stripe_payment_intent_id,
	transaction_reference, created_at, updated_at`

// Repository implements payment data access operations. State transitions go
// through guarded, row-locked updates so duplicate gateway callbacks cannot
// apply twice.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new payments repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreatePayment persists a fresh pending payment keyed by the gateway intent
func (r *Repository) CreatePayment(ctx context.Context, rec PaymentRecord) (*models.Payment, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO payments (team_id, amount, currency, stripe_payment_intent_id, transaction_reference)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING `+paymentColumns,
		rec.TeamID, rec.Amount, rec.Currency, rec.IntentID)

	payment, err := scanPayment(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}
	return payment, nil
}

// GetPayment retrieves a payment by ID
func (r *Repository) GetPayment(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id)

	payment, err := scanPayment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFoundf("payment %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return payment, nil
}

// GetPaymentByTeam retrieves the payment owned by a team
func (r *Repository) GetPaymentByTeam(ctx context.Context, teamID uuid.UUID) (*models.Payment, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE team_id = $1`, teamID)

	payment, err := scanPayment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFoundf("no payment found for team %s", teamID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment by team: %w", err)
	}
	return payment, nil
}

// ListPayments retrieves all payments, newest first
func (r *Repository) ListPayments(ctx context.Context) ([]models.Payment, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+paymentColumns+` FROM payments ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, *payment)
	}
	return payments, rows.Err()
}

// DeletePayment removes a payment record
func (r *Repository) DeletePayment(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFoundf("payment %s not found", id)
	}
	return nil
}

// MarkSucceeded applies a success callback. The transition only applies while
// the persisted status is still pending; the owning team's payment_complete
// flag flips in the same transaction. Returns the payment and whether the
// transition was applied (false on an idempotent replay).
func (r *Repository) MarkSucceeded(ctx context.Context, intentID string) (*models.Payment, bool, error) {
	var payment *models.Payment
	var applied bool

	err := sqlutil.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx,
			`SELECT `+paymentColumns+` FROM payments WHERE stripe_payment_intent_id = $1 FOR UPDATE`,
			intentID)

		current, err := scanPayment(row)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NotFoundf("no payment for intent %s", intentID)
		}
		if err != nil {
			return fmt.Errorf("failed to lock payment: %w", err)
		}

		if current.Status != models.PaymentStatusPending {
			payment = current
			return nil
		}

		row = tx.QueryRow(ctx, `
			UPDATE payments SET status = 'success', updated_at = now()
			WHERE id = $1
			RETURNING `+paymentColumns, current.ID)
		payment, err = scanPayment(row)
		if err != nil {
			return fmt.Errorf("failed to mark payment succeeded: %w", err)
		}

		if _, err := tx.Exec(ctx,
			`UPDATE teams SET payment_complete = true, updated_at = now() WHERE id = $1`,
			current.TeamID); err != nil {
			return fmt.Errorf("failed to flag team payment complete: %w", err)
		}

		applied = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return payment, applied, nil
}

// MarkFailed applies a failure callback. Pending-guarded like MarkSucceeded;
// the team flag is untouched.
func (r *Repository) MarkFailed(ctx context.Context, intentID string) (*models.Payment, bool, error) {
	var payment *models.Payment
	var applied bool

	err := sqlutil.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx,
			`SELECT `+paymentColumns+` FROM payments WHERE stripe_payment_intent_id = $1 FOR UPDATE`,
			intentID)

		current, err := scanPayment(row)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NotFoundf("no payment for intent %s", intentID)
		}
		if err != nil {
			return fmt.Errorf("failed to lock payment: %w", err)
		}

		if current.Status != models.PaymentStatusPending {
			payment = current
			return nil
		}

		row = tx.QueryRow(ctx, `
			UPDATE payments SET status = 'failed', updated_at = now()
			WHERE id = $1
			RETURNING `+paymentColumns, current.ID)
		payment, err = scanPayment(row)
		if err != nil {
			return fmt.Errorf("failed to mark payment failed: %w", err)
		}

		applied = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return payment, applied, nil
}

// GetPaymentStats returns aggregate payment counts and success revenue
func (r *Repository) GetPaymentStats(ctx context.Context) (*PaymentStats, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT count(*),
			count(*) FILTER (WHERE status = 'success'),
			count(*) FILTER (WHERE status = 'pending'),
			count(*) FILTER (WHERE status = 'failed'),
			COALESCE(sum(amount) FILTER (WHERE status = 'success'), 0)
		FROM payments`)

	var stats PaymentStats
	if err := row.Scan(&stats.Total, &stats.Successful, &stats.Pending, &stats.Failed, &stats.TotalRevenue); err != nil {
		return nil, fmt.Errorf("failed to get payment stats: %w", err)
	}
	if stats.Total > 0 {
		stats.SuccessRate = float64(stats.Successful) / float64(stats.Total) * 100
	}
	return &stats, nil
}

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var p models.Payment
	err := row.Scan(&p.ID, &p.TeamID, &p.Amount, &p.Currency, &p.Status,
		&p.StripePaymentIntentID, &p.TransactionReference, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
