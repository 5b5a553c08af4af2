package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus is the reconciliation state of a registration payment.
// A success payment is terminal; a failed payment may be discarded and
// replaced by a fresh intent.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusSuccess  PaymentStatus = "success"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Payment represents one attempt to collect the registration fee for a team.
// StripePaymentIntentID is the idempotency key for gateway callbacks.
type Payment struct {
	ID                    uuid.UUID     `json:"id"`
	TeamID                uuid.UUID     `json:"team_id"`
	Amount                float64       `json:"amount"`
	Currency              string        `json:"currency"`
	Status                PaymentStatus `json:"status"`
	StripePaymentIntentID string        `json:"stripe_payment_intent_id"`
	TransactionReference  string        `json:"transaction_reference"`
	CreatedAt             time.Time     `json:"created_at"`
	UpdatedAt             time.Time     `json:"updated_at"`
}
