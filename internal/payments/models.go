package payments

import "github.com/google/uuid"

// CreateIntentRequest asks for a new gateway payment intent for a team.
// Amount is in major currency units.
type CreateIntentRequest struct {
	TeamID   uuid.UUID `json:"team_id"`
	Amount   float64   `json:"amount"`
	Currency string    `json:"currency"`
}

// CreateIntentResponse carries the client secret the payer needs to complete
// the payment on the gateway side.
type CreateIntentResponse struct {
	PaymentID    uuid.UUID `json:"payment_id"`
	ClientSecret string    `json:"client_secret"`
	Amount       float64   `json:"amount"`
	Currency     string    `json:"currency"`
}

// PaymentRecord holds the fields persisted for a fresh pending payment
type PaymentRecord struct {
	TeamID   uuid.UUID
	Amount   float64
	Currency string
	IntentID string
}

// PaymentStats represents aggregate payment counts and revenue
type PaymentStats struct {
	Total        int     `json:"total"`
	Successful   int     `json:"successful"`
	Pending      int     `json:"pending"`
	Failed       int     `json:"failed"`
	TotalRevenue float64 `json:"total_revenue"`
	SuccessRate  float64 `json:"success_rate"`
}
