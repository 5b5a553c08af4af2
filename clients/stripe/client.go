// Package stripe is a minimal client for the Stripe payment-intents API and
// its webhook signature scheme.
package stripe

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/sadiqful/tournament/clients"
)

const apiBaseURL = "https://api.stripe.com/v1"

// Client calls the Stripe REST API
type Client struct {
	base *clients.BaseClient
}

// NewClient creates a Stripe client authenticated with the secret key
func NewClient(secretKey string) *Client {
	base := clients.NewBaseClient(apiBaseURL)
	base.SetHeader("Authorization", "Bearer "+secretKey)
	base.SetHeader("Content-Type", "application/x-www-form-urlencoded")
	return &Client{base: base}
}

// PaymentIntent is the gateway-side object representing one collection attempt
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

// CreateIntentParams holds the inputs for a new payment intent.
// Amount is in the gateway's minor units (cents).
type CreateIntentParams struct {
	AmountMinorUnits int64
	Currency         string
	Metadata         map[string]string
}

// CreatePaymentIntent creates a payment intent on the gateway
func (c *Client) CreatePaymentIntent(params CreateIntentParams) (*PaymentIntent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(params.AmountMinorUnits, 10))
	form.Set("currency", params.Currency)
	form.Set("automatic_payment_methods[enabled]", "true")
	for key, value := range params.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", key), value)
	}

	body, err := c.base.PostForm("/payment_intents", form)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	var intent PaymentIntent
	if err := json.Unmarshal(body, &intent); err != nil {
		return nil, fmt.Errorf("failed to parse payment intent response: %w", err)
	}
	return &intent, nil
}

// RetrievePaymentIntent fetches a payment intent by id
func (c *Client) RetrievePaymentIntent(id string) (*PaymentIntent, error) {
	body, err := c.base.Get("/payment_intents/" + url.PathEscape(id))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve payment intent: %w", err)
	}

	var intent PaymentIntent
	if err := json.Unmarshal(body, &intent); err != nil {
		return nil, fmt.Errorf("failed to parse payment intent response: %w", err)
	}
	return &intent, nil
}
