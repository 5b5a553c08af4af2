package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
)

// Webhook event types delivered by the gateway.
const (
	EventPaymentSucceeded = "payment_intent.succeeded"
	EventPaymentFailed    = "payment_intent.payment_failed"
)

// ErrInvalidSignature is returned when a webhook payload does not verify
// against the shared endpoint secret.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// DefaultTolerance is how far a signature timestamp may lag before the
// payload is rejected as stale.
const DefaultTolerance = 5 * time.Minute

// Event is a verified, parsed webhook event.
type Event struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	IntentID string `json:"intent_id"`
}

// WebhookVerifier checks Stripe-Signature headers against a shared secret.
// Signatures are HMAC-SHA256 over "<timestamp>.<payload>" carried in the
// header as "t=<unix>,v1=<hex>[,v1=<hex>...]".
type WebhookVerifier struct {
	secret    string
	tolerance time.Duration
	clock     clockwork.Clock
}

// NewWebhookVerifier creates a verifier with the default staleness tolerance
func NewWebhookVerifier(secret string, clock clockwork.Clock) *WebhookVerifier {
	return &WebhookVerifier{
		secret:    secret,
		tolerance: DefaultTolerance,
		clock:     clock,
	}
}

// VerifyAndParse verifies the signature header and parses the event payload.
// Nothing about the event is trusted before this returns.
func (v *WebhookVerifier) VerifyAndParse(payload []byte, sigHeader string) (*Event, error) {
	timestamp, signatures, err := parseSignatureHeader(sigHeader)
	if err != nil {
		return nil, err
	}

	age := v.clock.Now().Sub(time.Unix(timestamp, 0))
	if age > v.tolerance || age < -v.tolerance {
		return nil, fmt.Errorf("%w: timestamp outside tolerance", ErrInvalidSignature)
	}

	expected := ComputeSignature(v.secret, timestamp, payload)
	matched := false
	for _, sig := range signatures {
		if hmac.Equal([]byte(sig), []byte(expected)) {
			matched = true
			break
		}
	}
	if !matched {
		return nil, ErrInvalidSignature
	}

	var envelope struct {
		ID   string `json:"id"`
		Type string `json:"type"`
		Data struct {
			Object struct {
				ID string `json:"id"`
			} `json:"object"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse webhook payload: %w", err)
	}

	return &Event{
		ID:       envelope.ID,
		Type:     envelope.Type,
		IntentID: envelope.Data.Object.ID,
	}, nil
}

// ComputeSignature returns the hex HMAC-SHA256 of "<timestamp>.<payload>".
func ComputeSignature(secret string, timestamp int64, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// SignatureHeader builds a Stripe-Signature header value for a payload.
// Used by tests and local tooling to simulate gateway deliveries.
func SignatureHeader(secret string, at time.Time, payload []byte) string {
	ts := at.Unix()
	return fmt.Sprintf("t=%d,v1=%s", ts, ComputeSignature(secret, ts, payload))
}

func parseSignatureHeader(header string) (int64, []string, error) {
	if header == "" {
		return 0, nil, fmt.Errorf("%w: missing signature header", ErrInvalidSignature)
	}

	var timestamp int64 = -1
	var signatures []string
	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			ts, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return 0, nil, fmt.Errorf("%w: bad timestamp", ErrInvalidSignature)
			}
			timestamp = ts
		case "v1":
			signatures = append(signatures, value)
		}
	}

	if timestamp < 0 || len(signatures) == 0 {
		return 0, nil, fmt.Errorf("%w: malformed signature header", ErrInvalidSignature)
	}
	return timestamp, signatures, nil
}
