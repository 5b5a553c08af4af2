package stripe

import (
	"strconv"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/suite"
)

type WebhookVerifierSuite struct {
	suite.Suite
	clock    *clockwork.FakeClock
	verifier *WebhookVerifier
}

func TestWebhookVerifierSuite(t *testing.T) {
	suite.Run(t, new(WebhookVerifierSuite))
}

const testSecret = "whsec_unit_test"

func (s *WebhookVerifierSuite) SetupTest() {
	s.clock = clockwork.NewFakeClock()
	s.verifier = NewWebhookVerifier(testSecret, s.clock)
}

func (s *WebhookVerifierSuite) payload() []byte {
	return []byte(`{"id":"evt_1","type":"payment_intent.succeeded","data":{"object":{"id":"pi_123"}}}`)
}

func (s *WebhookVerifierSuite) TestVerifyAndParse() {
	s.Run("accepts a correctly signed payload", func() {
		payload := s.payload()
		header := SignatureHeader(testSecret, s.clock.Now(), payload)

		event, err := s.verifier.VerifyAndParse(payload, header)
		s.Require().NoError(err)
		s.Equal("evt_1", event.ID)
		s.Equal(EventPaymentSucceeded, event.Type)
		s.Equal("pi_123", event.IntentID)
	})

	s.Run("accepts a signature within the tolerance window", func() {
		payload := s.payload()
		header := SignatureHeader(testSecret, s.clock.Now(), payload)

		s.clock.Advance(DefaultTolerance - time.Second)
		_, err := s.verifier.VerifyAndParse(payload, header)
		s.Require().NoError(err)
	})

	s.Run("rejects a stale signature", func() {
		payload := s.payload()
		header := SignatureHeader(testSecret, s.clock.Now(), payload)

		s.clock.Advance(DefaultTolerance + time.Second)
		_, err := s.verifier.VerifyAndParse(payload, header)
		s.Require().ErrorIs(err, ErrInvalidSignature)
	})

	s.Run("rejects a signature from the wrong secret", func() {
		payload := s.payload()
		header := SignatureHeader("whsec_other", s.clock.Now(), payload)

		_, err := s.verifier.VerifyAndParse(payload, header)
		s.Require().ErrorIs(err, ErrInvalidSignature)
	})

	s.Run("rejects a tampered payload", func() {
		payload := s.payload()
		header := SignatureHeader(testSecret, s.clock.Now(), payload)

		tampered := append([]byte{}, payload...)
		tampered[len(tampered)-2] = 'X'
		_, err := s.verifier.VerifyAndParse(tampered, header)
		s.Require().ErrorIs(err, ErrInvalidSignature)
	})

	s.Run("rejects a missing header", func() {
		_, err := s.verifier.VerifyAndParse(s.payload(), "")
		s.Require().ErrorIs(err, ErrInvalidSignature)
	})

	s.Run("rejects a malformed header", func() {
		_, err := s.verifier.VerifyAndParse(s.payload(), "t=notanumber,v1=deadbeef")
		s.Require().ErrorIs(err, ErrInvalidSignature)
	})

	s.Run("accepts any matching signature among several v1 entries", func() {
		payload := s.payload()
		ts := s.clock.Now().Unix()
		good := ComputeSignature(testSecret, ts, payload)
		header := "t=" + strconv.FormatInt(ts, 10) + ",v1=deadbeef,v1=" + good

		_, err := s.verifier.VerifyAndParse(payload, header)
		s.Require().NoError(err)
	})
}
