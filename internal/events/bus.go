package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog/log"
)

// Subjects under the stream prefix.
const (
	SubjectMatches       = "matches"
	SubjectNotifications = "notifications"
)

// JetStreamConfig holds bus connection and stream settings.
type JetStreamConfig struct {
	URL             string
	StreamName      string
	SubjectPrefix   string
	MaxReconnects   int
	ReconnectWait   time.Duration
	MaxAge          time.Duration
	DuplicateWindow time.Duration
}

// DefaultJetStreamConfig returns the stream settings used in production.
func DefaultJetStreamConfig() JetStreamConfig {
	return JetStreamConfig{
		URL:             nats.DefaultURL,
		StreamName:      "TOURNAMENT_EVENTS",
		SubjectPrefix:   "tournament",
		MaxReconnects:   -1, // Infinite
		ReconnectWait:   2 * time.Second,
		MaxAge:          7 * 24 * time.Hour,
		DuplicateWindow: 2 * time.Hour,
	}
}

// JetStreamBus publishes domain events to a JetStream stream. Message ids
// enable broker-side duplicate detection inside the configured window.
type JetStreamBus struct {
	nc     *nats.Conn
	js     jetstream.JetStream
	config JetStreamConfig
}

// NewJetStreamBus connects to NATS and ensures the event stream exists.
func NewJetStreamBus(cfg JetStreamConfig) (*JetStreamBus, error) {
	opts := []nats.Option{
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	bus := &JetStreamBus{nc: nc, js: js, config: cfg}
	if err := bus.ensureStream(context.Background()); err != nil {
		nc.Close()
		return nil, fmt.Errorf("ensure stream: %w", err)
	}
	return bus, nil
}

func (b *JetStreamBus) ensureStream(ctx context.Context) error {
	sc := jetstream.StreamConfig{
		Name:        b.config.StreamName,
		Description: "Tournament domain event stream",
		Subjects:    []string{fmt.Sprintf("%s.>", b.config.SubjectPrefix)},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      b.config.MaxAge,
		Storage:     jetstream.FileStorage,
		Duplicates:  b.config.DuplicateWindow,
	}

	if _, err := b.js.Stream(ctx, b.config.StreamName); err != nil {
		if _, err := b.js.CreateStream(ctx, sc); err != nil {
			return fmt.Errorf("create stream: %w", err)
		}
		log.Info().Str("stream", b.config.StreamName).Msg("created JetStream stream")
	}
	return nil
}

// Publish sends a payload under <prefix>.<subject>.<kind>.
func (b *JetStreamBus) Publish(ctx context.Context, subject, kind, msgID string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	full := fmt.Sprintf("%s.%s.%s", b.config.SubjectPrefix, subject, kind)
	ack, err := b.js.PublishMsg(ctx, &nats.Msg{
		Subject: full,
		Data:    data,
		Header: nats.Header{
			"Event-Kind": []string{kind},
			"Event-ID":   []string{msgID},
		},
	}, jetstream.WithMsgID(msgID))
	if err != nil {
		return fmt.Errorf("publish to JetStream: %w", err)
	}

	log.Debug().
		Str("subject", full).
		Str("event_id", msgID).
		Uint64("sequence", ack.Sequence).
		Msg("published event")
	return nil
}

// PublishMatchEvent broadcasts a match lifecycle event.
func (b *JetStreamBus) PublishMatchEvent(ctx context.Context, evt MatchEvent) error {
	if evt.EventID == uuid.Nil {
		evt.EventID = uuid.New()
	}
	return b.Publish(ctx, SubjectMatches, string(evt.Type), evt.EventID.String(), evt)
}

// Conn exposes the underlying connection for consumers.
func (b *JetStreamBus) Conn() *nats.Conn { return b.nc }

// SubjectFor returns the full subject filter for a subject family.
func (b *JetStreamBus) SubjectFor(subject string) string {
	return fmt.Sprintf("%s.%s.>", b.config.SubjectPrefix, subject)
}

// StreamName returns the configured stream name.
func (b *JetStreamBus) StreamName() string { return b.config.StreamName }

// Close drains the connection.
func (b *JetStreamBus) Close() {
	if b.nc != nil {
		b.nc.Close()
	}
}
