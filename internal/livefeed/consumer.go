package livefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog/log"

	"github.com/sadiqful/tournament/internal/events"
)

// ConsumerConfig holds settings for the live feed event consumer.
type ConsumerConfig struct {
	StreamName    string
	ConsumerName  string
	SubjectFilter string
	MaxDeliver    int
	AckWait       time.Duration
	MaxAckPending int
}

// DefaultConsumerConfig returns the consumer settings used in production.
func DefaultConsumerConfig() ConsumerConfig {
	return ConsumerConfig{
		StreamName:    "TOURNAMENT_EVENTS",
		ConsumerName:  "livefeed",
		SubjectFilter: "tournament.matches.>",
		MaxDeliver:    5,
		AckWait:       30 * time.Second,
		MaxAckPending: 100,
	}
}

// EventConsumer reads match events from JetStream and hands them to the
// connection manager for WebSocket broadcast.
type EventConsumer struct {
	connectionManager *ConnectionManager
	js                jetstream.JetStream
	consumer          jetstream.Consumer
	config            ConsumerConfig
}

// NewEventConsumer binds a durable consumer on the matches subject family.
func NewEventConsumer(nc *nats.Conn, cm *ConnectionManager, config ConsumerConfig) (*EventConsumer, error) {
	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	ec := &EventConsumer{connectionManager: cm, js: js, config: config}
	if err := ec.ensureConsumer(context.Background()); err != nil {
		return nil, fmt.Errorf("ensure consumer: %w", err)
	}
	return ec, nil
}

func (ec *EventConsumer) ensureConsumer(ctx context.Context) error {
	stream, err := ec.js.Stream(ctx, ec.config.StreamName)
	if err != nil {
		return fmt.Errorf("get stream: %w", err)
	}

	consumer, err := stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		Name:          ec.config.ConsumerName,
		Durable:       ec.config.ConsumerName,
		Description:   "Live feed WebSocket consumer",
		FilterSubject: ec.config.SubjectFilter,
		DeliverPolicy: jetstream.DeliverNewPolicy,
		AckPolicy:     jetstream.AckExplicitPolicy,
		MaxDeliver:    ec.config.MaxDeliver,
		AckWait:       ec.config.AckWait,
		MaxAckPending: ec.config.MaxAckPending,
		ReplayPolicy:  jetstream.ReplayInstantPolicy,
	})
	if err != nil {
		return fmt.Errorf("create consumer: %w", err)
	}

	log.Info().
		Str("consumer", ec.config.ConsumerName).
		Str("stream", ec.config.StreamName).
		Msg("livefeed consumer ready")

	ec.consumer = consumer
	return nil
}

// Start consumes match events until the context is cancelled.
func (ec *EventConsumer) Start(ctx context.Context) error {
	log.Info().Str("consumer", ec.config.ConsumerName).Msg("starting livefeed consumer")

	consumeCtx, err := ec.consumer.Consume(func(msg jetstream.Msg) {
		if err := ec.processMessage(msg); err != nil {
			log.Error().Err(err).Str("subject", msg.Subject()).Msg("failed to process match event")
			if nakErr := msg.Nak(); nakErr != nil {
				log.Error().Err(nakErr).Msg("failed to NAK message")
			}
			return
		}
		if ackErr := msg.Ack(); ackErr != nil {
			log.Error().Err(ackErr).Msg("failed to ACK message")
		}
	})
	if err != nil {
		return fmt.Errorf("start consumer: %w", err)
	}

	<-ctx.Done()
	consumeCtx.Stop()
	log.Info().Msg("livefeed consumer shutting down")
	return nil
}

func (ec *EventConsumer) processMessage(msg jetstream.Msg) error {
	var evt events.MatchEvent
	if err := json.Unmarshal(msg.Data(), &evt); err != nil {
		return fmt.Errorf("unmarshal match event: %w", err)
	}

	ec.connectionManager.Broadcast(&evt)

	log.Debug().
		Str("event_id", evt.EventID.String()).
		Str("event_type", string(evt.Type)).
		Str("match_id", evt.MatchID.String()).
		Msg("match event handed to broadcast")
	return nil
}
