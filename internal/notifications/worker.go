package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog/log"
)

// WorkerConfig holds settings for the email delivery consumer.
type WorkerConfig struct {
	StreamName    string
	ConsumerName  string
	SubjectFilter string
	MaxDeliver    int
	AckWait       time.Duration
	MaxAckPending int
}

// DefaultWorkerConfig returns the consumer settings used in production.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		StreamName:    "TOURNAMENT_EVENTS",
		ConsumerName:  "email-worker",
		SubjectFilter: "tournament.notifications.>",
		MaxDeliver:    5,
		AckWait:       30 * time.Second,
		MaxAckPending: 100,
	}
}

// Worker consumes queued notifications from JetStream and delivers them as
// email. Delivery failures are NAKed and redelivered up to MaxDeliver times.
type Worker struct {
	mailer   Mailer
	js       jetstream.JetStream
	consumer jetstream.Consumer
	config   WorkerConfig
}

// NewWorker binds a durable consumer on the notifications subject family.
func NewWorker(nc *nats.Conn, mailer Mailer, config WorkerConfig) (*Worker, error) {
	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	w := &Worker{mailer: mailer, js: js, config: config}
	if err := w.ensureConsumer(context.Background()); err != nil {
		return nil, fmt.Errorf("ensure consumer: %w", err)
	}
	return w, nil
}

func (w *Worker) ensureConsumer(ctx context.Context) error {
	stream, err := w.js.Stream(ctx, w.config.StreamName)
	if err != nil {
		return fmt.Errorf("get stream: %w", err)
	}

	consumer, err := stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		Name:          w.config.ConsumerName,
		Durable:       w.config.ConsumerName,
		Description:   "Email delivery consumer",
		FilterSubject: w.config.SubjectFilter,
		DeliverPolicy: jetstream.DeliverAllPolicy,
		AckPolicy:     jetstream.AckExplicitPolicy,
		MaxDeliver:    w.config.MaxDeliver,
		AckWait:       w.config.AckWait,
		MaxAckPending: w.config.MaxAckPending,
		ReplayPolicy:  jetstream.ReplayInstantPolicy,
	})
	if err != nil {
		return fmt.Errorf("create consumer: %w", err)
	}

	log.Info().
		Str("consumer", w.config.ConsumerName).
		Str("stream", w.config.StreamName).
		Msg("email worker consumer ready")

	w.consumer = consumer
	return nil
}

// Start consumes messages until the context is cancelled.
func (w *Worker) Start(ctx context.Context) error {
	log.Info().Str("consumer", w.config.ConsumerName).Msg("starting email worker")

	consumeCtx, err := w.consumer.Consume(func(msg jetstream.Msg) {
		if err := w.processMessage(ctx, msg); err != nil {
			log.Error().Err(err).Str("subject", msg.Subject()).Msg("failed to deliver notification")
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
	log.Info().Msg("email worker shutting down")
	return nil
}

func (w *Worker) processMessage(ctx context.Context, msg jetstream.Msg) error {
	var n Notification
	if err := json.Unmarshal(msg.Data(), &n); err != nil {
		return fmt.Errorf("unmarshal notification: %w", err)
	}
	if n.Recipient == "" {
		log.Warn().Str("kind", string(n.Kind)).Msg("notification has no recipient, dropping")
		return nil
	}

	rendered, err := Render(n)
	if err != nil {
		// A kind this worker cannot render will never render. Drop it.
		log.Warn().Err(err).Str("kind", string(n.Kind)).Msg("unrenderable notification, dropping")
		return nil
	}

	if err := w.mailer.Send(ctx, n.Recipient, rendered); err != nil {
		return err
	}

	log.Info().
		Str("kind", string(n.Kind)).
		Str("recipient", n.Recipient).
		Msg("notification delivered")
	return nil
}
