package events

import (
	"context"

	"github.com/google/uuid"

	"github.com/sadiqful/tournament/internal/notifications"
)

// JetStreamDispatcher delivers notifications by publishing them onto the
// event stream; the email worker consumes them asynchronously.
type JetStreamDispatcher struct {
	bus *JetStreamBus
}

// NewJetStreamDispatcher creates a dispatcher backed by the event bus.
func NewJetStreamDispatcher(bus *JetStreamBus) *JetStreamDispatcher {
	return &JetStreamDispatcher{bus: bus}
}

var _ notifications.Dispatcher = (*JetStreamDispatcher)(nil)

// Notify publishes the notification under the notifications subject family.
func (d *JetStreamDispatcher) Notify(ctx context.Context, n notifications.Notification) error {
	return d.bus.Publish(ctx, SubjectNotifications, string(n.Kind), uuid.NewString(), n)
}
