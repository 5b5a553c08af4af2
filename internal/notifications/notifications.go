// Package notifications defines the outbound notification contract. Domain
// packages dispatch through the Dispatcher interface and treat delivery as
// fire-and-forget: a failed dispatch is logged by the caller and never blocks
// a domain transition.
package notifications

import "context"

// Kind identifies a notification template.
type Kind string

const (
	KindRegistrationReceived Kind = "registration_received"
	KindPaymentConfirmed     Kind = "payment_confirmed"
	KindTeamApproved         Kind = "team_approved"
	KindTeamRejected         Kind = "team_rejected"
)

// Notification is one outbound message to a team contact address.
type Notification struct {
	Kind      Kind              `json:"kind"`
	Recipient string            `json:"recipient"`
	Data      map[string]string `json:"data"`
}

// Dispatcher hands a notification to the delivery pipeline.
type Dispatcher interface {
	Notify(ctx context.Context, n Notification) error
}
