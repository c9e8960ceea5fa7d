// Package delivery implements the outbound message senders a notification
// channel is composed from: a transactional mail API, organizer-supplied
// SMTP, a chat webhook, and a no-op sink for events with mail disabled.
package delivery

import "context"

// Sender delivers one message to one recipient.
type Sender interface {
	// Kind names the delivery mechanism for logs and metrics.
	Kind() string

	// Send delivers the message, returning an error wrapping
	// ErrDeliveryFailed when the mechanism could not deliver.
	Send(ctx context.Context, from, to, subject, body string) error
}
