// Package notify composes delivery channels and fans broadcasts out to an
// event's approved observers.
//
// A channel is a short list of delivery steps built fresh per broadcast from
// the event's notification configuration; there is no wrapped-object state
// shared between concurrent broadcasts. Secondary steps fire before the
// primary one and their failures are logged and swallowed; the primary step
// decides whether the delivery succeeded.
package notify

import (
	"context"
	"net"

	"github.com/mmanav02/WeHack/internal/adapters/delivery"
	"github.com/mmanav02/WeHack/internal/domain/model"
	"github.com/mmanav02/WeHack/pkg/logger"
	"github.com/mmanav02/WeHack/pkg/metrics"
)

// step is one delivery surface inside a channel.
type step struct {
	sender    delivery.Sender
	secondary bool
}

// Channel is an ordered list of delivery steps for one event configuration.
type Channel struct {
	steps  []step
	logger logger.Logger
}

// Deliver pushes one message through every step. Secondary failures are
// logged and never propagate; the primary step's error is the result.
func (c *Channel) Deliver(ctx context.Context, from, to, subject, body string) error {
	var primaryErr error
	for _, s := range c.steps {
		err := s.sender.Send(ctx, from, to, subject, body)
		if err == nil {
			metrics.RecordDelivery(s.sender.Kind())
			continue
		}
		metrics.RecordDeliveryFailure(s.sender.Kind())
		if s.secondary {
			if c.logger != nil {
				c.logger.Warn(ctx, "secondary delivery failed, continuing",
					logger.String("kind", s.sender.Kind()),
					logger.String("to", to),
					logger.Error(err),
				)
			}
			continue
		}
		primaryErr = err
	}
	return primaryErr
}

// Factory builds senders from an event's notification configuration.
type Factory struct {
	mailgunDomain string
	mailgunAPIKey string
	mailgunBase   string
	slackWebhook  string
	smtpAddr      string
	logger        logger.Logger
}

// FactoryOption applies a configuration option to the Factory.
type FactoryOption func(*Factory)

// WithMailgun configures the transactional mail provider.
func WithMailgun(domain, apiKey string) FactoryOption {
	return func(f *Factory) {
		f.mailgunDomain = domain
		f.mailgunAPIKey = apiKey
	}
}

// WithMailgunBaseURL overrides the Mailgun endpoint, mainly for tests.
func WithMailgunBaseURL(base string) FactoryOption {
	return func(f *Factory) {
		f.mailgunBase = base
	}
}

// WithSlackWebhook configures the chat-webhook secondary surface.
func WithSlackWebhook(url string) FactoryOption {
	return func(f *Factory) {
		f.slackWebhook = url
	}
}

// WithSMTPAddr sets the host:port organizer SMTP senders dial.
func WithSMTPAddr(addr string) FactoryOption {
	return func(f *Factory) {
		f.smtpAddr = addr
	}
}

// WithFactoryLogger sets the logger channels inherit.
func WithFactoryLogger(log logger.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = log
	}
}

// NewFactory creates a channel factory.
func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Compose builds the channel for one broadcast, snapshotting the event's
// mail mode and Slack flag once. The optional Slack step goes first, then
// the primary mail step.
func (f *Factory) Compose(event model.Event, organizer model.User) *Channel {
	c := &Channel{logger: f.logger}

	if event.SlackEnabled && f.slackWebhook != "" {
		c.steps = append(c.steps, step{
			sender:    delivery.NewSlackWebhook(f.slackWebhook),
			secondary: true,
		})
	}
	c.steps = append(c.steps, step{sender: f.primary(event, organizer)})
	return c
}

func (f *Factory) primary(event model.Event, organizer model.User) delivery.Sender {
	switch event.MailMode {
	case model.MailgunMode:
		opts := []delivery.MailgunOption{}
		if f.mailgunBase != "" {
			opts = append(opts, delivery.WithBaseURL(f.mailgunBase))
		}
		return delivery.NewMailgun(f.mailgunDomain, f.mailgunAPIKey, opts...)
	case model.OrganizerMode:
		opts := []delivery.SMTPOption{}
		if f.smtpAddr != "" {
			if host, port, err := net.SplitHostPort(f.smtpAddr); err == nil {
				opts = append(opts, delivery.WithSMTPHost(host, port))
			}
		}
		return delivery.NewOrganizerSMTP(organizer.Email, organizer.SMTPPassword, opts...)
	default:
		return delivery.NewNoop(f.logger)
	}
}
