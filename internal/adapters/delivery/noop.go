package delivery

import (
	"context"

	"github.com/mmanav02/WeHack/pkg/logger"
)

// Noop swallows every message. Used when an event has mail disabled.
type Noop struct {
	logger logger.Logger
}

// NewNoop creates the null sender.
func NewNoop(log logger.Logger) *Noop {
	return &Noop{logger: log}
}

// Kind implements Sender.
func (*Noop) Kind() string { return "noop" }

// Send implements Sender. It always succeeds.
func (n *Noop) Send(ctx context.Context, _, to, subject, _ string) error {
	if n.logger != nil {
		n.logger.Debug(ctx, "mail suppressed, delivery disabled",
			logger.String("to", to),
			logger.String("subject", subject),
		)
	}
	return nil
}
