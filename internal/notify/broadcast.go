package notify

import (
	"context"
	"sync"

	"github.com/mmanav02/WeHack/internal/domain/model"
	"github.com/mmanav02/WeHack/pkg/logger"
	"github.com/mmanav02/WeHack/pkg/metrics"
)

// Default broadcaster configuration constants.
const defaultParallelism = 8

// Report summarizes one broadcast: DeliveryFailed is per recipient and
// never aborts the remaining fan-out.
type Report struct {
	Attempted int
	Delivered int
	Failed    int
}

// Broadcaster fans a message out to an event's approved observers through
// a channel composed once per call.
type Broadcaster struct {
	registry    *Registry
	factory     *Factory
	parallelism int
	logger      logger.Logger
}

// BroadcasterOption applies a configuration option to the Broadcaster.
type BroadcasterOption func(*Broadcaster)

// WithParallelism bounds how many recipients are delivered to at once.
func WithParallelism(n int) BroadcasterOption {
	return func(b *Broadcaster) {
		if n > 0 {
			b.parallelism = n
		}
	}
}

// WithBroadcasterLogger sets the broadcaster's logger.
func WithBroadcasterLogger(log logger.Logger) BroadcasterOption {
	return func(b *Broadcaster) {
		if log != nil {
			b.logger = log
		}
	}
}

// NewBroadcaster creates a broadcaster over a registry and channel factory.
func NewBroadcaster(registry *Registry, factory *Factory, opts ...BroadcasterOption) *Broadcaster {
	b := &Broadcaster{
		registry:    registry,
		factory:     factory,
		parallelism: defaultParallelism,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Broadcast delivers subject/body to every approved observer of the event.
// Recipients are processed by a bounded worker group with no ordering
// guarantee; one recipient's failure is logged and counted, never fatal.
func (b *Broadcaster) Broadcast(ctx context.Context, event model.Event, organizer model.User, subject, body string) Report {
	recipients := b.registry.Approved(event.ID)
	report := Report{Attempted: len(recipients)}
	if len(recipients) == 0 {
		if b.logger != nil {
			b.logger.Debug(ctx, "no approved observers, skipping broadcast",
				logger.String("event_id", event.ID),
			)
		}
		return report
	}

	metrics.RecordBroadcast()

	// one channel composition per broadcast: a consistent snapshot of the
	// event's mail mode and Slack flag for every recipient
	channel := b.factory.Compose(event, organizer)

	var wg sync.WaitGroup
	sem := make(chan struct{}, b.parallelism)
	var mu sync.Mutex

	for _, rcpt := range recipients {
		wg.Add(1)
		sem <- struct{}{}
		go func(entry model.ObserverEntry) {
			defer wg.Done()
			defer func() { <-sem }()

			err := channel.Deliver(ctx, organizer.Email, entry.Address, subject, body)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Failed++
				if b.logger != nil {
					b.logger.Error(ctx, "delivery failed for observer",
						logger.String("event_id", event.ID),
						logger.String("to", entry.Address),
						logger.Error(err),
					)
				}
				return
			}
			report.Delivered++
		}(rcpt)
	}
	wg.Wait()

	if b.logger != nil {
		b.logger.Info(ctx, "broadcast complete",
			logger.String("event_id", event.ID),
			logger.String("subject", subject),
			logger.Int("delivered", report.Delivered),
			logger.Int("failed", report.Failed),
		)
	}
	return report
}
