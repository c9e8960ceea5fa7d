// Package worker drains the outbox and delivers queued notifications.
package worker

import (
	"context"
	"fmt"
	"sync"

	"github.com/mmanav02/WeHack/internal/adapters/mq/queue"
	"github.com/mmanav02/WeHack/internal/domain/model"
	"github.com/mmanav02/WeHack/internal/notify"
	"github.com/mmanav02/WeHack/pkg/logger"
)

// Default pool configuration constants.
const (
	defaultWorkerCount = 4
)

// Composer builds a delivery channel for one message's event configuration.
type Composer interface {
	Compose(event model.Event, organizer model.User) *notify.Channel
}

// Source defines how workers receive messages.
type Source interface {
	Dequeue(ctx context.Context) <-chan queue.Message
}

// Pool runs a fixed set of delivery workers over one outbox.
type Pool struct {
	source   Source
	composer Composer
	count    int
	logger   logger.Logger

	wg   sync.WaitGroup
	done chan struct{}
}

// NewPool creates a delivery pool with configuration options.
func NewPool(source Source, composer Composer, opts ...Option) *Pool {
	p := &Pool{
		source:   source,
		composer: composer,
		count:    defaultWorkerCount,
		done:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Start launches the workers. They share one dequeue stream and stop when
// the outbox closes or ctx is canceled.
func (p *Pool) Start(ctx context.Context) {
	messages := p.source.Dequeue(ctx)

	for i := 0; i < p.count; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			p.run(ctx, messages)
		}()
	}

	go func() {
		p.wg.Wait()
		close(p.done)
	}()
}

// Shutdown waits for in-flight deliveries to finish. Close the outbox
// first so the workers drain and exit.
func (p *Pool) Shutdown(ctx context.Context) error {
	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		if p.logger != nil {
			p.logger.Warn(ctx, "outbox shutdown timed out")
		}
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

func (p *Pool) run(ctx context.Context, messages <-chan queue.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-messages:
			if !ok {
				return
			}
			p.deliver(ctx, m)
		}
	}
}

// deliver pushes one message through its event's channel chain. Failures
// are logged; there is no retry.
func (p *Pool) deliver(ctx context.Context, m queue.Message) {
	channel := p.composer.Compose(m.Event, m.Organizer)
	if err := channel.Deliver(ctx, m.Organizer.Email, m.To, m.Subject, m.Body); err != nil {
		if p.logger != nil {
			p.logger.Warn(ctx, "queued notification failed",
				logger.String("event_id", m.Event.ID),
				logger.String("to", m.To),
				logger.Error(err),
			)
		}
	}
}
