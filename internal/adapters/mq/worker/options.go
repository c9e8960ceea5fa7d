// Package worker drains the outbox and delivers queued notifications.
package worker

import "github.com/mmanav02/WeHack/pkg/logger"

// Option applies a configuration option to the Pool.
type Option func(*Pool)

// WithWorkerCount sets the number of delivery workers.
func WithWorkerCount(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.count = n
		}
	}
}

// WithPoolLogger sets the logger workers report failures to.
func WithPoolLogger(log logger.Logger) Option {
	return func(p *Pool) {
		if log != nil {
			p.logger = log
		}
	}
}
