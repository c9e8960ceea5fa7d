// Package guard gates submission writes behind a per-(submitter,event)
// cooldown and the validation chain.
//
// The cooldown check-then-set is atomic: the key's stripe mutex is held
// across read, decision and write, so two near-simultaneous writes for the
// same key cannot both pass. Keys hash onto independent stripes; writes for
// different keys do not block each other.
package guard

import (
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/mmanav02/WeHack/internal/domain/validate"
)

// Default guard configuration constants.
const (
	defaultCooldown    = 60 * time.Second
	defaultStripeCount = 32
)

// Guard applies the cooldown gate and then the validation chain.
type Guard struct {
	chain    *validate.Chain
	cooldown time.Duration
	now      func() time.Time

	stripes []stripe
}

type stripe struct {
	mu   sync.Mutex
	last map[string]time.Time
}

// Option applies a configuration option to the Guard.
type Option func(*Guard)

// WithCooldown overrides the cooldown window.
func WithCooldown(d time.Duration) Option {
	return func(g *Guard) {
		if d > 0 {
			g.cooldown = d
		}
	}
}

// WithClock injects a time source for tests.
func WithClock(now func() time.Time) Option {
	return func(g *Guard) {
		if now != nil {
			g.now = now
		}
	}
}

// WithStripeCount sets the number of lock stripes.
func WithStripeCount(n int) Option {
	return func(g *Guard) {
		if n > 0 {
			g.stripes = make([]stripe, n)
		}
	}
}

// New creates a guard in front of the given validation chain.
func New(chain *validate.Chain, opts ...Option) *Guard {
	g := &Guard{
		chain:    chain,
		cooldown: defaultCooldown,
		now:      time.Now,
		stripes:  make([]stripe, defaultStripeCount),
	}
	for _, opt := range opts {
		opt(g)
	}
	for i := range g.stripes {
		g.stripes[i].last = make(map[string]time.Time)
	}
	return g
}

// Admit checks the cooldown for (submitterID, eventID) and, if the window
// has elapsed, runs the validation chain on the draft. The cooldown slot is
// consumed only when the whole guard passes; a validation failure leaves the
// key free for an immediate corrected retry.
func (g *Guard) Admit(submitterID, eventID string, d validate.Draft) error {
	key := submitterID + "|" + eventID
	s := g.stripe(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := g.now()
	if last, ok := s.last[key]; ok {
		if wait := g.cooldown - now.Sub(last); wait > 0 {
			return fmt.Errorf("%w: retry in %s", ErrRateLimited, wait.Round(time.Second))
		}
	}
	if err := g.chain.Run(d); err != nil {
		return err
	}
	s.last[key] = now
	return nil
}

// Reset clears the cooldown slot for a key. Used when a later stage of the
// write fails and the caller wants the submitter to retry immediately.
func (g *Guard) Reset(submitterID, eventID string) {
	key := submitterID + "|" + eventID
	s := g.stripe(key)

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.last, key)
}

func (g *Guard) stripe(key string) *stripe {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return &g.stripes[int(h.Sum32())%len(g.stripes)]
}
