// Package history keeps per-team bounded undo stacks of submission mementos.
//
// One stack per team, created lazily, capacity-bounded: pushing onto a full
// stack evicts the oldest entry, never the most recent. Team ids hash onto
// lock stripes so concurrent teams do not contend.
package history

import (
	"hash/fnv"
	"sync"

	"github.com/mmanav02/WeHack/internal/domain/model"
)

// Default history configuration constants.
const (
	defaultCapacity    = 10
	defaultStripeCount = 16
)

// Manager owns every team's undo stack.
type Manager struct {
	capacity int
	stripes  []stripe
}

type stripe struct {
	mu     sync.Mutex
	stacks map[string][]model.SubmissionMemento // oldest first
}

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithCapacity overrides the per-team stack depth.
func WithCapacity(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.capacity = n
		}
	}
}

// WithStripeCount sets the number of lock stripes.
func WithStripeCount(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.stripes = make([]stripe, n)
		}
	}
}

// NewManager creates a history manager with configuration options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		capacity: defaultCapacity,
		stripes:  make([]stripe, defaultStripeCount),
	}
	for _, opt := range opts {
		opt(m)
	}
	for i := range m.stripes {
		m.stripes[i].stacks = make(map[string][]model.SubmissionMemento)
	}
	return m
}

// Push records a memento as the team's most recent version, evicting the
// oldest entry when the stack is at capacity.
func (m *Manager) Push(teamID string, memento model.SubmissionMemento) {
	s := m.stripe(teamID)
	s.mu.Lock()
	defer s.mu.Unlock()

	stack := s.stacks[teamID]
	if len(stack) >= m.capacity {
		// drop from the far end, keep the most recent entries
		stack = stack[len(stack)-m.capacity+1:]
	}
	s.stacks[teamID] = append(stack, memento)
}

// Pop removes and returns the team's most recent memento.
func (m *Manager) Pop(teamID string) (model.SubmissionMemento, error) {
	s := m.stripe(teamID)
	s.mu.Lock()
	defer s.mu.Unlock()

	stack := s.stacks[teamID]
	if len(stack) == 0 {
		return model.SubmissionMemento{}, ErrHistoryEmpty
	}
	top := stack[len(stack)-1]
	s.stacks[teamID] = stack[:len(stack)-1]
	return top, nil
}

// Peek returns the most recent memento without consuming it.
func (m *Manager) Peek(teamID string) (model.SubmissionMemento, error) {
	s := m.stripe(teamID)
	s.mu.Lock()
	defer s.mu.Unlock()

	stack := s.stacks[teamID]
	if len(stack) == 0 {
		return model.SubmissionMemento{}, ErrHistoryEmpty
	}
	return stack[len(stack)-1], nil
}

// Depth returns the number of retained versions for a team.
func (m *Manager) Depth(teamID string) int {
	s := m.stripe(teamID)
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.stacks[teamID])
}

// Clear drops a team's stack. Called on event teardown.
func (m *Manager) Clear(teamID string) {
	s := m.stripe(teamID)
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.stacks, teamID)
}

func (m *Manager) stripe(teamID string) *stripe {
	h := fnv.New32a()
	_, _ = h.Write([]byte(teamID))
	return &m.stripes[int(h.Sum32())%len(m.stripes)]
}
