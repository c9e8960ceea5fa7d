package notify

import (
	"hash/fnv"
	"sync"

	"github.com/mmanav02/WeHack/internal/domain/model"
)

// Default registry configuration constants.
const defaultRegistryStripes = 16

// Registry holds each event's registered observers. Event ids hash onto
// lock stripes; registration on different events never contends.
type Registry struct {
	stripes []registryStripe
}

type registryStripe struct {
	mu        sync.RWMutex
	observers map[string][]model.ObserverEntry
}

// RegistryOption applies a configuration option to the Registry.
type RegistryOption func(*Registry)

// WithRegistryStripes sets the number of lock stripes.
func WithRegistryStripes(n int) RegistryOption {
	return func(r *Registry) {
		if n > 0 {
			r.stripes = make([]registryStripe, n)
		}
	}
}

// NewRegistry creates an observer registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{stripes: make([]registryStripe, defaultRegistryStripes)}
	for _, opt := range opts {
		opt(r)
	}
	for i := range r.stripes {
		r.stripes[i].observers = make(map[string][]model.ObserverEntry)
	}
	return r
}

// Register adds an observer for an event. Registration is idempotent per
// (user, role): a re-register replaces the stored entry, so approval-state
// changes take effect without duplicating recipients.
func (r *Registry) Register(eventID string, entry model.ObserverEntry) {
	s := r.stripe(eventID)
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.observers[eventID]
	for i, existing := range list {
		if existing.UserID == entry.UserID && existing.Role == entry.Role {
			list[i] = entry
			return
		}
	}
	s.observers[eventID] = append(list, entry)
}

// Unregister removes every entry for a user within an event.
func (r *Registry) Unregister(eventID, userID string) {
	s := r.stripe(eventID)
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.observers[eventID]
	kept := list[:0]
	for _, e := range list {
		if e.UserID != userID {
			kept = append(kept, e)
		}
	}
	s.observers[eventID] = kept
}

// Clear drops all observers for an event. Called on teardown.
func (r *Registry) Clear(eventID string) {
	s := r.stripe(eventID)
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.observers, eventID)
}

// Approved returns a snapshot of the event's approved observers.
func (r *Registry) Approved(eventID string) []model.ObserverEntry {
	return r.ByStatus(eventID, model.Approved)
}

// ByStatus returns a snapshot of the event's observers holding status.
func (r *Registry) ByStatus(eventID string, status model.ApprovalStatus) []model.ObserverEntry {
	s := r.stripe(eventID)
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.ObserverEntry
	for _, e := range s.observers[eventID] {
		if e.Status == status {
			out = append(out, e)
		}
	}
	return out
}

// Find returns the entry registered for a user within an event.
func (r *Registry) Find(eventID, userID string) (model.ObserverEntry, bool) {
	s := r.stripe(eventID)
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.observers[eventID] {
		if e.UserID == userID {
			return e, true
		}
	}
	return model.ObserverEntry{}, false
}

// Count returns how many observers, approved or not, an event has.
func (r *Registry) Count(eventID string) int {
	s := r.stripe(eventID)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.observers[eventID])
}

func (r *Registry) stripe(eventID string) *registryStripe {
	h := fnv.New32a()
	_, _ = h.Write([]byte(eventID))
	return &r.stripes[int(h.Sum32())%len(r.stripes)]
}
