// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/mmanav02/WeHack/internal/adapters/mq/queue"
	repository "github.com/mmanav02/WeHack/internal/adapters/repository"
	storage "github.com/mmanav02/WeHack/internal/adapters/storage"
	"github.com/mmanav02/WeHack/internal/domain/guard"
	"github.com/mmanav02/WeHack/internal/domain/history"
	"github.com/mmanav02/WeHack/internal/domain/model"
	"github.com/mmanav02/WeHack/internal/domain/scoring"
	"github.com/mmanav02/WeHack/internal/domain/validate"
	"github.com/mmanav02/WeHack/internal/notify"
	"github.com/mmanav02/WeHack/pkg/logger"
)

// Default service configuration constants.
const (
	defaultTransitionStripes = 16
)

// Service orchestrates events, teams, submissions, scoring and fan-out
// notifications over the injected stores and domain components.
type Service struct {
	events      repository.EventStore
	users       repository.UserStore
	teams       repository.TeamStore
	submissions repository.SubmissionStore
	scores      repository.ScoreStore
	comments    repository.CommentStore
	blobs       storage.BlobStore

	guard    *guard.Guard
	history  *history.Manager
	registry *notify.Registry
	factory  *notify.Factory
	caster   *notify.Broadcaster

	// Optional async outbox for direct notifications. When unset, direct
	// notifications are delivered inline.
	outbox Outbox

	// Weighted scoring split, normalized inside the strategy.
	weightInnovation float64
	weightImpact     float64
	weightExecution  float64

	// Per-event locks serializing phase transitions.
	transitionLocks []sync.Mutex

	now    func() time.Time
	logger logger.Logger
}

// Outbox queues one direct notification for asynchronous delivery.
// Enqueue reports false when the message was dropped.
type Outbox interface {
	Enqueue(ctx context.Context, m queue.Message) bool
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithOutbox routes direct notifications through an async outbox instead
// of delivering them inline.
func WithOutbox(o Outbox) Option {
	return func(svc *Service) {
		if o != nil {
			svc.outbox = o
		}
	}
}

// WithEventStore sets the event store.
func WithEventStore(s repository.EventStore) Option {
	return func(svc *Service) {
		if s != nil {
			svc.events = s
		}
	}
}

// WithUserStore sets the user store.
func WithUserStore(s repository.UserStore) Option {
	return func(svc *Service) {
		if s != nil {
			svc.users = s
		}
	}
}

// WithTeamStore sets the team store.
func WithTeamStore(s repository.TeamStore) Option {
	return func(svc *Service) {
		if s != nil {
			svc.teams = s
		}
	}
}

// WithSubmissionStore sets the submission store.
func WithSubmissionStore(s repository.SubmissionStore) Option {
	return func(svc *Service) {
		if s != nil {
			svc.submissions = s
		}
	}
}

// WithScoreStore sets the judge score store.
func WithScoreStore(s repository.ScoreStore) Option {
	return func(svc *Service) {
		if s != nil {
			svc.scores = s
		}
	}
}

// WithCommentStore sets the discussion comment store.
func WithCommentStore(s repository.CommentStore) Option {
	return func(svc *Service) {
		if s != nil {
			svc.comments = s
		}
	}
}

// WithBlobStore sets the attachment store.
func WithBlobStore(s storage.BlobStore) Option {
	return func(svc *Service) {
		if s != nil {
			svc.blobs = s
		}
	}
}

// WithGuard sets the submission guard.
func WithGuard(g *guard.Guard) Option {
	return func(svc *Service) {
		if g != nil {
			svc.guard = g
		}
	}
}

// WithHistory sets the undo-history manager.
func WithHistory(h *history.Manager) Option {
	return func(svc *Service) {
		if h != nil {
			svc.history = h
		}
	}
}

// WithRegistry sets the observer registry.
func WithRegistry(r *notify.Registry) Option {
	return func(svc *Service) {
		if r != nil {
			svc.registry = r
		}
	}
}

// WithFactory sets the delivery channel factory.
func WithFactory(f *notify.Factory) Option {
	return func(svc *Service) {
		if f != nil {
			svc.factory = f
		}
	}
}

// WithBroadcaster sets the fan-out broadcaster.
func WithBroadcaster(b *notify.Broadcaster) Option {
	return func(svc *Service) {
		if b != nil {
			svc.caster = b
		}
	}
}

// WithScoringWeights sets the weighted-average split.
func WithScoringWeights(innovation, impact, execution float64) Option {
	return func(svc *Service) {
		if innovation >= 0 && impact >= 0 && execution >= 0 {
			svc.weightInnovation = innovation
			svc.weightImpact = impact
			svc.weightExecution = execution
		}
	}
}

// WithTransitionStripeCount sets the number of per-event transition locks.
func WithTransitionStripeCount(n int) Option {
	return func(svc *Service) {
		if n > 0 {
			svc.transitionLocks = make([]sync.Mutex, n)
		}
	}
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(svc *Service) {
		if now != nil {
			svc.now = now
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(svc *Service) {
		if log != nil {
			svc.logger = log
		}
	}
}

// New constructs a Service. Components not supplied through options get
// in-memory defaults, which is the full production wiring for this system.
func New(opts ...Option) *Service {
	s := &Service{
		weightInnovation: 0.40,
		weightImpact:     0.35,
		weightExecution:  0.25,
		transitionLocks:  make([]sync.Mutex, defaultTransitionStripes),
		now:              time.Now,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	if s.events == nil {
		s.events = repository.NewMemEventStore()
	}
	if s.users == nil {
		s.users = repository.NewMemUserStore()
	}
	if s.teams == nil {
		s.teams = repository.NewMemTeamStore()
	}
	if s.submissions == nil {
		s.submissions = repository.NewMemSubmissionStore()
	}
	if s.scores == nil {
		s.scores = repository.NewMemScoreStore()
	}
	if s.comments == nil {
		s.comments = repository.NewMemCommentStore()
	}
	if s.blobs == nil {
		s.blobs = storage.NewMemBlobStore()
	}
	if s.guard == nil {
		s.guard = guard.New(validate.NewChain())
	}
	if s.history == nil {
		s.history = history.NewManager()
	}
	if s.registry == nil {
		s.registry = notify.NewRegistry()
	}
	if s.factory == nil {
		s.factory = notify.NewFactory()
	}
	if s.caster == nil {
		s.caster = notify.NewBroadcaster(s.registry, s.factory)
	}

	return s
}

// strategyFor builds the scoring strategy selected by the event.
func (s *Service) strategyFor(method model.ScoringMethod) scoring.Strategy {
	return scoring.ForMethod(
		method,
		scoring.WithWeights(s.weightInnovation, s.weightImpact, s.weightExecution),
	)
}

// transitionLock returns the stripe serializing one event's transitions.
func (s *Service) transitionLock(eventID string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(eventID))
	return &s.transitionLocks[int(h.Sum32())%len(s.transitionLocks)]
}
