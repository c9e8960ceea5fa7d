package repository

import (
	"context"
	"fmt"
	"hash/fnv"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/mmanav02/WeHack/internal/domain/model"
)

// shard is one mutex-guarded slice of the keyspace.
type shard[V any] struct {
	mu    sync.RWMutex
	items map[string]V
}

// sharded spreads string keys across shards so unrelated keys do not
// contend on one lock.
type sharded[V any] struct {
	shards []*shard[V]
}

func newSharded[V any](n int) *sharded[V] {
	s := &sharded[V]{shards: make([]*shard[V], n)}
	for i := range s.shards {
		s.shards[i] = &shard[V]{items: make(map[string]V)}
	}
	return s
}

func (s *sharded[V]) shardFor(key string) *shard[V] {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return s.shards[int(h.Sum32())%len(s.shards)]
}

func (s *sharded[V]) get(key string) (V, bool) {
	sh := s.shardFor(key)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	v, ok := sh.items[key]
	return v, ok
}

func (s *sharded[V]) put(key string, v V) {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.items[key] = v
}

func (s *sharded[V]) delete(key string) {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	delete(sh.items, key)
}

// collect gathers every value matching keep, shard by shard.
func (s *sharded[V]) collect(keep func(V) bool) []V {
	var out []V
	for _, sh := range s.shards {
		sh.mu.RLock()
		for _, v := range sh.items {
			if keep(v) {
				out = append(out, v)
			}
		}
		sh.mu.RUnlock()
	}
	return out
}

// deleteWhere removes every value matching drop and reports how many went.
func (s *sharded[V]) deleteWhere(drop func(V) bool) int {
	n := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		for k, v := range sh.items {
			if drop(v) {
				delete(sh.items, k)
				n++
			}
		}
		sh.mu.Unlock()
	}
	return n
}

func newID() string { return uuid.NewString() }

// MemEventStore is the in-memory EventStore.
type MemEventStore struct {
	data *sharded[model.Event]
}

// NewMemEventStore creates an in-memory event store.
func NewMemEventStore(opts ...Option) *MemEventStore {
	return &MemEventStore{data: newSharded[model.Event](settings(opts).shardCount)}
}

// Get implements EventStore.
func (s *MemEventStore) Get(_ context.Context, id string) (model.Event, error) {
	e, ok := s.data.get(id)
	if !ok {
		return model.Event{}, fmt.Errorf("event %s: %w", id, ErrNotFound)
	}
	return e, nil
}

// Put implements EventStore.
func (s *MemEventStore) Put(_ context.Context, e model.Event) (model.Event, error) {
	if e.ID == "" {
		e.ID = newID()
	}
	s.data.put(e.ID, e)
	return e, nil
}

// Delete implements EventStore.
func (s *MemEventStore) Delete(_ context.Context, id string) error {
	s.data.delete(id)
	return nil
}

// List implements EventStore.
func (s *MemEventStore) List(_ context.Context) ([]model.Event, error) {
	out := s.data.collect(func(model.Event) bool { return true })
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// MemUserStore is the in-memory UserStore.
type MemUserStore struct {
	data *sharded[model.User]
}

// NewMemUserStore creates an in-memory user store.
func NewMemUserStore(opts ...Option) *MemUserStore {
	return &MemUserStore{data: newSharded[model.User](settings(opts).shardCount)}
}

// Get implements UserStore.
func (s *MemUserStore) Get(_ context.Context, id string) (model.User, error) {
	u, ok := s.data.get(id)
	if !ok {
		return model.User{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return u, nil
}

// Put implements UserStore.
func (s *MemUserStore) Put(_ context.Context, u model.User) (model.User, error) {
	if u.ID == "" {
		u.ID = newID()
	}
	s.data.put(u.ID, u)
	return u, nil
}

// MemTeamStore is the in-memory TeamStore.
type MemTeamStore struct {
	data *sharded[model.Team]
}

// NewMemTeamStore creates an in-memory team store.
func NewMemTeamStore(opts ...Option) *MemTeamStore {
	return &MemTeamStore{data: newSharded[model.Team](settings(opts).shardCount)}
}

// Get implements TeamStore.
func (s *MemTeamStore) Get(_ context.Context, id string) (model.Team, error) {
	t, ok := s.data.get(id)
	if !ok {
		return model.Team{}, fmt.Errorf("team %s: %w", id, ErrNotFound)
	}
	return t, nil
}

// Put implements TeamStore.
func (s *MemTeamStore) Put(_ context.Context, t model.Team) (model.Team, error) {
	if t.ID == "" {
		t.ID = newID()
	}
	s.data.put(t.ID, t)
	return t, nil
}

// Delete implements TeamStore.
func (s *MemTeamStore) Delete(_ context.Context, id string) error {
	s.data.delete(id)
	return nil
}

// ByEvent implements TeamStore.
func (s *MemTeamStore) ByEvent(_ context.Context, eventID string) ([]model.Team, error) {
	out := s.data.collect(func(t model.Team) bool { return t.EventID == eventID })
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ByMember implements TeamStore.
func (s *MemTeamStore) ByMember(_ context.Context, eventID, userID string) (model.Team, error) {
	matches := s.data.collect(func(t model.Team) bool {
		return t.EventID == eventID && t.Has(userID)
	})
	if len(matches) == 0 {
		return model.Team{}, fmt.Errorf("no team for user %s in event %s: %w", userID, eventID, ErrNotFound)
	}
	return matches[0], nil
}

// MemSubmissionStore is the in-memory SubmissionStore.
type MemSubmissionStore struct {
	data *sharded[model.Submission]
}

// NewMemSubmissionStore creates an in-memory submission store.
func NewMemSubmissionStore(opts ...Option) *MemSubmissionStore {
	return &MemSubmissionStore{data: newSharded[model.Submission](settings(opts).shardCount)}
}

// Get implements SubmissionStore.
func (s *MemSubmissionStore) Get(_ context.Context, id string) (model.Submission, error) {
	sub, ok := s.data.get(id)
	if !ok {
		return model.Submission{}, fmt.Errorf("submission %s: %w", id, ErrNotFound)
	}
	return sub, nil
}

// Put implements SubmissionStore.
func (s *MemSubmissionStore) Put(_ context.Context, sub model.Submission) (model.Submission, error) {
	if sub.ID == "" {
		sub.ID = newID()
	}
	s.data.put(sub.ID, sub)
	return sub, nil
}

// Delete implements SubmissionStore.
func (s *MemSubmissionStore) Delete(_ context.Context, id string) error {
	s.data.delete(id)
	return nil
}

// ByEvent implements SubmissionStore.
func (s *MemSubmissionStore) ByEvent(_ context.Context, eventID string) ([]model.Submission, error) {
	out := s.data.collect(func(sub model.Submission) bool { return sub.EventID == eventID })
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ByTeam implements SubmissionStore.
func (s *MemSubmissionStore) ByTeam(_ context.Context, teamID string) ([]model.Submission, error) {
	out := s.data.collect(func(sub model.Submission) bool { return sub.TeamID == teamID })
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// DeleteByEvent implements SubmissionStore.
func (s *MemSubmissionStore) DeleteByEvent(_ context.Context, eventID string) error {
	s.data.deleteWhere(func(sub model.Submission) bool { return sub.EventID == eventID })
	return nil
}

// MemScoreStore is the in-memory ScoreStore.
type MemScoreStore struct {
	data *sharded[model.JudgeScoreRecord]
}

// NewMemScoreStore creates an in-memory judge score store.
func NewMemScoreStore(opts ...Option) *MemScoreStore {
	return &MemScoreStore{data: newSharded[model.JudgeScoreRecord](settings(opts).shardCount)}
}

// Append implements ScoreStore.
func (s *MemScoreStore) Append(_ context.Context, r model.JudgeScoreRecord) (model.JudgeScoreRecord, error) {
	if r.ID == "" {
		r.ID = newID()
	}
	s.data.put(r.ID, r)
	return r, nil
}

// BySubmission implements ScoreStore.
func (s *MemScoreStore) BySubmission(_ context.Context, submissionID string) ([]model.JudgeScoreRecord, error) {
	out := s.data.collect(func(r model.JudgeScoreRecord) bool { return r.SubmissionID == submissionID })
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// DeleteBySubmission implements ScoreStore.
func (s *MemScoreStore) DeleteBySubmission(_ context.Context, submissionID string) error {
	s.data.deleteWhere(func(r model.JudgeScoreRecord) bool { return r.SubmissionID == submissionID })
	return nil
}

// MemCommentStore is the in-memory CommentStore.
type MemCommentStore struct {
	data *sharded[model.Comment]
}

// NewMemCommentStore creates an in-memory comment store.
func NewMemCommentStore(opts ...Option) *MemCommentStore {
	return &MemCommentStore{data: newSharded[model.Comment](settings(opts).shardCount)}
}

// Get implements CommentStore.
func (s *MemCommentStore) Get(_ context.Context, id string) (model.Comment, error) {
	c, ok := s.data.get(id)
	if !ok {
		return model.Comment{}, fmt.Errorf("comment %s: %w", id, ErrNotFound)
	}
	return c, nil
}

// Put implements CommentStore.
func (s *MemCommentStore) Put(_ context.Context, c model.Comment) (model.Comment, error) {
	if c.ID == "" {
		c.ID = newID()
	}
	s.data.put(c.ID, c)
	return c, nil
}

// ByEvent implements CommentStore.
func (s *MemCommentStore) ByEvent(_ context.Context, eventID string) ([]model.Comment, error) {
	out := s.data.collect(func(c model.Comment) bool { return c.EventID == eventID })
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// DeleteByEvent implements CommentStore.
func (s *MemCommentStore) DeleteByEvent(_ context.Context, eventID string) error {
	s.data.deleteWhere(func(c model.Comment) bool { return c.EventID == eventID })
	return nil
}
