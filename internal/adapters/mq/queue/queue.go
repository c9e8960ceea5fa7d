// Package queue holds the outbox: a bounded in-memory queue of direct
// notifications waiting for asynchronous delivery.
//
// Direct notifications (organizer alerts, judge approvals) do not block the
// write path; callers enqueue and move on. A full outbox drops the message
// rather than stalling a request.
package queue

import (
	"context"
	"sync"

	"github.com/mmanav02/WeHack/internal/domain/model"
	"github.com/mmanav02/WeHack/pkg/metrics"
)

// Default queue configuration constants.
const (
	defaultCapacity = 1024
)

// Message is one direct notification waiting for delivery. Event and
// Organizer carry everything the channel factory needs to compose the
// sender at delivery time.
type Message struct {
	Event     model.Event
	Organizer model.User
	To        string
	Subject   string
	Body      string
}

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a message to the outbox.
	// Returns false if the outbox is full and the message was dropped.
	Enqueue(ctx context.Context, m Message) bool

	// Dequeue returns a channel that receives messages as they become
	// available. The channel is closed when the queue is closed.
	Dequeue(ctx context.Context) <-chan Message

	// Len returns the current number of queued messages.
	Len(ctx context.Context) int

	// Close gracefully shuts down the queue.
	// After closing, no new messages can be enqueued and the dequeue
	// channel is closed once drained.
	Close() error

	// IsClosed returns true if the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	messages chan Message
	capacity int
	mu       sync.RWMutex
	closed   bool
}

// NewInMemoryQueue creates a new in-memory outbox with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: defaultCapacity,
	}

	for _, opt := range opts {
		opt(q)
	}

	q.messages = make(chan Message, q.capacity)

	metrics.UpdateOutboxDepth(0)

	return q
}

// Enqueue adds a message to the outbox. The write never blocks; a full or
// closed outbox drops the message and reports false.
func (q *InMemoryQueue) Enqueue(ctx context.Context, m Message) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordOutboxDropped()
		return false
	}

	select {
	case q.messages <- m:
		metrics.RecordOutboxEnqueue()
		metrics.UpdateOutboxDepth(len(q.messages))
		return true
	case <-ctx.Done():
		metrics.RecordOutboxDropped()
		return false
	default:
		metrics.RecordOutboxDropped()
		return false
	}
}

// Dequeue returns a channel that receives messages as they become available.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Message {
	out := make(chan Message)
	go func() {
		defer close(out)
		for m := range q.messages {
			select {
			case out <- m:
				metrics.UpdateOutboxDepth(len(q.messages))
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the current number of queued messages.
func (q *InMemoryQueue) Len(_ context.Context) int {
	size := len(q.messages)
	metrics.UpdateOutboxDepth(size)
	return size
}

// Close gracefully shuts down the queue. Closing an already closed
// queue returns ErrClosed.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrClosed
	}

	close(q.messages)
	q.closed = true

	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
