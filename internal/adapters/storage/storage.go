// Package storage stores submission attachments behind opaque pointers.
//
// The core never touches disk paths; it hands bytes in and gets a Pointer
// back, and later only asks whether a pointer still resolves.
package storage

import (
	"context"
	"fmt"
	"path"
	"sync"

	"github.com/google/uuid"
)

// Default storage configuration constants.
const defaultMaxObjectSize = 8 << 20 // 8 MiB hard cap at the adapter

// Pointer is an opaque handle to a stored attachment.
type Pointer string

// BlobStore stores and resolves attachment blobs.
type BlobStore interface {
	// Store persists data under a fresh pointer derived from originalName.
	Store(ctx context.Context, data []byte, originalName string) (Pointer, error)

	// Exists reports whether the pointer still resolves.
	Exists(ctx context.Context, p Pointer) bool
}

// MemBlobStore keeps blobs in memory. Pointers keep the uploads/ prefix the
// platform has always exposed, but remain opaque to callers.
type MemBlobStore struct {
	mu      sync.RWMutex
	blobs   map[Pointer][]byte
	maxSize int
}

// Option applies a configuration option to the MemBlobStore.
type Option func(*MemBlobStore)

// WithMaxObjectSize caps a single stored blob.
func WithMaxObjectSize(n int) Option {
	return func(s *MemBlobStore) {
		if n > 0 {
			s.maxSize = n
		}
	}
}

// NewMemBlobStore creates an in-memory blob store.
func NewMemBlobStore(opts ...Option) *MemBlobStore {
	s := &MemBlobStore{
		blobs:   make(map[Pointer][]byte),
		maxSize: defaultMaxObjectSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store implements BlobStore.
func (s *MemBlobStore) Store(_ context.Context, data []byte, originalName string) (Pointer, error) {
	if len(data) == 0 {
		return "", ErrEmptyObject
	}
	if len(data) > s.maxSize {
		return "", fmt.Errorf("%w: %d bytes", ErrObjectTooLarge, len(data))
	}

	p := Pointer("uploads/" + uuid.NewString() + "_" + path.Base(originalName))

	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.blobs[p] = buf
	return p, nil
}

// Exists implements BlobStore.
func (s *MemBlobStore) Exists(_ context.Context, p Pointer) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.blobs[p]
	return ok
}

// Load returns a stored blob. Mainly a test and debugging aid.
func (s *MemBlobStore) Load(_ context.Context, p Pointer) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.blobs[p]
	return b, ok
}
