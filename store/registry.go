package store

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Subscription is the capability to undo one registration.
type Subscription struct {
	id       uuid.UUID
	remove   func(uuid.UUID)
	once     sync.Once
	disposed atomic.Bool
}

// ID identifies the registration; it is unique per call to AddHandler or Subscribe.
func (s *Subscription) ID() string {
	return s.id.String()
}

// Dispose removes the registration. Calling it again does nothing.
func (s *Subscription) Dispose() {
	s.once.Do(func() {
		s.disposed.Store(true)
		s.remove(s.id)
	})
}

func (s *Subscription) Disposed() bool {
	return s.disposed.Load()
}

type registration[T any] struct {
	id uuid.UUID
	fn func(T)
}

// registry keeps handlers in registration order, keyed by an opaque token.
type registry[T any] struct {
	mu      sync.Mutex
	entries []registration[T]
}

func (r *registry[T]) add(fn func(T)) *Subscription {
	id := uuid.New()

	r.mu.Lock()
	r.entries = append(r.entries, registration[T]{id: id, fn: fn})
	r.mu.Unlock()

	return &Subscription{id: id, remove: r.remove}
}

func (r *registry[T]) remove(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, entry := range r.entries {
		if entry.id == id {
			r.entries = append(r.entries[:i:i], r.entries[i+1:]...)
			return
		}
	}
}

// publish calls every handler registered when publish started, in order.
// Handlers may add or dispose registrations while being called.
func (r *registry[T]) publish(value T) {
	r.mu.Lock()
	snapshot := make([]func(T), len(r.entries))
	for i, entry := range r.entries {
		snapshot[i] = entry.fn
	}
	r.mu.Unlock()

	for _, fn := range snapshot {
		fn(value)
	}
}
