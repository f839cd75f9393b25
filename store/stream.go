package store

import "sync"

// Observer receives notifications from a Stream.
type Observer[T any] interface {
	OnNext(value T)
	OnCompleted()
}

// Stream is the broadcast-style view of a store's notifications, kept for
// callers written against subscribe/unsubscribe/complete. Every subscription
// is an ordinary handler registration; prefer Store.AddHandler in new code.
type Stream[T any] struct {
	handlers *registry[T]

	mu   sync.Mutex
	subs []streamSubscription[T]
}

type streamSubscription[T any] struct {
	observer Observer[T]
	sub      *Subscription
}

func newStream[T any](handlers *registry[T]) *Stream[T] {
	return &Stream[T]{handlers: handlers}
}

// Subscribe registers observer.OnNext as a handler.
func (st *Stream[T]) Subscribe(observer Observer[T]) *Subscription {
	sub := st.handlers.add(observer.OnNext)

	st.mu.Lock()
	defer st.mu.Unlock()
	st.subs = append(st.live(), streamSubscription[T]{observer: observer, sub: sub})
	return sub
}

// Complete signals OnCompleted to every live subscriber and unsubscribes all of them.
func (st *Stream[T]) Complete() {
	st.mu.Lock()
	subs := st.live()
	st.subs = nil
	st.mu.Unlock()

	for _, s := range subs {
		s.sub.Dispose()
		s.observer.OnCompleted()
	}
}

// live drops subscriptions disposed on their own. Callers hold st.mu.
func (st *Stream[T]) live() []streamSubscription[T] {
	kept := st.subs[:0]
	for _, s := range st.subs {
		if !s.sub.Disposed() {
			kept = append(kept, s)
		}
	}
	return kept
}
