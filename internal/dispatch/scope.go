package dispatch

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// scope owns a set of workers and the channels feeding them.
//
// Sending is safe from any goroutine. Close stops the workers, hands every
// message still sitting in a buffer to drain, then runs teardown. The scope
// also closes itself once its parent context is done.
type scope[T Partitionable] struct {
	EffectId   string
	dispatcher workerDispatcher[T]
	ctx        context.Context
	cancel     context.CancelFunc
	workers    *sync.WaitGroup
	drain      func(T)
	teardown   func()

	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
}

func newScope[T Partitionable](
	parent context.Context,
	config Config,
	handleFn func(context.Context, T),
	drain func(T),
	teardown func(),
) *scope[T] {
	ctx, cancel := context.WithCancel(parent)
	s := &scope[T]{
		EffectId: uuid.New().String(),
		ctx:      ctx,
		cancel:   cancel,
		workers:  &sync.WaitGroup{},
		drain:    drain,
		teardown: teardown,
	}
	s.dispatcher = newWorkerDispatcher(ctx, s.workers, NewConfig(config.BufferSize, config.NumWorkers), handleFn, drain)

	go func() {
		<-ctx.Done()
		s.Close()
	}()

	return s
}

func (s *scope[T]) send(ctx context.Context, msg T) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrClosed
	}
	select {
	case s.dispatcher.channelOf(msg) <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ctx.Done():
		return ErrClosed
	}
}

// Close is idempotent; concurrent callers block until the first one finishes.
func (s *scope[T]) Close() {
	s.closeOnce.Do(func() {
		s.cancel()

		// no sender is mid-flight once the write lock is held
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()

		s.workers.Wait()
		for _, ch := range s.dispatcher.channels() {
			drainChannel(ch, s.drain)
		}
		s.teardown()
	})
}

func drainChannel[T any](ch chan T, fn func(T)) {
	for {
		select {
		case msg := <-ch:
			fn(msg)
		default:
			return
		}
	}
}
