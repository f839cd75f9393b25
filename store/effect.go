package store

import (
	"context"
	"time"
)

// Dispatcher sends an action through the store that is resolving an effect.
type Dispatcher[A any] func(ctx context.Context, action A) error

// Task is the asynchronous part of an Effect.
//
// It returns the follow-up action with ok set, or ok unset when there is
// nothing to dispatch. dispatch may be used to send intermediate actions
// while the task is still running. Tasks should return promptly once ctx is done;
// a task that completes without error keeps its follow-up even if ctx is done by then.
type Task[A any] func(ctx context.Context, dispatch Dispatcher[A]) (next A, ok bool, err error)

// Effect describes work to do after a reduction.
//
// DispatchChanged asks the store to publish the reduced state before Task
// is awaited. An Effect without a Task behaves like no Effect at all.
type Effect[A any] struct {
	Task            Task[A]
	DispatchChanged bool
}

type effectOptions struct {
	dispatchChanged bool
	delay           time.Duration
}

type EffectOption func(*effectOptions)

// WithDispatchChanged publishes the reduced state before the effect resolves.
func WithDispatchChanged() EffectOption {
	return func(o *effectOptions) {
		o.dispatchChanged = true
	}
}

// WithDelay waits d before the effect resolves. The wait ends early, with an
// error, when the context given to Send is done.
func WithDelay(d time.Duration) EffectOption {
	return func(o *effectOptions) {
		o.delay = d
	}
}

// NewEffect builds an Effect that resolves to action.
func NewEffect[A any](action A, opts ...EffectOption) *Effect[A] {
	return newEffect(action, true, opts)
}

// NoAction builds an Effect that resolves without a follow-up action.
func NoAction[A any](opts ...EffectOption) *Effect[A] {
	var zero A
	return newEffect(zero, false, opts)
}

func newEffect[A any](action A, ok bool, opts []EffectOption) *Effect[A] {
	o := effectOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	return &Effect[A]{
		DispatchChanged: o.dispatchChanged,
		Task: func(ctx context.Context, _ Dispatcher[A]) (A, bool, error) {
			if err := sleep(ctx, o.delay); err != nil {
				var zero A
				return zero, false, err
			}
			return action, ok, nil
		},
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
