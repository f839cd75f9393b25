package store

import "context"

// Logic owns the state and reduces actions into it.
//
// Reduce applies the action to the state before it returns and may describe
// follow-up work as an Effect. A nil Effect means the reduction is complete.
// Reduce is only ever called from Send, one action at a time.
type Logic[S any, A any] interface {
	State() S
	Reduce(ctx context.Context, action A) (*Effect[A], error)
	Dispose()
}

// NopDispose can be embedded by Logic implementations holding no resources.
type NopDispose struct{}

func (NopDispose) Dispose() {}
