package store

import "context"

// Middleware sees every action before it reaches the Logic.
//
// BeforeReduce may return a different action. It must treat state as read
// only and must not call Send on the store it belongs to.
type Middleware[S any, A any] interface {
	BeforeReduce(ctx context.Context, action A, state S) (A, error)
}

// MiddlewareFunc adapts a function to Middleware.
type MiddlewareFunc[S any, A any] func(ctx context.Context, action A, state S) (A, error)

func (f MiddlewareFunc[S, A]) BeforeReduce(ctx context.Context, action A, state S) (A, error) {
	return f(ctx, action, state)
}

// runMiddleware feeds action through chain in order.
func runMiddleware[S any, A any](ctx context.Context, chain []Middleware[S, A], action A, state func() S) (A, error) {
	processed := action
	for i, mw := range chain {
		next, err := mw.BeforeReduce(ctx, processed, state())
		if err != nil {
			return processed, &MiddlewareError{Index: i, Err: err}
		}
		processed = next
	}
	return processed, nil
}
