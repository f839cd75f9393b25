package dispatch

import (
	"context"
)

// Result carries the outcome of a resumable message back to its sender.
type Result[R any] struct {
	Value R
	Err   error
}

func ResultFrom[R any](res R, err error) Result[R] {
	return Result[R]{Value: res, Err: err}
}

var _ Partitionable = resumableMessage[Partitionable, any]{}

type resumableMessage[P Partitionable, R any] struct {
	payload  P
	resumeCh chan Result[R]
}

func (m resumableMessage[P, R]) PartitionKey() string {
	return m.payload.PartitionKey()
}

// ResumableHandler answers every performed payload with exactly one Result.
type ResumableHandler[P Partitionable, R any] struct {
	*scope[resumableMessage[P, R]]
}

// NewResumableHandler starts config.NumWorkers workers running handleFn.
// With more than one worker, payloads are partitioned by PartitionKey.
// Payloads still buffered when the handler closes are answered with ErrClosed.
func NewResumableHandler[P Partitionable, R any](
	ctx context.Context,
	config Config,
	handleFn func(context.Context, P) (R, error),
	teardown func(),
) ResumableHandler[P, R] {
	return ResumableHandler[P, R]{
		scope: newScope(
			ctx,
			config,
			func(ctx context.Context, msg resumableMessage[P, R]) {
				msg.resumeCh <- ResultFrom(handleFn(ctx, msg.payload))
			},
			func(msg resumableMessage[P, R]) {
				msg.resumeCh <- Result[R]{Err: ErrClosed}
			},
			teardown,
		),
	}
}

// Perform hands payload to a worker. The returned channel yields exactly one Result.
func (rh ResumableHandler[P, R]) Perform(ctx context.Context, payload P) <-chan Result[R] {
	// buffered so a worker never blocks on an abandoned sender
	resumeCh := make(chan Result[R], 1)

	msg := resumableMessage[P, R]{
		payload:  payload,
		resumeCh: resumeCh,
	}
	if err := rh.send(ctx, msg); err != nil {
		resumeCh <- Result[R]{Err: err}
	}
	return resumeCh
}
