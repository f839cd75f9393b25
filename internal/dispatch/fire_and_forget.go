package dispatch

import (
	"context"
)

// FireAndForgetHandler runs handleFn for each payload without reporting back.
type FireAndForgetHandler[P Partitionable] struct {
	*scope[P]
}

// NewFireAndForgetHandler starts config.NumWorkers workers running handleFn.
// Payloads still buffered when the handler closes are handled before teardown runs.
func NewFireAndForgetHandler[P Partitionable](
	ctx context.Context,
	config Config,
	handleFn func(context.Context, P),
	teardown func(),
) FireAndForgetHandler[P] {
	return FireAndForgetHandler[P]{
		scope: newScope(
			ctx,
			config,
			handleFn,
			func(payload P) {
				handleFn(context.WithoutCancel(ctx), payload)
			},
			teardown,
		),
	}
}

// Fire queues payload. It only blocks while the target worker's buffer is full.
func (ffh FireAndForgetHandler[P]) Fire(ctx context.Context, payload P) error {
	return ffh.send(ctx, payload)
}
