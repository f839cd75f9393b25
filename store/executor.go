package store

import (
	"context"
	"fmt"

	"github.com/on-the-ground/composable_go/config"
	"github.com/on-the-ground/composable_go/internal/dispatch"
)

// Result is the outcome of work run on an Executor.
type Result = dispatch.Result[struct{}]

// Executor runs submitted work on a fixed pool of workers.
//
// Work sharing a key always runs on the same worker, in submission order, so
// a key is never processed twice at the same time. Different keys may run in
// parallel when the pool has more than one worker.
type Executor struct {
	handler dispatch.ResumableHandler[job, struct{}]
}

type job struct {
	ctx context.Context
	key string
	fn  func(context.Context) error
}

func (j job) PartitionKey() string {
	return j.key
}

// NewExecutor starts the workers. They stop on Close or when ctx is done.
func NewExecutor(ctx context.Context, cfg config.ExecutorConfig) *Executor {
	return &Executor{
		handler: dispatch.NewResumableHandler(
			ctx,
			dispatch.NewConfig(cfg.BufferSize, cfg.NumWorkers),
			runJob,
			func() {},
		),
	}
}

// ID identifies the executor in logs.
func (e *Executor) ID() string {
	return e.handler.EffectId
}

// Do queues fn under key and returns a channel yielding exactly one Result.
// fn receives ctx; if ctx is done before fn starts, fn is skipped.
func (e *Executor) Do(ctx context.Context, key string, fn func(context.Context) error) <-chan Result {
	return e.handler.Perform(ctx, job{ctx: ctx, key: key, fn: fn})
}

// Close stops the workers. Queued work that has not started reports ErrExecutorClosed.
func (e *Executor) Close() {
	e.handler.Close()
}

func runJob(_ context.Context, j job) (res struct{}, err error) {
	if err = j.ctx.Err(); err != nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrJobPanicked, r)
		}
	}()
	err = j.fn(j.ctx)
	return
}
