package store

import (
	"errors"
	"fmt"

	"github.com/on-the-ground/composable_go/internal/dispatch"
)

var (
	// ErrDisposed is returned by Send and Enqueue once the store was disposed.
	ErrDisposed = errors.New("store: disposed")

	// ErrExecutorClosed is reported for work submitted to a closed Executor.
	ErrExecutorClosed = dispatch.ErrClosed

	// ErrJobPanicked wraps a panic recovered on an Executor worker.
	ErrJobPanicked = errors.New("store: job panicked")
)

// MiddlewareError reports the failing stage of the middleware chain.
// The action never reached the Logic.
type MiddlewareError struct {
	Index int
	Err   error
}

func (e *MiddlewareError) Error() string {
	return fmt.Sprintf("middleware %d: %v", e.Index, e.Err)
}

func (e *MiddlewareError) Unwrap() error { return e.Err }

// ReductionError reports a failed Logic.Reduce. State changes the Logic made
// before failing are kept.
type ReductionError struct {
	Err error
}

func (e *ReductionError) Error() string {
	return fmt.Sprintf("reduce: %v", e.Err)
}

func (e *ReductionError) Unwrap() error { return e.Err }

// EffectError reports a failed or cancelled effect task. No follow-up action
// was dispatched; an interim notification already published stays valid.
type EffectError struct {
	Err error
}

func (e *EffectError) Error() string {
	return fmt.Sprintf("effect: %v", e.Err)
}

func (e *EffectError) Unwrap() error { return e.Err }
