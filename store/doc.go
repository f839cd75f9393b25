// Package store provides a unidirectional state container for Go.
//
// A Store owns exactly one Logic. The Logic owns the state and is the only
// place where it changes. Everything else asks for a change by sending an
// action, and learns about changes by subscribing to notifications.
//
// # How does a send flow?
//
//	caller ─▶ Send(action) ─▶ middleware chain ─▶ Logic.Reduce ─▶ Effect
//	                                                              │
//	        handlers ◀─ StateChangedInfo ◀─ diff(previous) ◀──────┘
//
//   - Middleware run in registration order; each sees the previous one's output.
//   - Reduce mutates the state and may return an Effect: asynchronous work,
//     described as data, that may yield a follow-up action.
//   - An Effect flagged DispatchChanged publishes the already-reduced state
//     before its task is awaited.
//   - A follow-up action is fed back through the same pipeline. The chain is
//     walked with a loop, so long chains do not grow the stack.
//   - A notification is published only when State.Diff against the last
//     published snapshot is non-empty.
//
// # Concurrency
//
// Send is meant to be driven by one logical caller at a time. Hosts with
// several producers either serialize themselves or use Enqueue, which runs
// sends one by one on an Executor. Stores sharing an Executor stay
// independent: each store is pinned to one worker.
//
// Effect tasks receive the context given to Send. Cancelling it aborts a
// delayed effect; no follow-up action is dispatched after cancellation.
//
// # Logging
//
// The store reports its activity through the log effect of
// github.com/on-the-ground/composable_go/log when a handler is installed in
// the context passed to Send.
//
// Example:
//
//	s := store.New[*Counter, CounterChange, Action](func() store.Logic[*Counter, Action] {
//	    return NewCounterLogic()
//	})
//	defer s.Dispose()
//
//	sub := s.AddHandler(func(info store.StateChangedInfo[*Counter, CounterChange]) {
//	    render(info.Current)
//	})
//	defer sub.Dispose()
//
//	err := s.Send(ctx, Increment{By: 1})
package store
