package store_test

import (
	"context"
	"slices"
	"sync"

	"github.com/on-the-ground/composable_go/store"
)

// counter is the state used throughout the store tests.
type counter struct {
	Count   int
	Label   string
	History []int
}

type change struct {
	Field string
	From  any
	To    any
}

func (c *counter) Diff(previous *counter) []change {
	var changes []change
	if c.Count != previous.Count {
		changes = append(changes, change{Field: "count", From: previous.Count, To: c.Count})
	}
	if c.Label != previous.Label {
		changes = append(changes, change{Field: "label", From: previous.Label, To: c.Label})
	}
	if !slices.Equal(c.History, previous.History) {
		changes = append(changes, change{Field: "history", From: previous.History, To: c.History})
	}
	return changes
}

func (c *counter) Copy() *counter {
	return &counter{
		Count:   c.Count,
		Label:   c.Label,
		History: slices.Clone(c.History),
	}
}

type action interface {
	isAction()
}

type increment struct{ by int }

type setLabel struct{ label string }

type nothing struct{}

// withEffect applies inner and returns effect.
type withEffect struct {
	inner  action
	effect *store.Effect[action]
}

// countdown increments and follows up with countdown{n-1} until n reaches zero.
type countdown struct{ n int }

type failing struct {
	err    error
	mutate bool
}

func (increment) isAction()  {}
func (setLabel) isAction()   {}
func (nothing) isAction()    {}
func (withEffect) isAction() {}
func (countdown) isAction()  {}
func (failing) isAction()    {}

type fakeLogic struct {
	mu       sync.Mutex
	state    *counter
	reduced  []action
	disposed int
}

func newFakeLogic() *fakeLogic {
	return &fakeLogic{state: &counter{}}
}

func (l *fakeLogic) State() *counter {
	return l.state
}

func (l *fakeLogic) Reduce(_ context.Context, a action) (*store.Effect[action], error) {
	l.mu.Lock()
	l.reduced = append(l.reduced, a)
	l.mu.Unlock()

	switch a := a.(type) {
	case withEffect:
		l.apply(a.inner)
		return a.effect, nil
	case countdown:
		l.state.Count++
		if a.n <= 1 {
			return nil, nil
		}
		return store.NewEffect[action](countdown{n: a.n - 1}), nil
	case failing:
		if a.mutate {
			l.state.Count++
		}
		return nil, a.err
	default:
		l.apply(a)
		return nil, nil
	}
}

func (l *fakeLogic) apply(a action) {
	switch a := a.(type) {
	case increment:
		l.state.Count += a.by
		l.state.History = append(l.state.History, l.state.Count)
	case setLabel:
		l.state.Label = a.label
	}
}

func (l *fakeLogic) Dispose() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.disposed++
}

func (l *fakeLogic) reducedActions() []action {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.reduced)
}

type counterStore = store.Store[*counter, change, action]

type counterInfo = store.StateChangedInfo[*counter, change]

func newCounterStore(opts ...store.Option[*counter, action]) (*counterStore, *fakeLogic) {
	logic := newFakeLogic()
	s := store.New[*counter, change, action](func() store.Logic[*counter, action] {
		return logic
	}, opts...)
	return s, logic
}

// recorder collects notifications; safe for handlers called from other goroutines.
type recorder struct {
	mu    sync.Mutex
	infos []counterInfo
}

func (r *recorder) handle(info counterInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.infos = append(r.infos, info)
}

func (r *recorder) all() []counterInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.infos)
}
