package store

import (
	"time"

	"github.com/on-the-ground/composable_go/shared/timebound"
)

var _ timebound.TimeBounded = StateChangedInfo[any, any]{}

// StateChangedInfo is one published notification.
// Previous and Current are snapshots; Changes is the Diff result, untouched.
type StateChangedInfo[S any, C any] struct {
	Timestamp int64 // milliseconds since the Unix epoch
	Previous  S
	Current   S
	Changes   []C

	span timebound.TimeSpan
}

func newStateChangedInfo[S any, C any](previous, current S, changes []C) StateChangedInfo[S, C] {
	now := time.Now()
	return StateChangedInfo[S, C]{
		Timestamp: now.UnixMilli(),
		Previous:  previous,
		Current:   current,
		Changes:   changes,
		span:      timebound.At(now),
	}
}

// TimeSpan brackets the moment the notification was built.
func (i StateChangedInfo[S, C]) TimeSpan() timebound.TimeSpan {
	return i.span
}
