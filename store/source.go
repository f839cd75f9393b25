package store

import (
	"context"
	"sync"

	"github.com/on-the-ground/composable_go/log"
)

// Source exposes notifications as a channel holding up to bufferSize entries.
//
// Publishing never waits for the reader: a notification arriving while the
// buffer is full is dropped and logged. The channel is closed, and the
// underlying handler removed, once ctx is done.
func (s *Store[S, C, A]) Source(ctx context.Context, bufferSize int) <-chan StateChangedInfo[S, C] {
	sink := make(chan StateChangedInfo[S, C], max(bufferSize, 0))

	var mu sync.Mutex
	closed := false

	sub := s.handlers.add(func(info StateChangedInfo[S, C]) {
		mu.Lock()
		defer mu.Unlock()

		if closed {
			return
		}
		select {
		case sink <- info:
		default:
			log.Effect(ctx, log.LogWarn, "source buffer full, dropped a notification", map[string]interface{}{
				"store":     s.id,
				"timestamp": info.Timestamp,
			})
		}
	})

	go func() {
		<-ctx.Done()
		sub.Dispose()

		mu.Lock()
		closed = true
		close(sink)
		mu.Unlock()
	}()

	return sink
}
