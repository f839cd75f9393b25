package dispatch

import (
	"context"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// --- common interface ---

type workerDispatcher[T any] interface {
	channelOf(msg T) chan T
	channels() []chan T
}

// --- single queue ---

type singleQueue[T any] struct {
	effectCh chan T
}

func (q singleQueue[T]) channelOf(_ T) chan T {
	return q.effectCh
}

func (q singleQueue[T]) channels() []chan T {
	return []chan T{q.effectCh}
}

// --- partitioned queue ---

type partitionedQueue[T Partitionable] struct {
	effectChs []chan T
}

func (pq partitionedQueue[T]) channelOf(msg T) chan T {
	return pq.effectChs[indexByHash(msg.PartitionKey(), len(pq.effectChs))]
}

func (pq partitionedQueue[T]) channels() []chan T {
	return pq.effectChs
}

func newWorkerDispatcher[T Partitionable](
	ctx context.Context,
	workers *sync.WaitGroup,
	config Config,
	handleFn func(context.Context, T),
	drain func(T),
) workerDispatcher[T] {
	channels := make([]chan T, config.NumWorkers)
	for i := range channels {
		channels[i] = make(chan T, config.BufferSize)
	}
	startWorkers(ctx, workers, channels, handleFn, drain)

	if len(channels) == 1 {
		return singleQueue[T]{effectCh: channels[0]}
	}
	return partitionedQueue[T]{effectChs: channels}
}

// startWorkers runs one goroutine per channel and returns once all of them are running.
// A message received after ctx is done goes to drain instead of handleFn.
func startWorkers[T any](
	ctx context.Context,
	workers *sync.WaitGroup,
	channels []chan T,
	handleFn func(context.Context, T),
	drain func(T),
) {
	ready := sync.WaitGroup{}
	for _, ch := range channels {
		workers.Add(1)
		ready.Add(1)
		go func(ch chan T) {
			defer workers.Done()
			ready.Done()
			for {
				select {
				case msg := <-ch:
					if ctx.Err() != nil {
						drain(msg)
						return
					}
					handleFn(ctx, msg)
				case <-ctx.Done():
					return
				}
			}
		}(ch)
	}
	ready.Wait()
}

func indexByHash(key string, numChs int) int {
	switch numChs {
	case 0:
		panic("number of channels cannot be 0")
	case 1:
		return 0
	default:
		return int(xxhash.Sum64String(key) % uint64(numChs))
	}
}
