package dispatch

import "errors"

// ErrClosed is returned for messages that reach a scope after it was closed.
var ErrClosed = errors.New("dispatch: scope is closed")

type Config struct {
	BufferSize int // default: 1
	NumWorkers int // default: 1
}

func NewConfig(bufferSize int, numWorkers int) Config {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	if numWorkers <= 0 {
		numWorkers = 1
	}
	return Config{
		BufferSize: bufferSize,
		NumWorkers: numWorkers,
	}
}

// Partitionable payloads are routed to a worker by their partition key.
// Payloads sharing a key are always handled by the same worker, in order.
type Partitionable interface {
	PartitionKey() string
}
