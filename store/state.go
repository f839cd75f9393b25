package store

// State is the capability a state type must provide to live in a Store.
//
// Diff describes, in order, what changed between previous and the receiver.
// An empty result means nothing changed. Copy returns a snapshot sharing no
// mutable memory with the receiver.
type State[S any, C any] interface {
	Diff(previous S) []C
	Copy() S
}
