package cascade

import "github.com/meteocima/pangu-runner/fields"

// BufferPair is the rolling input of one cadence: the atmospheric state
// as of the most recent step at which that cadence, or a coarser one
// superseding it, last executed.
type BufferPair struct {
	Pressure *fields.Tensor
	Surface  *fields.Tensor
}

// State maps every cadence to its current buffer pair.
type State map[Cadence]BufferPair

// NewState seeds all four buffer pairs with the same initial pair. The
// pairs alias the initial tensors; propagation replaces pairs wholesale
// and never mutates tensor data in place.
func NewState(initial BufferPair) State {
	s := make(State, len(Cadences))
	for _, c := range Cadences {
		s[c] = initial
	}
	return s
}

// Propagate returns the state after cadence ran produced out: the
// output replaces the buffer pair of every finer-or-equal cadence.
// Running the 24h model overwrites all four pairs; running the 1h
// model overwrites only its own. A coarser model's state is
// authoritative and finer models resume from it instead of drifting.
func (s State) Propagate(ran Cadence, out BufferPair) State {
	next := make(State, len(s))
	for c, pair := range s {
		if c <= ran {
			next[c] = out
		} else {
			next[c] = pair
		}
	}
	return next
}
