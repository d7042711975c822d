package cascade

import (
	"fmt"

	"github.com/meteocima/pangu-runner/fields"
)

// Runner is one forecasting model: given the pressure-level and surface
// input tensors it returns output tensors of the same shapes, one
// cadence further in time. Implemented by inference.Session.
type Runner interface {
	Infer(pl, sfc *fields.Tensor) (*fields.Tensor, *fields.Tensor, error)
}

// Scheduler owns the four rolling buffer pairs and, for every step,
// picks the model to invoke and propagates its output. Steps must be
// fed in strictly increasing order: each step's input depends on the
// previous step's propagated state.
type Scheduler struct {
	state   State
	runners map[Cadence]Runner
}

// New builds a scheduler with all four buffer pairs seeded from the
// initial conditions. A runner must be present for every cadence.
func New(runners map[Cadence]Runner, initial BufferPair) (*Scheduler, error) {
	for _, c := range Cadences {
		if runners[c] == nil {
			return nil, fmt.Errorf("no model runner for cadence %s", c)
		}
	}
	return &Scheduler{
		state:   NewState(initial),
		runners: runners,
	}, nil
}

// Step runs the model scheduled at the given forecast step on that
// cadence's buffer pair, propagates the output per the superseding
// rule, and returns it. Any error is fatal for the run; no partial
// step is salvaged.
func (s *Scheduler) Step(step int) (BufferPair, error) {
	if step <= 0 {
		return BufferPair{}, fmt.Errorf("step %d is not schedulable", step)
	}
	c := Select(step)
	in := s.state[c]

	pl, sfc, err := s.runners[c].Infer(in.Pressure, in.Surface)
	if err != nil {
		return BufferPair{}, fmt.Errorf("inference failed at step %d (%s model): %w", step, c, err)
	}

	out := BufferPair{Pressure: pl, Surface: sfc}
	if !pl.ShapeEquals(in.Pressure.Shape) || !sfc.ShapeEquals(in.Surface.Shape) {
		return BufferPair{}, &ShapeError{
			Cadence:      c,
			Step:         step,
			WantPressure: in.Pressure.Shape, GotPressure: pl.Shape,
			WantSurface: in.Surface.Shape, GotSurface: sfc.Shape,
		}
	}

	s.state = s.state.Propagate(c, out)
	return out, nil
}

// Buffers exposes the current state. The returned map is a copy; the
// buffer pairs are not.
func (s *Scheduler) Buffers() State {
	out := make(State, len(s.state))
	for c, pair := range s.state {
		out[c] = pair
	}
	return out
}

// ShapeError reports a model output whose shape disagrees with its
// input. Propagation depends on exact shape continuity, so this aborts
// the run like any other inference failure but stays distinguishable.
type ShapeError struct {
	Cadence      Cadence
	Step         int
	WantPressure []int
	GotPressure  []int
	WantSurface  []int
	GotSurface   []int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf(
		"%s model returned mismatched shapes at step %d: pressure %v (want %v), surface %v (want %v)",
		e.Cadence, e.Step, e.GotPressure, e.WantPressure, e.GotSurface, e.WantSurface,
	)
}
