// Package cascade implements the multi-resolution step scheduler that
// drives the four Pangu-Weather models: cadence selection, the rolling
// buffer state with its superseding rule, and the step sequences.
package cascade

import "fmt"

// Cadence is the fixed forecast-hour increment a model predicts per
// invocation.
type Cadence int

const (
	Hourly      Cadence = 1
	ThreeHourly Cadence = 3
	SixHourly   Cadence = 6
	Daily       Cadence = 24
)

// Cadences lists all cadences from coarsest to finest. Selection and
// propagation both depend on this order.
var Cadences = []Cadence{Daily, SixHourly, ThreeHourly, Hourly}

func (c Cadence) String() string {
	return fmt.Sprintf("%dh", int(c))
}

// Select returns the cadence scheduled at a forecast step. Divisibility
// is checked from coarsest to finest and the first match wins: step 12
// selects the 6h model, never the 3h one. The step must be positive;
// step 0 is the initial condition and is never scheduled.
func Select(step int) Cadence {
	for _, c := range Cadences {
		if step%int(c) == 0 {
			return c
		}
	}
	return Hourly
}
