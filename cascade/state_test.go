package cascade

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meteocima/pangu-runner/fields"
)

func pair(fill float32) BufferPair {
	pl := fields.NewTensor(2, 3, 4, 5)
	sfc := fields.NewTensor(2, 4, 5)
	for i := range pl.Data {
		pl.Data[i] = fill
	}
	for i := range sfc.Data {
		sfc.Data[i] = fill
	}
	return BufferPair{Pressure: pl, Surface: sfc}
}

func TestNewStateSeedsAllCadences(t *testing.T) {
	initial := pair(1)
	s := NewState(initial)

	assert.Len(t, s, 4)
	for _, c := range Cadences {
		assert.Equal(t, initial, s[c], "cadence %s", c)
	}
}

func TestPropagateSupersedesFinerCadences(t *testing.T) {
	tests := []struct {
		ran        Cadence
		overwrites []Cadence
		keeps      []Cadence
	}{
		{Daily, []Cadence{Daily, SixHourly, ThreeHourly, Hourly}, nil},
		{SixHourly, []Cadence{SixHourly, ThreeHourly, Hourly}, []Cadence{Daily}},
		{ThreeHourly, []Cadence{ThreeHourly, Hourly}, []Cadence{Daily, SixHourly}},
		{Hourly, []Cadence{Hourly}, []Cadence{Daily, SixHourly, ThreeHourly}},
	}

	for _, tt := range tests {
		initial := pair(1)
		out := pair(2)
		next := NewState(initial).Propagate(tt.ran, out)

		for _, c := range tt.overwrites {
			assert.Equal(t, out, next[c], "after %s run, cadence %s", tt.ran, c)
		}
		for _, c := range tt.keeps {
			assert.Equal(t, initial, next[c], "after %s run, cadence %s", tt.ran, c)
		}
	}
}

func TestPropagateIsPure(t *testing.T) {
	initial := pair(1)
	s := NewState(initial)
	s.Propagate(Daily, pair(2))

	for _, c := range Cadences {
		assert.Equal(t, initial, s[c], "original state must be untouched")
	}
}
