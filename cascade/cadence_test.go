package cascade

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectPriority(t *testing.T) {
	tests := []struct {
		step int
		want Cadence
	}{
		{1, Hourly},
		{2, Hourly},
		{3, ThreeHourly},
		{6, SixHourly},
		{7, Hourly},
		{9, ThreeHourly},
		{12, SixHourly},
		{18, SixHourly},
		{24, Daily},
		{48, Daily},
		{90, SixHourly},
		{93, ThreeHourly},
		{96, Daily},
		{150, SixHourly},
		{240, Daily},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Select(tt.step), "step %d", tt.step)
	}
}

func TestSelectIsLargestDivisor(t *testing.T) {
	for step := 1; step <= 240; step++ {
		got := Select(step)
		for _, c := range Cadences {
			if step%int(c) == 0 {
				assert.Equal(t, c, got, "step %d", step)
				break
			}
		}
	}
}
