package cascade

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func drain(s *Sequence) []int {
	var steps []int
	for {
		step, ok := s.Next()
		if !ok {
			return steps
		}
		steps = append(steps, step)
	}
}

func TestHRESSequence(t *testing.T) {
	var want []int
	for s := 1; s <= 90; s++ {
		want = append(want, s)
	}
	for s := 93; s <= 144; s += 3 {
		want = append(want, s)
	}
	for s := 150; s <= 240; s += 6 {
		want = append(want, s)
	}

	seq := HRES()
	assert.Equal(t, 124, seq.Len())
	assert.Equal(t, 1, seq.Granularity())

	got := drain(seq)
	assert.Equal(t, want, got)
	assert.Equal(t, 1, got[0])
	assert.Equal(t, 240, got[len(got)-1])
	assert.Contains(t, got, 93)
}

func TestSequencesAreStrictlyIncreasingAndSkipZero(t *testing.T) {
	seqs := []*Sequence{HRES()}
	uni, err := Uniform(48)
	assert.NoError(t, err)
	seqs = append(seqs, uni)

	for _, seq := range seqs {
		prev := 0
		for _, step := range drain(seq) {
			assert.Greater(t, step, prev)
			prev = step
		}
	}
}

func TestSequenceIsNotRestartable(t *testing.T) {
	seq, err := Uniform(18)
	assert.NoError(t, err)
	assert.Equal(t, []int{6, 12, 18}, drain(seq))

	_, ok := seq.Next()
	assert.False(t, ok)
}

func TestUniformSequence(t *testing.T) {
	seq, err := Uniform(24)
	assert.NoError(t, err)
	assert.Equal(t, 4, seq.Len())
	assert.Equal(t, 6, seq.Granularity())
	assert.Equal(t, []int{6, 12, 18, 24}, drain(seq))
}

func TestUniformRejectsBadLeadTimes(t *testing.T) {
	for _, lead := range []int{-6, 0, 5, 20, 121} {
		_, err := Uniform(lead)
		assert.Error(t, err, "lead %d", lead)
	}
}
