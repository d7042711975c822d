package cascade

import "fmt"

// span is a run of evenly spaced steps, first..last inclusive.
type span struct {
	first, last, stride int
}

// Sequence enumerates the forecast steps of one run, in strictly
// increasing order. It is finite and non-restartable; the lead-time
// driver consumes it exactly once.
type Sequence struct {
	spans       []span
	cur         int // index of the span being walked
	next        int // next step to emit within spans[cur]
	granularity int
}

// HRES is the high-resolution step policy of the original driver:
// hourly to 90h, then 3-hourly to 144h, then 6-hourly to 240h,
// 124 steps in total.
func HRES() *Sequence {
	return &Sequence{
		spans: []span{
			{1, 90, 1},
			{93, 144, 3},
			{150, 240, 6},
		},
		granularity: 1,
	}
}

// Uniform enumerates 6-hourly steps up to leadHours. The lead time must
// be a positive multiple of 6; anything else is rejected rather than
// silently truncated.
func Uniform(leadHours int) (*Sequence, error) {
	if leadHours <= 0 || leadHours%6 != 0 {
		return nil, fmt.Errorf("lead time must be a positive multiple of 6 hours, got %d", leadHours)
	}
	return &Sequence{
		spans:       []span{{6, leadHours, 6}},
		granularity: 6,
	}, nil
}

// Next returns the next step, or ok=false when the sequence is
// exhausted.
func (s *Sequence) Next() (step int, ok bool) {
	for s.cur < len(s.spans) {
		sp := s.spans[s.cur]
		if s.next < sp.first {
			s.next = sp.first
		}
		if s.next <= sp.last {
			step = s.next
			s.next += sp.stride
			return step, true
		}
		s.cur++
		s.next = 0
	}
	return 0, false
}

// Len is the total number of steps the sequence enumerates.
func (s *Sequence) Len() int {
	n := 0
	for _, sp := range s.spans {
		n += (sp.last-sp.first)/sp.stride + 1
	}
	return n
}

// Granularity is the progress-reporting hint for this policy: 1 for
// HRES, 6 for Uniform.
func (s *Sequence) Granularity() int {
	return s.granularity
}
