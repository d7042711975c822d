package runner

import (
	"time"

	"github.com/meteocima/virtual-server/ctx"
)

// Stepper reports forecast progress, one call per completed step. It is
// entered once per run with the cadence granularity of the step policy
// as a hint, and must be released on every exit path; Done is
// idempotent so it can sit in a defer.
type Stepper struct {
	vs          *ctx.Context
	granularity int
	total       int
	started     time.Time
	done        bool
}

// StartProgress enters a progress scope for one forecast run.
func StartProgress(vs *ctx.Context, granularity, total int) *Stepper {
	vs.LogInfo("running %d steps at %dh granularity", total, granularity)
	return &Stepper{
		vs:          vs,
		granularity: granularity,
		total:       total,
		started:     time.Now(),
	}
}

// Step records the completion of one forecast step. num is the
// zero-based sequence index, step the forecast hour.
func (p *Stepper) Step(num, step int) {
	p.vs.LogInfo("step %d/%d done: +%dh (%s elapsed)",
		num+1, p.total, step, time.Since(p.started).Round(time.Second))
}

// Done leaves the progress scope.
func (p *Stepper) Done() {
	if p.done {
		return
	}
	p.done = true
	p.vs.LogInfo("stepped through %d steps in %s", p.total, time.Since(p.started).Round(time.Second))
}
