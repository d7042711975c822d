// Package fcsttasks wraps forecast runs as virtual-server tasks, so an
// orchestrator can schedule one task per run date.
package fcsttasks

import (
	"fmt"
	"time"

	"github.com/meteocima/virtual-server/ctx"
	"github.com/meteocima/virtual-server/tasks"

	"github.com/meteocima/pangu-runner/cascade"
	"github.com/meteocima/pangu-runner/conf"
	"github.com/meteocima/pangu-runner/folders"
	"github.com/meteocima/pangu-runner/runner"
)

// NewForecastTask builds the task that runs one forecast date with
// already loaded model runners.
func NewForecastTask(runners map[cascade.Cadence]cascade.Runner, startDate time.Time, mode conf.LeadTimeMode, leadHours int) *tasks.Task {
	dtPart := startDate.Format("2006010215")

	tskID := fmt.Sprintf("PANGU-%s", dtPart)
	tsk := tasks.New(tskID, func(vs *ctx.Context) error {
		analysis := folders.AnalysisFile(startDate)
		if !vs.Exists(analysis) {
			return fmt.Errorf("no analysis found for date %s: %s", dtPart, analysis.String())
		}

		runner.RunForecast(vs, runners, startDate, mode, leadHours)
		return vs.Err
	})
	tsk.Description = fmt.Sprintf("Pangu-Weather %s forecast for date %s", mode, dtPart)
	return tsk
}
