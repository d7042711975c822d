package runner

import (
	"fmt"
	"io"
	"os"
	"time"

	vsConfig "github.com/meteocima/virtual-server/config"
	"github.com/meteocima/virtual-server/ctx"
	"github.com/meteocima/virtual-server/vpath"
	"github.com/parro-it/fileargs"

	"github.com/meteocima/pangu-runner/archive"
	"github.com/meteocima/pangu-runner/assets"
	"github.com/meteocima/pangu-runner/cascade"
	"github.com/meteocima/pangu-runner/conf"
	"github.com/meteocima/pangu-runner/fields"
	"github.com/meteocima/pangu-runner/folders"
	"github.com/meteocima/pangu-runner/inference"
	"github.com/meteocima/pangu-runner/pangu"
)

// Init initializes the system by reading configuration
// from `cfgFile`.
func Init(cfgFile, workdir vpath.VirtualPath) error {
	folders.Root = workdir

	err := vsConfig.Init(cfgFile.Path)
	if err != nil {
		return err
	}

	err = conf.Init(cfgFile)
	if err != nil {
		return err
	}

	folders.Cfg = conf.Config.Folders
	return nil
}

// CheckArtifacts verifies, before anything else runs, that the model
// artifact of every cadence exists. A single missing artifact aborts
// the whole run: the models are provisioned externally and a retry
// cannot make one appear.
func CheckArtifacts(vs *ctx.Context) {
	if vs.Err != nil {
		return
	}
	for _, c := range cascade.Cadences {
		artifact := folders.Artifact(c)
		if err := inference.CheckArtifact(artifact.Path); err != nil {
			vs.Err = fmt.Errorf("%s model: %w", c, err)
			return
		}
	}
}

// Run executes one forecast per period: the period start selects the
// analysis archive, the period duration is the lead time in Uniform
// mode. The run is strictly sequential and aborts on the first error.
func Run(periods []*fileargs.Period, workdir vpath.VirtualPath, mode conf.LeadTimeMode,
	logWriter io.Writer, detailLogWriter io.Writer,
) error {
	vs := ctx.New(os.Stdin, logWriter, detailLogWriter)

	if !vs.Exists(workdir) {
		return fmt.Errorf("directory not found: %s", workdir.String())
	}

	if conf.Config.Download.Enabled {
		assets.EnsureArtifacts(vs, conf.Config.Download.URL, conf.Config.Folders.AssetsDir, assets.DefaultFetchStrategy)
	}

	CheckArtifacts(vs)
	if vs.Err != nil {
		return vs.Err
	}

	opts := inference.Options{
		Threads: conf.Config.Session.Threads,
		Library: conf.Config.Session.OnnxLibrary,
	}
	if err := inference.Setup(opts); err != nil {
		return err
	}
	defer inference.Teardown()

	runners, closeRunners, err := loadRunners(vs, opts)
	if err != nil {
		return err
	}
	defer closeRunners()

	for _, period := range periods {
		start := period.Start
		lead := int(period.Duration.Hours())
		vs.LogInfo("STARTING RUN FOR DATE %s, with a lead time of %d hours (%s)", start.Format("2006010215"), lead, mode)
		RunForecast(vs, runners, start, mode, lead)
		if vs.Err != nil {
			break
		}
		vs.LogInfo("RUN FOR DATE %s COMPLETED", start.Format("2006010215"))
	}

	return vs.Err
}

func loadRunners(vs *ctx.Context, opts inference.Options) (map[cascade.Cadence]cascade.Runner, func(), error) {
	runners := map[cascade.Cadence]cascade.Runner{}
	var sessions []*inference.Session

	closeAll := func() {
		for _, s := range sessions {
			s.Close()
		}
	}

	for _, c := range cascade.Cadences {
		artifact := folders.Artifact(c)
		vs.LogInfo("loading %s", artifact.String())
		loadStart := time.Now()
		session, err := inference.NewSession(artifact.Path, opts)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		vs.LogInfo("loaded %s model in %s", c, time.Since(loadStart).Round(time.Millisecond))
		sessions = append(sessions, session)
		runners[c] = session
	}
	return runners, closeAll, nil
}

// RunForecast drives the cascade for a single date: it seeds the four
// buffer pairs from the analysis, walks the step sequence, and writes
// every output layer to the forecast archive. Errors land in vs.Err.
func RunForecast(vs *ctx.Context, runners map[cascade.Cadence]cascade.Runner,
	start time.Time, mode conf.LeadTimeMode, leadHours int,
) {
	if vs.Err != nil {
		return
	}

	seq, err := stepsFor(mode, leadHours)
	if err != nil {
		vs.Err = err
		return
	}

	initial, plOrder, sfcOrder, err := readAnalysis(folders.AnalysisFile(start).Path)
	if err != nil {
		vs.Err = err
		return
	}

	sched, err := cascade.New(runners, initial)
	if err != nil {
		vs.Err = err
		return
	}

	outFile := folders.OutputFile(start, mode)
	out, err := archive.Create(outFile.Path, pangu.GridLat, pangu.GridLon)
	if err != nil {
		vs.Err = err
		return
	}

	drive(vs, sched, seq, plOrder, sfcOrder, out)

	if err := out.Close(); err != nil && vs.Err == nil {
		vs.Err = err
	}
	if vs.Err == nil {
		vs.LogInfo("forecast archive written to %s", outFile.String())
	}
}

// drive walks the step sequence once: for every step it runs the
// scheduler, reassembles both output tensors into the writer, and
// reports progress. It stops at the first error; a step either fully
// completes or the run is over.
func drive(vs *ctx.Context, sched *cascade.Scheduler, seq *cascade.Sequence,
	plOrder, sfcOrder fields.Ordering, out fields.Writer,
) {
	if vs.Err != nil {
		return
	}

	stepper := StartProgress(vs, seq.Granularity(), seq.Len())
	defer stepper.Done()

	num := 0
	for {
		step, ok := seq.Next()
		if !ok {
			break
		}
		pair, err := sched.Step(step)
		if err != nil {
			vs.Err = err
			return
		}
		if err := fields.WriteTensor(out, pair.Pressure, plOrder, step); err != nil {
			vs.Err = err
			return
		}
		if err := fields.WriteTensor(out, pair.Surface, sfcOrder, step); err != nil {
			vs.Err = err
			return
		}
		stepper.Step(num, step)
		num++
	}
}

// stepsFor builds the step sequence for the configured policy. In HRES
// mode the forecast length is fixed and leadHours is ignored.
func stepsFor(mode conf.LeadTimeMode, leadHours int) (*cascade.Sequence, error) {
	if mode == conf.HRES {
		return cascade.HRES(), nil
	}
	return cascade.Uniform(leadHours)
}

// readAnalysis loads the initial conditions and captures the layer
// orderings reused for every subsequent output step.
func readAnalysis(path string) (cascade.BufferPair, fields.Ordering, fields.Ordering, error) {
	none := cascade.BufferPair{}

	src, err := archive.Open(path)
	if err != nil {
		return none, nil, nil, fmt.Errorf("cannot read analysis: %w", err)
	}

	plOrder, err := src.Select(pangu.PressureParams, pangu.PressureLevels)
	if err != nil {
		return none, nil, nil, err
	}
	sfcOrder, err := src.Select(pangu.SurfaceParams, nil)
	if err != nil {
		return none, nil, nil, err
	}

	pl, err := src.Materialize(plOrder)
	if err != nil {
		return none, nil, nil, err
	}
	if err := pl.CheckShape(pangu.PressureShape()); err != nil {
		return none, nil, nil, fmt.Errorf("analysis pressure fields: %w", err)
	}

	sfc, err := src.Materialize(sfcOrder)
	if err != nil {
		return none, nil, nil, err
	}
	if err := sfc.CheckShape(pangu.SurfaceShape()); err != nil {
		return none, nil, nil, fmt.Errorf("analysis surface fields: %w", err)
	}

	return cascade.BufferPair{Pressure: pl, Surface: sfc}, plOrder, sfcOrder, nil
}
