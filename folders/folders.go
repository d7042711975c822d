package folders

import (
	"time"

	"github.com/meteocima/virtual-server/vpath"

	"github.com/meteocima/pangu-runner/cascade"
	"github.com/meteocima/pangu-runner/conf"
	"github.com/meteocima/pangu-runner/pangu"
)

var Root vpath.VirtualPath
var Cfg conf.FoldersConf

// Artifact returns the path of the ONNX model artifact for one cadence.
func Artifact(c cascade.Cadence) vpath.VirtualPath {
	return Cfg.AssetsDir.Join(pangu.ArtifactFile(c))
}

// AnalysisFile returns the analysis archive holding the initial
// conditions for a run date.
func AnalysisFile(startDate time.Time) vpath.VirtualPath {
	return Cfg.AnalysisDir.Join("analysis.%s.fcst", startDate.Format("2006010215"))
}

// OutputFile returns the forecast archive written by a run.
func OutputFile(startDate time.Time, mode conf.LeadTimeMode) vpath.VirtualPath {
	return Cfg.OutputDir.Join("pangu.%s.%s.fcst", startDate.Format("2006010215"), mode)
}

// WorkdirForDate returns the per-date working directory under Root.
func WorkdirForDate(startDate time.Time) vpath.VirtualPath {
	return Root.Join(startDate.Format("20060102"))
}
