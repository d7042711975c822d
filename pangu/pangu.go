// Package pangu holds the fixed tables of the Pangu-Weather models:
// which variables and levels they consume, the grid they run on, and
// where their ONNX artifacts live.
package pangu

import (
	"fmt"
	"strings"

	"github.com/meteocima/pangu-runner/cascade"
)

// PressureParams are the pressure-level variables, in model axis order.
var PressureParams = []string{"z", "q", "t", "u", "v"}

// PressureLevels are the pressure levels in hPa, in model axis order.
var PressureLevels = []int{1000, 925, 850, 700, 600, 500, 400, 300, 250, 200, 150, 100, 50}

// SurfaceParams are the surface variables, in model axis order.
var SurfaceParams = []string{"msl", "10u", "10v", "2t"}

// Grid extents of the 0.25 degrees global grid.
const (
	GridLat = 721
	GridLon = 1440
)

// PressureShape returns the expected shape of a pressure-level tensor.
func PressureShape() []int {
	return []int{len(PressureParams), len(PressureLevels), GridLat, GridLon}
}

// SurfaceShape returns the expected shape of a surface tensor.
func SurfaceShape() []int {
	return []int{len(SurfaceParams), GridLat, GridLon}
}

// DownloadURL is the artifact repository URL template. The `{file}`
// placeholder is replaced with one of the ArtifactFile names.
const DownloadURL = "https://get.ecmwf.int/repository/test-data/ai-models/pangu-weather/{file}"

// ArtifactFile returns the ONNX file name for one cadence.
func ArtifactFile(c cascade.Cadence) string {
	return fmt.Sprintf("pangu_weather_%d.onnx", int(c))
}

// ArtifactURL resolves DownloadURL-style templates for one cadence.
func ArtifactURL(tmplURL string, c cascade.Cadence) string {
	return strings.ReplaceAll(tmplURL, "{file}", ArtifactFile(c))
}
