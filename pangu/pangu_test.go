package pangu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meteocima/pangu-runner/cascade"
)

func TestShapes(t *testing.T) {
	assert.Equal(t, []int{5, 13, 721, 1440}, PressureShape())
	assert.Equal(t, []int{4, 721, 1440}, SurfaceShape())
}

func TestArtifactNaming(t *testing.T) {
	assert.Equal(t, "pangu_weather_24.onnx", ArtifactFile(cascade.Daily))
	assert.Equal(t, "pangu_weather_1.onnx", ArtifactFile(cascade.Hourly))

	url := ArtifactURL(DownloadURL, cascade.SixHourly)
	assert.Equal(t, "https://get.ecmwf.int/repository/test-data/ai-models/pangu-weather/pangu_weather_6.onnx", url)
}
