package conf

import (
	"path"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/meteocima/virtual-server/vpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(filePath string) string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		panic("cannot retrieve the source file path")
	} else {
		file = filepath.Dir(filepath.Dir(file))
	}

	return path.Join(file, "fixtures", filePath)
}

func TestInit(t *testing.T) {
	cfgFile := fixture("pangu-runner.cfg")
	require.NoError(t, Init(vpath.Local(cfgFile)))

	fixtureDir := filepath.Dir(cfgFile)
	assert.Equal(t, path.Join(fixtureDir, "assets"), Config.Folders.AssetsDir.Path)
	assert.Equal(t, path.Join(fixtureDir, "analysis"), Config.Folders.AnalysisDir.Path)
	assert.Equal(t, path.Join(fixtureDir, "output"), Config.Folders.OutputDir.Path)

	assert.Equal(t, 4, Config.Session.Threads)

	assert.False(t, Config.Download.Enabled)
	assert.Contains(t, Config.Download.URL, "{file}", "download URL defaults to the repository template")
}

func TestInitFailsOnMissingFile(t *testing.T) {
	err := Init(vpath.Local(fixture("no-such.cfg")))
	assert.Error(t, err)
}

func TestLeadTimeModeFromString(t *testing.T) {
	var m LeadTimeMode
	require.NoError(t, m.FromString("HRES"))
	assert.Equal(t, HRES, m)
	assert.Equal(t, "HRES", m.String())

	require.NoError(t, m.FromString("UNIFORM"))
	assert.Equal(t, Uniform, m)
	assert.Equal(t, "UNIFORM", m.String())

	assert.Error(t, m.FromString("hourly"))
}
