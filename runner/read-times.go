package runner

import (
	"os"

	"github.com/parro-it/fileargs"
)

// ReadTimes reads the run dates and lead times from an arguments file.
func ReadTimes(file string) (*fileargs.FileArguments, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	fsys := os.DirFS(cwd)
	return fileargs.ReadFile(fsys, file)
}
