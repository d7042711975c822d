// Package assets fetches the Pangu-Weather model artifacts from their
// repository when they are not already provisioned locally.
package assets

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/meteocima/virtual-server/ctx"
	"github.com/meteocima/virtual-server/vpath"

	"github.com/meteocima/pangu-runner/cascade"
	"github.com/meteocima/pangu-runner/pangu"
)

// FetchStrategy describes how hard to try when downloading an artifact.
type FetchStrategy struct {
	MaximumRetries int
	RetrySleep     time.Duration
	FetchTimeout   time.Duration
}

// DefaultFetchStrategy is tuned for the multi-hundred-megabyte ONNX
// artifacts served by the ECMWF repository.
var DefaultFetchStrategy = FetchStrategy{
	MaximumRetries: 5,
	RetrySleep:     30 * time.Second,
	FetchTimeout:   30 * time.Minute,
}

// Fetch downloads rawurl to dest, retrying per the strategy. The file
// appears at dest only after a complete download; partial downloads are
// kept under a .part name and overwritten on retry.
func Fetch(rawurl, dest string, strategy FetchStrategy) error {
	client := &http.Client{Timeout: strategy.FetchTimeout}

	var err error
	for attempt := 0; attempt <= strategy.MaximumRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(strategy.RetrySleep)
		}
		if err = fetchOnce(client, rawurl, dest); err == nil {
			return nil
		}
	}
	return fmt.Errorf("download of %s failed after %d retries: %w", rawurl, strategy.MaximumRetries, err)
}

func fetchOnce(client *http.Client, rawurl, dest string) error {
	resp, err := client.Get(rawurl)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP error when fetching artifact: %d", resp.StatusCode)
	}

	part := dest + ".part"
	f, err := os.Create(part)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(part)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(part)
		return err
	}
	return os.Rename(part, dest)
}

// EnsureArtifacts downloads every model artifact missing from dir,
// resolving names against the repository URL template. Artifacts
// already present are left untouched.
func EnsureArtifacts(vs *ctx.Context, tmplURL string, dir vpath.VirtualPath, strategy FetchStrategy) {
	if vs.Err != nil {
		return
	}
	for _, c := range cascade.Cadences {
		artifact := dir.Join(pangu.ArtifactFile(c))
		if vs.Exists(artifact) {
			continue
		}
		url := pangu.ArtifactURL(tmplURL, c)
		vs.LogInfo("downloading %s model artifact from %s", c, url)
		if err := Fetch(url, artifact.Path, strategy); err != nil {
			vs.Err = err
			return
		}
		vs.LogInfo("download done")
	}
}
