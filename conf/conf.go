package conf

// This module contains data structures
// used to keep configuration variables
// for the command.

import (
	"path"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
	"github.com/meteocima/virtual-server/vpath"

	"github.com/meteocima/pangu-runner/pangu"
)

// FoldersConf contains path of all
// files and directories somehow needed by the command
type FoldersConf struct {
	// AssetsDir holds the four pangu_weather_*.onnx artifacts.
	AssetsDir vpath.VirtualPath

	// AnalysisDir holds one analysis archive per run date.
	AnalysisDir vpath.VirtualPath

	// OutputDir receives one forecast archive per run date.
	OutputDir vpath.VirtualPath
}

// SessionConf sizes the inference engine. Values can be overridden
// from the environment with the PANGU prefix, e.g. PANGU_THREADS.
type SessionConf struct {
	// Threads is the intra-op thread count of each ONNX session.
	Threads int `envconfig:"THREADS"`

	// OnnxLibrary optionally points at the onnxruntime shared
	// library when it is not on the default search path.
	OnnxLibrary string `envconfig:"ONNX_LIBRARY"`
}

// DownloadConf controls acquisition of missing model artifacts.
type DownloadConf struct {
	Enabled bool
	URL     string
}

// Configuration contains all configuration
// sub structures
type Configuration struct {
	Folders  FoldersConf
	Session  SessionConf
	Download DownloadConf
}

// Config is the runtime configuration readed from file.
var Config Configuration

// Init initializes the system by reading configuration
// from `confPath` file.
func Init(confFile vpath.VirtualPath) error {
	Config = Configuration{}

	_, err := toml.DecodeFile(confFile.Path, &Config)
	if err != nil {
		return err
	}
	confDir := confFile.Dir()

	if !path.IsAbs(Config.Folders.AssetsDir.Path) {
		Config.Folders.AssetsDir = confDir.JoinP(Config.Folders.AssetsDir)
	}

	if !path.IsAbs(Config.Folders.AnalysisDir.Path) {
		Config.Folders.AnalysisDir = confDir.JoinP(Config.Folders.AnalysisDir)
	}

	if !path.IsAbs(Config.Folders.OutputDir.Path) {
		Config.Folders.OutputDir = confDir.JoinP(Config.Folders.OutputDir)
	}

	if err := envconfig.Process("pangu", &Config.Session); err != nil {
		return err
	}

	if Config.Session.Threads <= 0 {
		Config.Session.Threads = 1
	}

	if Config.Download.URL == "" {
		Config.Download.URL = pangu.DownloadURL
	}

	return nil
}
