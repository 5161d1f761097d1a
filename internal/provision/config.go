// Package provision models the environment build as an explicit ordered
// pipeline of stages executed by a fail-fast sequencer.
package provision

// Config is the immutable provisioning input. It is fixed before the
// sequencer starts and threaded through every stage; stages never write
// to it.
type Config struct {
	// BaseImage is the OS snapshot the build layers on top of.
	BaseImage string

	// Fixed artifact URLs.
	MinicondaURL   string
	JuicerToolsURL string
	AppArchiveURL  string

	// CondaPrefix is where the Python distribution lands inside the image.
	CondaPrefix string

	// Locale is applied to both LC_ALL and LANG.
	Locale string

	// WorkDir and Shell are the runtime defaults of the produced image.
	WorkDir string
	Shell   []string
}

// DefaultConfig reproduces the environment the published DLO-HiC-Tools
// image was built from.
func DefaultConfig() Config {
	return Config{
		BaseImage:      "ubuntu:16.04",
		MinicondaURL:   "https://repo.continuum.io/miniconda/Miniconda3-latest-Linux-x86_64.sh",
		JuicerToolsURL: "https://hicfiles.tc4ga.com/public/juicer/juicer_tools.1.8.9_jcuda.0.8.jar",
		AppArchiveURL:  "https://github.com/GangCaoLab/DLO-HiC-Tools/archive/master.tar.gz",
		CondaPrefix:    "/opt/conda",
		Locale:         "C.UTF-8",
		WorkDir:        "/data",
		Shell:          []string{"/bin/bash"},
	}
}
