// Package stages assembles the concrete provisioning pipeline for the
// DLO-HiC-Tools analysis environment: nine stages, executed in strict
// order by the provision sequencer.
package stages

import (
	"github.com/0xa1bed0/dloenv/internal/manifest"
	"github.com/0xa1bed0/dloenv/internal/provision"
)

// Stage IDs in pipeline order.
const (
	StageBase      provision.StageID = "base"
	StageMirrors   provision.StageID = "mirrors"
	StagePackages  provision.StageID = "system-packages"
	StageArtifacts provision.StageID = "artifacts"
	StagePython    provision.StageID = "python-env"
	StageChannels  provision.StageID = "channels"
	StageDeps      provision.StageID = "dependencies"
	StageApp       provision.StageID = "application"
	StageRuntime   provision.StageID = "runtime-defaults"
)

// DefaultPipeline returns the full stage list. The manifest supplies
// optional version pins and artifact checksums; pass manifest.Empty()
// for a faithful unpinned build.
func DefaultPipeline(m *manifest.Manifest) []provision.Stage {
	if m == nil {
		m = manifest.Empty()
	}

	return []provision.Stage{
		Base(),
		Mirrors(),
		SystemPackages(),
		Artifacts(m),
		PythonEnv(),
		Channels(),
		Dependencies(m),
		Application(),
		RuntimeDefaults(),
	}
}
