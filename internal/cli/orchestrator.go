// Package cli wires the sequencer, the image cache and the docker
// client into the commands the binary exposes.
package cli

import (
	"context"
	"time"

	"github.com/0xa1bed0/dloenv/internal/cache"
	"github.com/0xa1bed0/dloenv/internal/dockerclient"
	"github.com/0xa1bed0/dloenv/internal/dockerfile"
	"github.com/0xa1bed0/dloenv/internal/logs"
	"github.com/0xa1bed0/dloenv/internal/manifest"
	"github.com/0xa1bed0/dloenv/internal/provision"
	"github.com/0xa1bed0/dloenv/internal/state"
)

const imageTagPrefix = "dloenv:"

type DockerImageBuildOrchestrator struct {
	cacheManager cache.CacheManager
	dockerClient dockerclient.DockerClient
	cfg          provision.Config
	manifest     *manifest.Manifest
	pipeline     []provision.Stage
	buildHistory *state.DB
}

func NewDockerImageBuildOrchestrator(
	dockerClient dockerclient.DockerClient,
	cacheManager cache.CacheManager,
	cfg provision.Config,
	m *manifest.Manifest,
	pipeline []provision.Stage,
) *DockerImageBuildOrchestrator {
	return &DockerImageBuildOrchestrator{
		cacheManager: cacheManager,
		dockerClient: dockerClient,
		cfg:          cfg,
		manifest:     m,
		pipeline:     pipeline,
	}
}

// SetBuildHistory enables recording completed builds. Optional: a nil
// DB simply skips the bookkeeping.
func (orc *DockerImageBuildOrchestrator) SetBuildHistory(db *state.DB) {
	orc.buildHistory = db
}

// ResolveImageTag returns a runnable image tag for the configured
// provisioning inputs, building one when the cache has nothing usable.
func (orc *DockerImageBuildOrchestrator) ResolveImageTag(ctx context.Context, forceBuild bool) (string, error) {
	configKey, err := cache.CacheKeyConfig(orc.cfg, orc.manifest)
	if err != nil {
		return "", err
	}

	imgID, err := orc.cacheManager.ResolveImage(
		ctx,
		configKey,
		orc.imageExists,
		orc.renderDockerfile,
		orc.buildImageSync,
		forceBuild,
	)
	if err != nil {
		return "", err
	}

	return string(imgID), nil
}

// RenderDockerfile runs the stage pipeline and renders its final state.
// Exposed for the `render` command; the cache path goes through
// renderDockerfile below.
func (orc *DockerImageBuildOrchestrator) RenderDockerfile(ctx context.Context) (dockerfile.Dockerfile, error) {
	return orc.renderDockerfile(ctx)
}

func (orc *DockerImageBuildOrchestrator) imageExists(ctx context.Context, imgID cache.ImageID) bool {
	return orc.dockerClient.ImageExists(ctx, string(imgID))
}

func (orc *DockerImageBuildOrchestrator) renderDockerfile(ctx context.Context) (dockerfile.Dockerfile, error) {
	seq := provision.NewSequencer(orc.cfg, orc.pipeline)

	resultChan := seq.Run(ctx)
	eventsChan := seq.Events()

	for {
		select {
		case ev, ok := <-eventsChan:
			if !ok {
				eventsChan = nil
				continue
			}
			switch e := ev.(type) {
			case provision.StageStarted:
				logs.Infof("stage %s: %s", e.ID, e.Description)
			case provision.StageCompleted:
				logs.Debugf("stage %s done", e.ID)
			case provision.Warning:
				logs.Warnf("stage %s: %s", e.ID, e.Msg)
			}

		case res := <-resultChan:
			if res.Err != nil {
				if id, ok := provision.FailedStage(res.Err); ok {
					logs.Errorf("provisioning stopped at stage %s", id)
				}
				return nil, res.Err
			}
			return dockerfile.Generate(res.State), nil

		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (orc *DockerImageBuildOrchestrator) buildImageSync(ctx context.Context, df dockerfile.Dockerfile, tag string) (cache.ImageID, error) {
	started := time.Now()

	builtTag, err := orc.dockerClient.BuildImage(ctx, df.String(), imageTagPrefix+tag)
	if err != nil {
		return "", err
	}

	if orc.buildHistory != nil {
		rec := state.BuildRecord{
			Tag:           builtTag,
			DockerfileKey: string(cache.CacheKeyDockerfileLines(df)),
			Duration:      time.Since(started),
		}
		if recErr := orc.buildHistory.RecordBuild(ctx, rec); recErr != nil {
			logs.Warnf("build history not recorded: %v", recErr)
		}
	}

	return cache.ImageID(builtTag), nil
}
