// Tests in this file drive the build orchestrator against a mocked
// docker client and a real on-disk cache.
package cli

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gomock "go.uber.org/mock/gomock"

	"github.com/0xa1bed0/dloenv/internal/cache"
	"github.com/0xa1bed0/dloenv/internal/dockerclient/mocks"
	"github.com/0xa1bed0/dloenv/internal/manifest"
	"github.com/0xa1bed0/dloenv/internal/provision"
	"github.com/0xa1bed0/dloenv/internal/stages"
)

func newTestOrchestrator(t *testing.T, dockerClient *mocks.MockDockerClient) *DockerImageBuildOrchestrator {
	t.Helper()

	cacheManager, err := cache.NewCacheManager(filepath.Join(t.TempDir(), "image-cache.json"))
	if err != nil {
		t.Fatalf("NewCacheManager failed: %v", err)
	}

	m := manifest.Empty()
	return NewDockerImageBuildOrchestrator(
		dockerClient,
		cacheManager,
		provision.DefaultConfig(),
		m,
		stages.DefaultPipeline(m),
	)
}

func testCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestResolveImageTagBuildsFromRenderedDockerfile(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	dockerClient := mocks.NewMockDockerClient(ctrl)
	orc := newTestOrchestrator(t, dockerClient)

	var builtDockerfile, builtTag string
	dockerClient.EXPECT().
		BuildImage(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, df, tag string) (string, error) {
			builtDockerfile = df
			builtTag = tag
			return tag, nil
		})

	got, err := orc.ResolveImageTag(testCtx(t), false)
	if err != nil {
		t.Fatalf("ResolveImageTag failed: %v", err)
	}
	if got != builtTag {
		t.Fatalf("returned tag %q differs from built tag %q", got, builtTag)
	}
	if !strings.HasPrefix(builtTag, imageTagPrefix) {
		t.Fatalf("tag %q misses prefix %q", builtTag, imageTagPrefix)
	}
	if !strings.Contains(builtDockerfile, "FROM ubuntu:16.04") {
		t.Fatalf("built dockerfile misses base image:\n%s", builtDockerfile)
	}
	if !strings.Contains(builtDockerfile, "WORKDIR /data") {
		t.Fatalf("built dockerfile misses workdir:\n%s", builtDockerfile)
	}
}

func TestResolveImageTagReusesCachedImage(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	dockerClient := mocks.NewMockDockerClient(ctrl)
	orc := newTestOrchestrator(t, dockerClient)

	// exactly one build for two resolutions.
	dockerClient.EXPECT().
		BuildImage(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, df, tag string) (string, error) {
			return tag, nil
		}).
		Times(1)
	dockerClient.EXPECT().
		ImageExists(gomock.Any(), gomock.Any()).
		Return(true).
		AnyTimes()

	first, err := orc.ResolveImageTag(testCtx(t), false)
	if err != nil {
		t.Fatalf("first ResolveImageTag failed: %v", err)
	}
	second, err := orc.ResolveImageTag(testCtx(t), false)
	if err != nil {
		t.Fatalf("second ResolveImageTag failed: %v", err)
	}
	if first != second {
		t.Fatalf("tags differ across cached resolutions: %q vs %q", first, second)
	}
}

func TestResolveImageTagForceRebuilds(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	dockerClient := mocks.NewMockDockerClient(ctrl)
	orc := newTestOrchestrator(t, dockerClient)

	dockerClient.EXPECT().
		BuildImage(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, df, tag string) (string, error) {
			return tag, nil
		}).
		Times(2)
	dockerClient.EXPECT().
		ImageExists(gomock.Any(), gomock.Any()).
		Return(true).
		AnyTimes()

	if _, err := orc.ResolveImageTag(testCtx(t), false); err != nil {
		t.Fatalf("initial build failed: %v", err)
	}
	if _, err := orc.ResolveImageTag(testCtx(t), true); err != nil {
		t.Fatalf("forced rebuild failed: %v", err)
	}
}

func TestResolveImageTagPropagatesBuildFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	dockerClient := mocks.NewMockDockerClient(ctrl)
	orc := newTestOrchestrator(t, dockerClient)

	dockerClient.EXPECT().
		BuildImage(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", context.DeadlineExceeded)

	if _, err := orc.ResolveImageTag(testCtx(t), false); err == nil {
		t.Fatal("expected build failure to propagate")
	}
}

func TestRenderDockerfileIsDeterministic(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	orc := newTestOrchestrator(t, mocks.NewMockDockerClient(ctrl))

	a, err := orc.RenderDockerfile(testCtx(t))
	if err != nil {
		t.Fatalf("RenderDockerfile failed: %v", err)
	}
	b, err := orc.RenderDockerfile(testCtx(t))
	if err != nil {
		t.Fatalf("RenderDockerfile failed: %v", err)
	}
	if a.String() != b.String() {
		t.Fatal("renders differ for identical inputs")
	}
}
