package cache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xa1bed0/dloenv/internal/dockerfile"
)

func testCache(t *testing.T) CacheManager {
	t.Helper()
	c, err := NewCacheManager(filepath.Join(t.TempDir(), "image-cache.json"))
	require.NoError(t, err)
	return c
}

func staticRender(lines ...string) func(context.Context) (dockerfile.Dockerfile, error) {
	return func(context.Context) (dockerfile.Dockerfile, error) {
		return dockerfile.Dockerfile(lines), nil
	}
}

func TestResolveImageBuildsOnceThenReuses(t *testing.T) {
	t.Parallel()

	c := testCache(t)
	ctx := context.Background()
	configKey := CacheKey("aa11")

	builds := 0
	known := map[ImageID]bool{}
	buildImage := func(ctx context.Context, df dockerfile.Dockerfile, tag string) (ImageID, error) {
		builds++
		id := ImageID("img-" + tag[:8])
		known[id] = true
		return id, nil
	}
	imageExists := func(ctx context.Context, id ImageID) bool { return known[id] }
	render := staticRender("FROM ubuntu:16.04")

	first, err := c.ResolveImage(ctx, configKey, imageExists, render, buildImage, false)
	require.NoError(t, err)
	assert.Equal(t, 1, builds)

	second, err := c.ResolveImage(ctx, configKey, imageExists, render, buildImage, false)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, builds, "cached image must not rebuild")
}

func TestResolveImageForceBuildRebuilds(t *testing.T) {
	t.Parallel()

	c := testCache(t)
	ctx := context.Background()
	configKey := CacheKey("bb22")

	builds := 0
	known := map[ImageID]bool{}
	buildImage := func(ctx context.Context, df dockerfile.Dockerfile, tag string) (ImageID, error) {
		builds++
		id := ImageID("img-forced")
		known[id] = true
		return id, nil
	}
	imageExists := func(ctx context.Context, id ImageID) bool { return known[id] }
	render := staticRender("FROM ubuntu:16.04")

	_, err := c.ResolveImage(ctx, configKey, imageExists, render, buildImage, false)
	require.NoError(t, err)
	_, err = c.ResolveImage(ctx, configKey, imageExists, render, buildImage, true)
	require.NoError(t, err)
	assert.Equal(t, 2, builds)
}

func TestResolveImageRebuildsWhenImageGone(t *testing.T) {
	t.Parallel()

	c := testCache(t)
	ctx := context.Background()
	configKey := CacheKey("cc33")

	builds := 0
	buildImage := func(ctx context.Context, df dockerfile.Dockerfile, tag string) (ImageID, error) {
		builds++
		return ImageID("img-gone"), nil
	}
	// the docker daemon lost the image between runs.
	imageExists := func(ctx context.Context, id ImageID) bool { return false }
	render := staticRender("FROM ubuntu:16.04")

	_, err := c.ResolveImage(ctx, configKey, imageExists, render, buildImage, false)
	require.NoError(t, err)
	_, err = c.ResolveImage(ctx, configKey, imageExists, render, buildImage, false)
	require.NoError(t, err)
	assert.Equal(t, 2, builds)
}

func TestResolveImageSharesBuildAcrossConfigKeys(t *testing.T) {
	t.Parallel()

	c := testCache(t)
	ctx := context.Background()

	builds := 0
	known := map[ImageID]bool{}
	buildImage := func(ctx context.Context, df dockerfile.Dockerfile, tag string) (ImageID, error) {
		builds++
		id := ImageID("img-shared")
		known[id] = true
		return id, nil
	}
	imageExists := func(ctx context.Context, id ImageID) bool { return known[id] }
	// two different configs rendering the identical dockerfile reuse
	// the same image.
	render := staticRender("FROM ubuntu:16.04")

	first, err := c.ResolveImage(ctx, CacheKey("dd44"), imageExists, render, buildImage, false)
	require.NoError(t, err)
	second, err := c.ResolveImage(ctx, CacheKey("ee55"), imageExists, render, buildImage, false)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, builds)
}

func TestResolveImageBuildFailureCleansMarker(t *testing.T) {
	t.Parallel()

	c := testCache(t)
	ctx := context.Background()
	configKey := CacheKey("ff66")

	fail := true
	known := map[ImageID]bool{}
	buildImage := func(ctx context.Context, df dockerfile.Dockerfile, tag string) (ImageID, error) {
		if fail {
			return "", assert.AnError
		}
		id := ImageID("img-retry")
		known[id] = true
		return id, nil
	}
	imageExists := func(ctx context.Context, id ImageID) bool { return known[id] }
	render := staticRender("FROM ubuntu:16.04")

	_, err := c.ResolveImage(ctx, configKey, imageExists, render, buildImage, false)
	require.Error(t, err)

	// the failed build must not leave a BUILDING marker that wedges the
	// next attempt.
	fail = false
	id, err := c.ResolveImage(ctx, configKey, imageExists, render, buildImage, false)
	require.NoError(t, err)
	assert.Equal(t, ImageID("img-retry"), id)
}

func TestResolveImageRequiresHelpers(t *testing.T) {
	t.Parallel()

	c := testCache(t)
	_, err := c.ResolveImage(context.Background(), CacheKey("x"), nil, nil, nil, false)
	assert.Error(t, err)
}
