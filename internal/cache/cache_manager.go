// Package cache maps provisioning inputs to already-built image IDs so
// identical configurations reuse the same image instead of rebuilding.
package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/0xa1bed0/dloenv/internal/dockerfile"
)

type (
	CacheKey string
	ImageID  string
)

type Cache struct {
	cacheFilePath string // JSON file
	mu            FSMutex
}

type CacheManager interface {
	ResolveImage(
		ctx context.Context,
		configKey CacheKey,
		imageExists func(context.Context, ImageID) bool,
		renderDockerfile func(ctx context.Context) (dockerfile.Dockerfile, error),
		buildImage func(ctx context.Context, df dockerfile.Dockerfile, tag string) (ImageID, error),
		forceBuild bool,
	) (ImageID, error)
}

const (
	buildingStaleAfter = 30 * time.Minute
	buildingPrefix     = "BUILDING:" // full format: BUILDING:<unixTs>:<dfSig>
)

func NewCacheManager(path string) (CacheManager, error) {
	if path == "" {
		return nil, errors.New("cache path required")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	c := &Cache{
		cacheFilePath: path,
		mu:            NewFSMutex(path + ".lock"),
	}

	return c, nil
}

// ResolveImage returns an image for the given provisioning inputs,
// building one when nothing usable is cached. Cache errors are treated
// as warnings: the goal is to produce a working environment, and the
// docker daemon keeps its own build cache anyway, so a repeated build is
// usually cheap.
func (c *Cache) ResolveImage(
	ctx context.Context,
	configKey CacheKey,
	imageExists func(context.Context, ImageID) bool,
	renderDockerfile func(ctx context.Context) (dockerfile.Dockerfile, error),
	buildImage func(ctx context.Context, df dockerfile.Dockerfile, tag string) (ImageID, error),
	forceBuild bool,
) (ImageID, error) {
	if imageExists == nil || buildImage == nil || renderDockerfile == nil {
		return "", errors.New("helpers imageExists, buildImage, and renderDockerfile are mandatory for image resolving")
	}

	for {
		readOnlyState := false

		// 40 means "wait 40 times for 50 milliseconds. ~2 seconds"
		if err := c.mu.Lock(40); err != nil {
			readOnlyState = true
		}

		state, stateLoadErr := c.loadState(readOnlyState)
		if stateLoadErr != nil {
			// could lock but could not read the state: unlock early and
			// continue with an empty readonly state. Unlocking earlier is
			// fine because the mutex is idempotent.
			c.mu.Unlock()
			readOnlyState = true
			state = newReadonlyEmptyCacheState()
		}

		if !forceBuild {
			if id, ok := state.getImageIDByConfigKey(configKey); ok {
				if isBuilding(id) {
					// another process is building this image; wait and retry.
					c.mu.Unlock()
					time.Sleep(150 * time.Millisecond)
					continue
				}
				if imageExists(ctx, id) {
					c.mu.Unlock()
					return id, nil
				}
				_ = state.cleanupConfigKey(configKey)
			}
		}

		// don't keep the cache locked while rendering the dockerfile.
		c.mu.Unlock()
		df, renderErr := renderDockerfile(ctx)
		if renderErr != nil {
			return "", renderErr
		}

		if !readOnlyState {
			if err := c.mu.Lock(40); err != nil {
				readOnlyState = true
			}
		}

		state, stateLoadErr = c.loadState(readOnlyState)
		if stateLoadErr != nil {
			if readOnlyState {
				state = newReadonlyEmptyCacheState()
			} else {
				state = newEmptyCacheState(c.cacheFilePath)
			}
		}

		dockerfileKey := CacheKeyDockerfileLines(df)

		if !forceBuild {
			if id, ok := state.getImageIDByDockerfileKey(dockerfileKey); ok {
				_ = state.setConfigKey(configKey, id)
				if isBuilding(id) {
					c.mu.Unlock()
					time.Sleep(150 * time.Millisecond)
					continue
				}

				if imageExists(ctx, id) {
					c.mu.Unlock()
					return id, nil
				}

				_ = state.cleanupImageID(configKey, dockerfileKey)
			}
		}

		buildingID := newBuildingID(string(dockerfileKey))
		_ = state.setImageID(configKey, dockerfileKey, buildingID)
		// don't keep the cache locked while building the image.
		c.mu.Unlock()

		tag := composeImageTag(configKey, dockerfileKey)
		imageID, buildErr := buildImage(ctx, df, tag)
		if buildErr != nil {
			if e := c.mu.Lock(40); e != nil {
				return "", buildErr
			}

			if s, err := c.loadState(false); err == nil {
				if cur, ok := s.DockerfileKeyToImage[dockerfileKey]; ok && cur == buildingID {
					_ = s.cleanupImageID(configKey, dockerfileKey)
				}
			}

			c.mu.Unlock()
			return "", buildErr
		}

		if err := c.mu.Lock(40); err != nil {
			return imageID, nil
		}

		if s, err := c.loadState(false); err == nil {
			// intentionally override whatever sits there: we trust only
			// images we built ourselves, not whatever an arbitrary editor
			// of the state file put in.
			_ = s.setImageID(configKey, dockerfileKey, imageID)
		}

		c.mu.Unlock()
		return imageID, nil
	}
}

func newBuildingID(dfSig string) ImageID {
	now := time.Now().Unix()
	return ImageID(fmt.Sprintf("%s%d:%s", buildingPrefix, now, dfSig))
}

func isBuilding(id ImageID) bool {
	return strings.HasPrefix(string(id), buildingPrefix)
}

func parseBuildingMarker(id ImageID) (time.Time, bool) {
	if !isBuilding(id) {
		return time.Time{}, false
	}
	rest := strings.TrimPrefix(string(id), buildingPrefix)
	parts := strings.SplitN(rest, ":", 2)
	if len(parts) != 2 {
		return time.Time{}, false
	}
	sec, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(sec, 0), true
}

func isBuildingStale(id ImageID) bool {
	ts, ok := parseBuildingMarker(id)
	if !ok {
		return false
	}
	return time.Since(ts) > buildingStaleAfter
}
