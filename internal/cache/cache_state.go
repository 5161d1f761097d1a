package cache

import (
	"encoding/json"
	"errors"
	"os"
)

type cacheState struct {
	path                 string
	ConfigKeyToImage     map[CacheKey]ImageID `json:"config_to_image"`
	DockerfileKeyToImage map[CacheKey]ImageID `json:"df_to_image"`
}

func (st *cacheState) getImageIDByConfigKey(key CacheKey) (ImageID, bool) {
	id, ok := st.ConfigKeyToImage[key]
	if !ok {
		return "", false
	}

	if isBuilding(id) {
		if isBuildingStale(id) {
			// the cleanup is optional so no error propagated.
			_ = st.cleanupConfigKey(key)
			return "", false
		}
	}

	return id, true
}

func (st *cacheState) getImageIDByDockerfileKey(key CacheKey) (ImageID, bool) {
	id, ok := st.DockerfileKeyToImage[key]
	if !ok {
		return "", false
	}

	if isBuilding(id) {
		if isBuildingStale(id) {
			// the cleanup is optional so no error propagated.
			_ = st.cleanupDockerfileKey(key)
			return "", false
		}
	}

	return id, true
}

func (st *cacheState) cleanupConfigKey(key CacheKey) error {
	delete(st.ConfigKeyToImage, key)

	return st.commit()
}

func (st *cacheState) cleanupDockerfileKey(key CacheKey) error {
	delete(st.DockerfileKeyToImage, key)

	return st.commit()
}

func (st *cacheState) cleanupImageID(configKey, dockerfileKey CacheKey) error {
	delete(st.ConfigKeyToImage, configKey)
	delete(st.DockerfileKeyToImage, dockerfileKey)

	return st.commit()
}

func (st *cacheState) setConfigKey(key CacheKey, imgID ImageID) error {
	st.ConfigKeyToImage[key] = imgID

	return st.commit()
}

func (st *cacheState) setImageID(configKey, dockerfileKey CacheKey, imgID ImageID) error {
	st.ConfigKeyToImage[configKey] = imgID
	st.DockerfileKeyToImage[dockerfileKey] = imgID

	return st.commit()
}

func (st *cacheState) commit() error {
	if st.path == "" {
		// this is a readonly state
		return nil
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	tmp := st.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, st.path)
}

func newEmptyCacheState(path string) *cacheState {
	return &cacheState{
		path:                 path,
		ConfigKeyToImage:     make(map[CacheKey]ImageID),
		DockerfileKeyToImage: make(map[CacheKey]ImageID),
	}
}

func newReadonlyEmptyCacheState() *cacheState {
	return newEmptyCacheState("")
}

func (c *Cache) loadState(readonly bool) (*cacheState, error) {
	data, err := os.ReadFile(c.cacheFilePath)
	path := c.cacheFilePath
	if readonly {
		path = ""
	}
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return newEmptyCacheState(path), nil
		}
		return nil, err
	}
	var st cacheState
	st.path = path
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, err
	}
	if st.ConfigKeyToImage == nil {
		st.ConfigKeyToImage = make(map[CacheKey]ImageID)
	}
	if st.DockerfileKeyToImage == nil {
		st.DockerfileKeyToImage = make(map[CacheKey]ImageID)
	}
	return &st, nil
}
