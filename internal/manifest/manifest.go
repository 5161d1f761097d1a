// Package manifest holds the optional lockfile that pins dependency
// versions and artifact checksums. Without a manifest every build may
// resolve different concrete versions, matching the original image.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const SchemaVersion = 1

type Manifest struct {
	// Schema allows future format migrations.
	Schema int `json:"schema"`

	// Packages maps conda package names to exact versions.
	Packages map[string]string `json:"packages,omitempty"`

	// Artifacts maps artifact names to sha256 sums.
	Artifacts map[string]string `json:"artifacts,omitempty"`

	// Tools maps executable names to semver constraints checked by
	// `dloenv verify` against the built image (e.g. "samtools": ">=1.3").
	Tools map[string]string `json:"tools,omitempty"`
}

// Empty is the unpinned manifest.
func Empty() *Manifest {
	return &Manifest{
		Schema:    SchemaVersion,
		Packages:  map[string]string{},
		Artifacts: map[string]string{},
		Tools:     map[string]string{},
	}
}

// Load reads a manifest file. A missing file is not an error: it yields
// the unpinned manifest.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Empty(), nil
		}
		return nil, fmt.Errorf("manifest: read: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest: parse %s: %w", path, err)
	}
	if m.Schema == 0 {
		m.Schema = SchemaVersion
	}
	if m.Schema != SchemaVersion {
		return nil, fmt.Errorf("manifest: unsupported schema %d", m.Schema)
	}
	if m.Packages == nil {
		m.Packages = map[string]string{}
	}
	if m.Artifacts == nil {
		m.Artifacts = map[string]string{}
	}
	if m.Tools == nil {
		m.Tools = map[string]string{}
	}
	return &m, nil
}

// Save writes the manifest atomically.
func (m *Manifest) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("manifest: marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("manifest: create dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("manifest: write: %w", err)
	}
	return os.Rename(tmp, path)
}
