// Package appdir resolves the per-user directories the tool stores its
// cache, state and logs in.
package appdir

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

func BasePath() string {
	homedir, err := os.UserHomeDir()
	if err != nil {
		homedir = "/usr/local/config/dloenv"
	}

	return filepath.Join(homedir, ".config", "dloenv")
}

func ImageCacheFile() string {
	return filepath.Join(BasePath(), "image-cache.json")
}

func StateDBFile() string {
	return filepath.Join(BasePath(), "state.db")
}

func ManifestFile() string {
	return filepath.Join(BasePath(), "manifest.json")
}

// BuildLogPathOpen opens (creating parents as needed) the full-log file
// for one invocation.
func BuildLogPathOpen() (*os.File, error) {
	dir := filepath.Join(BasePath(), "logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("appdir: create logs dir: %w", err)
	}
	name := "build-" + time.Now().UTC().Format("20060102-150405") + ".log"
	return os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_RDWR, 0o644)
}
