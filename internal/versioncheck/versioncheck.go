// Package versioncheck checks GitHub for a newer dloenv release.
package versioncheck

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/0xa1bed0/dloenv/internal/appdir"
	"github.com/0xa1bed0/dloenv/internal/version"
	"github.com/0xa1bed0/dloenv/internal/versions"
)

const (
	// GitHubOwner is the GitHub repository owner.
	GitHubOwner = "0xa1bed0"
	// GitHubRepo is the GitHub repository name.
	GitHubRepo = "dloenv"

	// CacheTTL is how long to cache the version check result.
	CacheTTL = 24 * time.Hour
	// RequestTimeout is the timeout for the GitHub API request.
	RequestTimeout = 5 * time.Second
)

// semverRegex matches semantic version format (optionally prefixed with v).
var semverRegex = regexp.MustCompile(`^v?(\d+\.\d+\.\d+.*)$`)

// githubRelease represents the GitHub API response for a release.
type githubRelease struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// cacheData represents cached version check data.
type cacheData struct {
	Version   string    `json:"version"`
	URL       string    `json:"url"`
	CheckedAt time.Time `json:"checked_at"`
}

// Result contains the version check result.
type Result struct {
	CurrentVersion  string
	LatestVersion   string
	UpdateURL       string
	UpdateAvailable bool
}

// Check checks for a new version of dloenv.
// Returns nil for source builds and when the check fails; an update
// hint is never worth breaking a command for.
func Check(ctx context.Context) *Result {
	current := version.Get()

	if !semverRegex.MatchString(current) {
		// source build ("compiled") or unknown format, skip check
		return nil
	}

	cached, age, err := loadCache()
	if err == nil && age < CacheTTL {
		return buildResult(current, cached.Version, cached.URL)
	}

	latest, releaseURL, err := fetchLatestRelease(ctx)
	if err != nil {
		// On error, return cached result if available
		if cached != nil {
			return buildResult(current, cached.Version, cached.URL)
		}
		return nil
	}

	_ = saveCache(&cacheData{
		Version:   latest,
		URL:       releaseURL,
		CheckedAt: time.Now(),
	})

	return buildResult(current, latest, releaseURL)
}

func buildResult(current, latest, releaseURL string) *Result {
	currentNorm := strings.TrimPrefix(current, "v")
	latestNorm := strings.TrimPrefix(latest, "v")

	updateAvailable := false
	if cmp, err := versions.Compare(latestNorm, currentNorm); err == nil {
		updateAvailable = cmp > 0
	}

	return &Result{
		CurrentVersion:  current,
		LatestVersion:   latest,
		UpdateURL:       releaseURL,
		UpdateAvailable: updateAvailable,
	}
}

// fetchLatestRelease fetches the latest stable release from GitHub.
func fetchLatestRelease(ctx context.Context) (string, string, error) {
	url := fmt.Sprintf("https://api.github.com/repos/%s/%s/releases/latest", GitHubOwner, GitHubRepo)

	reqCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return "", "", err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("failed to fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("github API returned status %d", resp.StatusCode)
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", "", fmt.Errorf("failed to decode response: %w", err)
	}

	return release.TagName, release.HTMLURL, nil
}

func cachePath() string {
	return filepath.Join(appdir.BasePath(), "versioncheck.json")
}

func loadCache() (*cacheData, time.Duration, error) {
	raw, err := os.ReadFile(cachePath())
	if err != nil {
		return nil, 0, err
	}

	var data cacheData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, 0, err
	}

	return &data, time.Since(data.CheckedAt), nil
}

func saveCache(data *cacheData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(appdir.BasePath(), 0o755); err != nil {
		return err
	}
	tmp := cachePath() + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, cachePath())
}

// PrintUpdateBanner prints an update notification if one is available.
// Call it after command execution to avoid interrupting the main flow.
func PrintUpdateBanner(result *Result) {
	if result == nil || !result.UpdateAvailable {
		return
	}

	fmt.Printf("\n")
	fmt.Printf("  A new version of dloenv is available: %s -> %s\n", result.CurrentVersion, result.LatestVersion)
	fmt.Printf("  Download: %s\n", result.UpdateURL)
	fmt.Printf("\n")
}
