// Tests in this file cover cache key derivation and tag composition.
package cache

import (
	"testing"

	"github.com/0xa1bed0/dloenv/internal/manifest"
	"github.com/0xa1bed0/dloenv/internal/provision"
)

func TestCacheKeyDockerfileLinesAvoidsBoundaryCollisions(t *testing.T) {
	t.Parallel()

	a := CacheKeyDockerfileLines([]string{"ab", "c"})
	b := CacheKeyDockerfileLines([]string{"a", "bc"})
	if a == b {
		t.Fatal("different line splits hashed to the same key")
	}
}

func TestCacheKeyDockerfileLinesIsStable(t *testing.T) {
	t.Parallel()

	lines := []string{"FROM ubuntu:16.04", `RUN ["apt-get", "update"]`}
	if CacheKeyDockerfileLines(lines) != CacheKeyDockerfileLines(lines) {
		t.Fatal("same lines hashed differently")
	}
	if len(CacheKeyDockerfileLines(lines)) != 64 {
		t.Fatal("key is not a sha256 hex digest")
	}
}

func TestCacheKeyConfigTracksInputs(t *testing.T) {
	t.Parallel()

	cfg := provision.DefaultConfig()
	base, err := CacheKeyConfig(cfg, manifest.Empty())
	if err != nil {
		t.Fatalf("CacheKeyConfig error: %v", err)
	}

	changed := cfg
	changed.BaseImage = "ubuntu:18.04"
	other, err := CacheKeyConfig(changed, manifest.Empty())
	if err != nil {
		t.Fatalf("CacheKeyConfig error: %v", err)
	}
	if base == other {
		t.Fatal("config change did not change the key")
	}

	pinned := manifest.Empty()
	pinned.Packages["numpy"] = "1.15.4"
	withPins, err := CacheKeyConfig(cfg, pinned)
	if err != nil {
		t.Fatalf("CacheKeyConfig error: %v", err)
	}
	if base == withPins {
		t.Fatal("manifest pin did not change the key")
	}
}

func TestComposeImageTagIsDockerSafe(t *testing.T) {
	t.Parallel()

	a := CacheKeyDockerfileLines([]string{"x"})
	b := CacheKeyDockerfileLines([]string{"y"})

	tag := composeImageTag(a, b)
	if len(tag) != 64 {
		t.Fatalf("tag length = %d, want 64", len(tag))
	}
	for _, r := range tag {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			t.Fatalf("tag contains non-hex rune %q", r)
		}
	}
	if tag == string(a) || tag == string(b) {
		t.Fatal("tag must mix both keys")
	}
	if composeImageTag(a, b) == composeImageTag(b, a) {
		t.Fatal("tag must depend on key order")
	}
}
