package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsEmpty(t *testing.T) {
	t.Parallel()

	m, err := Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, m.Schema)
	assert.Empty(t, m.Packages)
	assert.Empty(t, m.Artifacts)
	assert.Empty(t, m.Tools)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sub", "manifest.json")

	m := Empty()
	m.Packages["numpy"] = "1.15.4"
	m.Artifacts["juicer-tools"] = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
	m.Tools["samtools"] = ">=1.3"
	require.NoError(t, m.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "1.15.4", got.Packages["numpy"])
	assert.Equal(t, ">=1.3", got.Tools["samtools"])
	assert.Equal(t, m.Artifacts["juicer-tools"], got.Artifacts["juicer-tools"])
}

func TestLoadRejectsUnknownSchema(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"schema": 99}`), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadFillsNilMaps(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"schema": 1}`), 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	assert.NotNil(t, m.Packages)
	assert.NotNil(t, m.Artifacts)
	assert.NotNil(t, m.Tools)
}
