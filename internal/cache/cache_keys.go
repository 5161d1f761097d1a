package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"io"

	"github.com/0xa1bed0/dloenv/internal/manifest"
	"github.com/0xa1bed0/dloenv/internal/provision"
)

// CacheKeyDockerfileLines deterministically computes a cache key for a list of Dockerfile lines.
// It prefixes each line with its length (8-byte big-endian) before hashing to avoid collisions
// between sequences like ["ab", "c"] and ["a", "bc"].
func CacheKeyDockerfileLines(lines []string) CacheKey {
	h := sha256.New()
	var lenBuf [8]byte

	for _, line := range lines {
		binary.BigEndian.PutUint64(lenBuf[:], uint64(len(line)))
		h.Write(lenBuf[:])
		io.WriteString(h, line)
	}

	return CacheKey(hex.EncodeToString(h.Sum(nil)))
}

type configKeyPayload struct {
	Config   provision.Config   `json:"config"`
	Manifest *manifest.Manifest `json:"manifest,omitempty"`
}

// CacheKeyConfig hashes the provisioning inputs: the fixed config record
// plus whatever pins the manifest carries.
func CacheKeyConfig(cfg provision.Config, m *manifest.Manifest) (CacheKey, error) {
	payload := configKeyPayload{
		Config:   cfg,
		Manifest: m,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(data)
	return CacheKey(hex.EncodeToString(sum[:])), nil
}
