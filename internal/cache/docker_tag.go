package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// composeImageTag returns a Docker-safe tag derived from the two hex
// cache keys. Both parts are length-prefixed before hashing to avoid
// ambiguity between key pairs.
func composeImageTag(a, b CacheKey) string {
	ah, errA := hex.DecodeString(string(a))
	if errA != nil {
		ah = []byte(a)
	}
	bh, errB := hex.DecodeString(string(b))
	if errB != nil {
		bh = []byte(b)
	}

	h := sha256.New()
	var len8 [8]byte
	putU64 := func(n int) {
		len8[0] = byte(n >> 56)
		len8[1] = byte(n >> 48)
		len8[2] = byte(n >> 40)
		len8[3] = byte(n >> 32)
		len8[4] = byte(n >> 24)
		len8[5] = byte(n >> 16)
		len8[6] = byte(n >> 8)
		len8[7] = byte(n)
		h.Write(len8[:])
	}
	putU64(len(ah))
	h.Write(ah)
	putU64(len(bh))
	h.Write(bh)

	return hex.EncodeToString(h.Sum(nil)) // 64 chars
}
