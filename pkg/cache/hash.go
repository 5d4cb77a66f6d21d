package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey builds a prefix:hash key from the JSON encoding of parts. The
// full SHA-256 digest is kept to rule out collisions between inputs.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}

// Hash returns the SHA-256 digest of data as a 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashJSON marshals v and hashes the encoding. Inputs that encode equally
// share a hash, which is exactly the equivalence the cache keys need.
func HashJSON(v any) string {
	data, _ := json.Marshal(v)
	return Hash(data)
}
