// Package determinism provides primitives for guaranteeing deterministic output.
// Estimation results must not depend on map iteration order or goroutine scheduling.
package determinism

import (
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"maps"
	"slices"
)

// ContentHash is a SHA-256 hash for content integrity
type ContentHash [32]byte

// ComputeHash computes a content hash from bytes
func ComputeHash(data []byte) ContentHash {
	return sha256.Sum256(data)
}

// HashJSON hashes the JSON encoding of v.
// encoding/json sorts map keys, so equal values always hash equally.
func HashJSON(v interface{}) (ContentHash, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return ContentHash{}, err
	}
	return ComputeHash(data), nil
}

// Hex returns the hash as a hex string
func (h ContentHash) Hex() string {
	return hex.EncodeToString(h[:])
}

// String implements Stringer
func (h ContentHash) String() string {
	return h.Hex()[:16] + "..."
}

// SortedKeys returns the keys of m in ascending order
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	return slices.Sorted(maps.Keys(m))
}
