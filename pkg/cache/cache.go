// Package cache stores generated road networks so that repeated requests for
// the same parameters skip generation.
//
// Generation is deterministic per seed, so an entry never goes stale; the
// TTL only bounds disk and memory use. Three backends share the [Cache]
// interface:
//
//   - [NullCache]: caching disabled
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared cache for the HTTP server
//
// Keys come from a [Keyer] so callers never build key strings by hand.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// TTLNetwork is how long a generated network stays cached.
const TTLNetwork = 7 * 24 * time.Hour

// TTLRender is how long a rendered topology SVG stays cached.
const TTLRender = 24 * time.Hour

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// NetworkKeyOpts is every generation parameter that affects the output.
type NetworkKeyOpts struct {
	Seed           uint64
	Boxes          int
	Width          int
	Height         int
	MinScale       float64
	MaxScale       float64
	Cities         int
	MinCitySpacing int
	YUp            bool
	MaxAttempts    int
	// Stack is an explicit box list as {left, top, right, bottom}.
	Stack [][4]int
}

// Keyer derives cache keys.
type Keyer interface {
	NetworkKey(opts NetworkKeyOpts) string
	RenderKey(networkHash, format string) string
}

// DefaultKeyer hashes options into "network:<sha256>" and
// "render:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// NetworkKey returns the key for a generated network.
func (DefaultKeyer) NetworkKey(opts NetworkKeyOpts) string {
	return hashKey("network", opts)
}

// RenderKey returns the key for a rendering of the network with the given
// content hash.
func (DefaultKeyer) RenderKey(networkHash, format string) string {
	return hashKey("render", networkHash, format)
}

// hashKey joins prefix and the SHA-256 of the JSON-encoded parts. Marshal
// cannot fail for the option structs and strings passed here.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// Hash is the content hash of a serialized network: hex SHA-256.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
