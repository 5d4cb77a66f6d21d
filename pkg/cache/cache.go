package cache

import (
	"context"
	"time"
)

// Cache is the storage interface shared by all backends. Implementations
// must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found;
	// a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// TTLs for the two cacheable stages. Results are cheap to recompute, so
// both expire within a day.
const (
	TTLResult = 24 * time.Hour
	TTLRender = 24 * time.Hour
)

// ResultKeyOpts carries the per-input hashes that make a pipeline result
// key unique. Any change to the mapping, geometry config, overrides, or
// theme must change the key.
type ResultKeyOpts struct {
	MappingHash   string
	ConfigHash    string
	OverridesHash string
	ThemeHash     string
}

// RenderKeyOpts distinguishes rendered artifacts produced from the same
// pipeline result.
type RenderKeyOpts struct {
	Format string
	Width  float64
	Height float64
}

// Keyer generates cache keys for the two cacheable stages: the computed
// chart result and rendered artifacts derived from it.
type Keyer interface {
	// ResultKey keys a full pipeline result by the dataset hash and the
	// hashes of every other input.
	ResultKey(datasetHash string, opts ResultKeyOpts) string

	// RenderKey keys a rendered artifact by the result hash and the
	// output options.
	RenderKey(resultHash string, opts RenderKeyOpts) string
}

// DefaultKeyer hashes inputs into prefix:sha256 keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ResultKey generates a key for pipeline result caching.
func (k *DefaultKeyer) ResultKey(datasetHash string, opts ResultKeyOpts) string {
	return hashKey("result", datasetHash, opts)
}

// RenderKey generates a key for rendered artifact caching.
func (k *DefaultKeyer) RenderKey(resultHash string, opts RenderKeyOpts) string {
	return hashKey("render", resultHash, opts)
}

var _ Keyer = (*DefaultKeyer)(nil)
