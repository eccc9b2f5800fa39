// Package cache stores rendered plats so that identical renders are not
// repeated.
//
// A render is keyed by a hash of everything that affects its pixels: the
// tracts, the lot definitions, the settings, and the render options. The
// CLI uses a [FileCache] under the user cache directory; [NullCache]
// disables caching.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long rendered artifacts stay cached.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte store with expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ArtifactKeyOpts are the render options that change an artifact.
type ArtifactKeyOpts struct {
	Mode      string   `json:"mode"`
	Format    string   `json:"format"`
	Subset    []string `json:"subset,omitempty"`
	MaxWidth  int      `json:"max_width,omitempty"`
	MaxHeight int      `json:"max_height,omitempty"`
	Header    string   `json:"header,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key for the artifacts rendered from inputs
	// hashing to inputHash.
	ArtifactKey(inputHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", inputHash, opts)
}
