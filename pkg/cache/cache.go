// Package cache provides content-addressed caching for the rendering
// pipeline.
//
// Two layers of results are cached:
//   - scenes: the computed draw command list for a profile set
//   - artifacts: the serialized SVG or rasterized PNG bytes
//
// Keys are derived from the inputs that determine the output, so a cache
// hit is always safe to serve. Backends:
//   - file: sharded directory tree for CLI usage
//   - redis: shared cache for multi-instance server deployments
//   - null: disables caching
//
// Create a cache:
//
//	// CLI
//	c, err := cache.NewFileCache("~/.cache/skewt")
//
//	// Server
//	c := cache.NewRedisCache(redis.NewClient(&redis.Options{Addr: addr}))
//
//	// Disabled
//	c := cache.NewNullCache()
package cache

import (
	"context"
	"time"
)

// Cache TTLs per pipeline stage. Scenes and artifacts are pure functions
// of their inputs, so long TTLs are safe; profiles come from upstream
// feeds that refresh hourly.
const (
	TTLProfile  = 1 * time.Hour
	TTLScene    = 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache is the interface all caching backends implement.
// Values are opaque byte slices; callers own serialization.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// SceneKeyOpts captures the rendering options that affect scene geometry.
// Any field change must produce a different key.
type SceneKeyOpts struct {
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	SkewAngle float64 `json:"skew_angle"`
	TMin      float64 `json:"t_min"`
	TMax      float64 `json:"t_max"`
	Unit      string  `json:"unit"`
	BarbSize  float64 `json:"barb_size"`
}

// ArtifactKeyOpts captures the export options that affect serialized output.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale"`
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// ProfileKey generates a key for a loaded sounding profile,
	// derived from the raw input bytes.
	ProfileKey(inputHash string) string

	// SceneKey generates a key for a computed scene.
	SceneKey(profileHash string, opts SceneKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer generates unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ProfileKey generates a key for a loaded profile.
func (k *DefaultKeyer) ProfileKey(inputHash string) string {
	return hashKey("profile", inputHash)
}

// SceneKey generates a key for a computed scene.
func (k *DefaultKeyer) SceneKey(profileHash string, opts SceneKeyOpts) string {
	return hashKey("scene", profileHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneHash, opts)
}
