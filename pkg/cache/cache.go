// Package cache stores derived bytes (drag replay results, rendered
// timelines) keyed by content hashes.
//
// Three backends implement [Cache]: [FileCache] for the CLI, [RedisCache]
// for a shared server deployment, and [NullCache] when caching is off.
// A [Keyer] turns content hashes into backend keys; wrap it in a
// [ScopedKeyer] to give each tenant its own namespace.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry. Misses are reported through
// the bool result, not as errors.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default lifetimes per entry type.
const (
	TTLReplay = 24 * time.Hour
	TTLRender = 7 * 24 * time.Hour
)

// Keyer builds cache keys.
type Keyer interface {
	// ReplayKey identifies the result of replaying a drag script against a
	// timeline with the given placement settings.
	ReplayKey(timelineHash, scriptHash, settingsHash string) string

	// RenderKey identifies a rendered timeline in one output format.
	RenderKey(timelineHash, format string) string
}

// DefaultKeyer hashes the key parts under a type prefix.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) ReplayKey(timelineHash, scriptHash, settingsHash string) string {
	return hashKey("replay", timelineHash, scriptHash, settingsHash)
}

func (DefaultKeyer) RenderKey(timelineHash, format string) string {
	return hashKey("render", timelineHash, format)
}
