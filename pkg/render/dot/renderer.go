package dot

import (
	"context"
	"time"

	"github.com/matzehuels/cliptower/pkg/cache"
	"github.com/matzehuels/cliptower/pkg/errors"
	"github.com/matzehuels/cliptower/pkg/observability"
	"github.com/matzehuels/cliptower/pkg/timeline"
)

// Renderer renders timelines through a cache. Nil fields fall back to a
// NullCache, the default keyer and [cache.TTLRender].
type Renderer struct {
	Cache cache.Cache
	Keyer cache.Keyer
	TTL   time.Duration
}

// RenderWithCacheInfo renders tl and reports whether the bytes came from the
// cache.
func (r *Renderer) RenderWithCacheInfo(ctx context.Context, tl *timeline.Timeline, f Format, opts Options) ([]byte, bool, error) {
	c, keyer, ttl := r.Cache, r.Keyer, r.TTL
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if ttl == 0 {
		ttl = cache.TTLRender
	}

	h, err := cache.HashJSON(struct {
		Timeline *timeline.Timeline
		Options  Options
	}{tl, opts})
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "hash timeline")
	}
	key := keyer.RenderKey(h, string(f))

	if data, hit, err := c.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "render")
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "render")

	data, err := Render(ctx, ToDOT(tl, opts), f)
	if err != nil {
		return nil, false, err
	}
	if err := c.Set(ctx, key, data, ttl); err == nil {
		observability.Cache().OnCacheSet(ctx, "render", len(data))
	}
	return data, false, nil
}

// Render renders tl in format f.
func (r *Renderer) Render(ctx context.Context, tl *timeline.Timeline, f Format, opts Options) ([]byte, error) {
	data, _, err := r.RenderWithCacheInfo(ctx, tl, f, opts)
	return data, err
}
