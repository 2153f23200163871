package editor

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/cliptower/pkg/cache"
	"github.com/matzehuels/cliptower/pkg/errors"
	"github.com/matzehuels/cliptower/pkg/observability"
	"github.com/matzehuels/cliptower/pkg/placement"
	"github.com/matzehuels/cliptower/pkg/timeline"
)

// ReplayResult is the outcome of replaying a Script.
type ReplayResult struct {
	// Previews holds one preview per pointer event.
	Previews []placement.Preview `json:"previews"`

	// Action is the applied drop, nil when the drag was cancelled.
	Action *placement.DropAction `json:"action,omitempty"`

	// Timeline is the snapshot after the drop, or an unchanged copy.
	Timeline *timeline.Timeline `json:"timeline"`
}

// ReplayWithCacheInfo replays s against tl and reports whether the result
// came from the cache.
func (e *Editor) ReplayWithCacheInfo(ctx context.Context, tl *timeline.Timeline, s *Script) (*ReplayResult, bool, error) {
	start := time.Now()
	res, hit, err := e.replay(ctx, tl, s)
	observability.Editor().OnReplayComplete(ctx, len(s.Events), time.Since(start), err)
	if err == nil {
		e.Logger.Info("replayed drag",
			"events", len(s.Events),
			"cached", hit,
			"duration", time.Since(start))
	}
	return res, hit, err
}

// Replay is ReplayWithCacheInfo without the cache flag.
func (e *Editor) Replay(ctx context.Context, tl *timeline.Timeline, s *Script) (*ReplayResult, error) {
	res, _, err := e.ReplayWithCacheInfo(ctx, tl, s)
	return res, err
}

func (e *Editor) replay(ctx context.Context, tl *timeline.Timeline, s *Script) (*ReplayResult, bool, error) {
	if err := s.Validate(); err != nil {
		return nil, false, err
	}
	d, err := s.Drag(tl)
	if err != nil {
		return nil, false, err
	}

	key, keyErr := e.replayKey(tl, s)
	if keyErr == nil {
		if data, hit, err := e.Cache.Get(ctx, key); err == nil && hit {
			var cached ReplayResult
			if json.Unmarshal(data, &cached) == nil {
				observability.Cache().OnCacheHit(ctx, "replay")
				return &cached, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "replay")
	}

	res := &ReplayResult{Previews: make([]placement.Preview, 0, len(s.Events))}
	for _, p := range s.Events {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}
		res.Previews = append(res.Previews, e.Preview(ctx, tl, d, p))
	}

	if s.Cancel {
		res.Timeline = tl.Clone()
	} else {
		out, act, err := e.drop(ctx, tl, d, res.Previews[len(res.Previews)-1])
		if err != nil {
			return nil, false, err
		}
		res.Timeline = out
		res.Action = &act
	}

	if keyErr == nil {
		if data, err := json.Marshal(res); err == nil {
			if err := e.Cache.Set(ctx, key, data, e.ReplayTTL); err != nil {
				e.Logger.Warn("cache write failed", "err", err)
			} else {
				observability.Cache().OnCacheSet(ctx, "replay", len(data))
			}
		}
	}
	return res, false, nil
}

func (e *Editor) replayKey(tl *timeline.Timeline, s *Script) (string, error) {
	th, err := cache.HashJSON(tl)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash timeline")
	}
	sh, err := cache.HashJSON(s)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash script")
	}
	oh, err := cache.HashJSON(e.Options)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash settings")
	}
	return e.Keyer.ReplayKey(th, sh, oh), nil
}
