package editor

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cliptower/pkg/cache"
	"github.com/matzehuels/cliptower/pkg/errors"
	"github.com/matzehuels/cliptower/pkg/observability"
	"github.com/matzehuels/cliptower/pkg/placement"
	"github.com/matzehuels/cliptower/pkg/timeline"
)

// Editor runs placement operations against timeline snapshots. It keeps no
// per-drag state, so one Editor may serve concurrent requests.
type Editor struct {
	Options placement.Options
	Cache   cache.Cache
	Keyer   cache.Keyer
	Logger  *log.Logger
	NewID   timeline.IDFunc

	// ReplayTTL bounds how long replay results stay cached.
	ReplayTTL time.Duration
}

// New returns an editor. A nil cache disables caching, a nil keyer uses
// cache.DefaultKeyer and a nil logger uses log.Default().
func New(opts placement.Options, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Editor {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Editor{
		Options:   opts,
		Cache:     c,
		Keyer:     keyer,
		Logger:    logger,
		NewID:     timeline.NewID,
		ReplayTTL: cache.TTLReplay,
	}
}

// Preview computes the drop preview for one pointer position.
func (e *Editor) Preview(ctx context.Context, tl *timeline.Timeline, d placement.Drag, p placement.Pointer) placement.Preview {
	pv := placement.BuildPreview(p, d, tl.Tracks, tl.CurrentFrame, e.Options)
	observability.Editor().OnPreview(ctx, d.Item.ID, string(pv.Zone), pv.GuideFrame != nil)
	return pv
}

// Drop finalizes a drag released at p and returns the updated timeline.
func (e *Editor) Drop(ctx context.Context, tl *timeline.Timeline, d placement.Drag, p placement.Pointer) (*timeline.Timeline, placement.DropAction, error) {
	if err := checkDrag(tl, d); err != nil {
		return nil, placement.DropAction{}, err
	}
	return e.drop(ctx, tl, d, e.Preview(ctx, tl, d, p))
}

func (e *Editor) drop(ctx context.Context, tl *timeline.Timeline, d placement.Drag, pv placement.Preview) (*timeline.Timeline, placement.DropAction, error) {
	start := time.Now()
	observability.Editor().OnDropStart(ctx, d.Item.ID)

	act := placement.FinalizeDrop(pv, tl.Tracks, d.OriginalTrackID)
	out := tl.Clone()
	err := ApplyDrop(out, act, d.Item, e.NewID)
	observability.Editor().OnDropComplete(ctx, string(act.Kind), time.Since(start), err)
	if err != nil {
		return nil, act, err
	}

	e.Logger.Debug("applied drop",
		"item", act.ItemID,
		"action", act.Kind,
		"track", act.TrackID,
		"index", act.InsertIndex,
		"frame", act.Frame)
	return out, act, nil
}

// Split cuts an item at frame. The returned flag is false, and the timeline
// an unchanged copy, when frame is not strictly inside the item.
func (e *Editor) Split(ctx context.Context, tl *timeline.Timeline, itemID string, frame int) (*timeline.Timeline, bool, error) {
	out := tl.Clone()
	ok, err := ApplySplit(out, itemID, frame, e.NewID)
	if err != nil {
		return nil, false, err
	}
	observability.Editor().OnEdit(ctx, "split", itemID, ok)
	e.Logger.Debug("split", "item", itemID, "frame", frame, "applied", ok)
	return out, ok, nil
}

// Trim moves one edge of an item. The returned flag is false when the
// request was rejected.
func (e *Editor) Trim(ctx context.Context, tl *timeline.Timeline, req placement.TrimRequest) (*timeline.Timeline, bool, error) {
	out := tl.Clone()
	ok, err := ApplyTrim(out, req, e.Options)
	if err != nil {
		return nil, false, err
	}
	observability.Editor().OnEdit(ctx, "trim", req.ItemID, ok)
	e.Logger.Debug("trim", "item", req.ItemID, "edge", req.Edge, "frame", req.Frame, "applied", ok)
	return out, ok, nil
}

// Close releases the cache.
func (e *Editor) Close() error {
	return e.Cache.Close()
}

// checkDrag rejects drags whose item does not agree with the snapshot.
func checkDrag(tl *timeline.Timeline, d placement.Drag) error {
	if d.Item.DurationInFrames <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "dragged item %q has non-positive duration", d.Item.ID)
	}
	_, trackID, onTimeline := tl.Item(d.Item.ID)
	switch {
	case d.OriginalTrackID == "" && onTimeline:
		return errors.New(errors.ErrCodeInvalidInput, "new item id %q already on the timeline", d.Item.ID)
	case d.OriginalTrackID != "" && !onTimeline:
		return errors.New(errors.ErrCodeItemNotFound, "item %q not found", d.Item.ID)
	case d.OriginalTrackID != "" && trackID != d.OriginalTrackID:
		return errors.New(errors.ErrCodeInvalidInput, "item %q is on track %q, not %q", d.Item.ID, trackID, d.OriginalTrackID)
	}
	return nil
}
