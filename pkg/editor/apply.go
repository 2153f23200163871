package editor

import (
	"github.com/matzehuels/cliptower/pkg/errors"
	"github.com/matzehuels/cliptower/pkg/placement"
	"github.com/matzehuels/cliptower/pkg/timeline"
)

// ApplyDrop performs act on tl. dragged is the item as it was when the drag
// started; for items already on the timeline it must match act.ItemID.
// newID names a track created by the drop.
func ApplyDrop(tl *timeline.Timeline, act placement.DropAction, dragged timeline.Item, newID timeline.IDFunc) error {
	if dragged.ID != act.ItemID {
		return errors.New(errors.ErrCodeInvalidInput, "dragged item %q does not match action item %q", dragged.ID, act.ItemID)
	}
	it := dragged.Clone()
	it.From = max(act.Frame, 0)

	if act.Kind == placement.ActionMoveWithinTrack {
		if _, trackID, ok := tl.Item(act.ItemID); !ok || trackID != act.TrackID {
			return errors.New(errors.ErrCodeItemNotFound, "item %q not on track %q", act.ItemID, act.TrackID)
		}
		if err := tl.ReplaceItem(it); err != nil {
			return err
		}
		sortTrack(tl, act.TrackID)
		return nil
	}

	src := -1
	if act.FromTrackID != "" {
		src = tl.TrackIndex(act.FromTrackID)
		if _, err := tl.RemoveItem(act.ItemID); err != nil {
			return err
		}
	}
	srcDeleted := src >= 0 && tl.TrackIndex(act.FromTrackID) < 0

	switch act.Kind {
	case placement.ActionCreateTrack:
		at := act.InsertIndex
		if srcDeleted && src < at {
			at--
		}
		tl.InsertTrack(at, timeline.Track{ID: newID(), Items: []timeline.Item{it}})
		return nil
	case placement.ActionMoveToTrack:
		if err := tl.AddItem(act.TrackID, it); err != nil {
			return err
		}
		sortTrack(tl, act.TrackID)
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown drop action %q", act.Kind)
	}
}

// ApplySplit splits the item at frame and inserts the second piece, named
// by newID, right after the first. It reports false when frame is not
// strictly inside the item.
func ApplySplit(tl *timeline.Timeline, itemID string, frame int, newID timeline.IDFunc) (bool, error) {
	it, _, ok := tl.Item(itemID)
	if !ok {
		return false, errors.New(errors.ErrCodeItemNotFound, "item %q not found", itemID)
	}
	if !placement.CanSplit(it, frame) {
		return false, nil
	}
	first, second, _ := placement.Split(it, frame, newID())
	if err := tl.ReplaceItem(first); err != nil {
		return false, err
	}
	return true, tl.InsertItemAfter(first.ID, second)
}

// ApplyTrim moves one edge of an item. It reports false when the request
// was rejected or changed nothing.
func ApplyTrim(tl *timeline.Timeline, req placement.TrimRequest, opts placement.Options) (bool, error) {
	if _, _, ok := tl.Item(req.ItemID); !ok {
		return false, errors.New(errors.ErrCodeItemNotFound, "item %q not found", req.ItemID)
	}
	updated, ok := placement.Trim(req, tl.Tracks, tl.CurrentFrame, opts)
	if !ok {
		return false, nil
	}
	return true, tl.ReplaceItem(updated)
}

func sortTrack(tl *timeline.Timeline, trackID string) {
	if i := tl.TrackIndex(trackID); i >= 0 {
		tl.Tracks[i].Items = tl.Tracks[i].SortedByFrom()
	}
}
