package editor

import (
	"github.com/matzehuels/cliptower/pkg/errors"
	"github.com/matzehuels/cliptower/pkg/placement"
	"github.com/matzehuels/cliptower/pkg/timeline"
)

// Script is a recorded drag: the item being dragged, where it was grabbed,
// every pointer position in order, and whether the drag ended in a drop or
// was abandoned.
type Script struct {
	// ItemID names an item already on the timeline.
	ItemID string `json:"itemId,omitempty"`

	// NewItem is an item dragged in from outside the timeline. Exactly one
	// of ItemID and NewItem is set.
	NewItem *timeline.Item `json:"newItem,omitempty"`

	GrabOffsetX float64 `json:"grabOffsetX"`
	GrabOffsetY float64 `json:"grabOffsetY"`

	Events []placement.Pointer `json:"events"`

	// Cancel abandons the drag after the last event instead of dropping.
	Cancel bool `json:"cancel,omitempty"`
}

// Validate checks the script's shape. It does not look at any timeline.
func (s *Script) Validate() error {
	switch {
	case s.ItemID == "" && s.NewItem == nil:
		return errors.New(errors.ErrCodeInvalidInput, "script names no item")
	case s.ItemID != "" && s.NewItem != nil:
		return errors.New(errors.ErrCodeInvalidInput, "script sets both itemId and newItem")
	case len(s.Events) == 0:
		return errors.New(errors.ErrCodeInvalidInput, "script has no pointer events")
	}
	if s.NewItem != nil {
		if s.NewItem.ID == "" {
			return errors.New(errors.ErrCodeInvalidInput, "new item has no id")
		}
		if s.NewItem.DurationInFrames <= 0 {
			return errors.New(errors.ErrCodeInvalidInput, "new item %q has non-positive duration", s.NewItem.ID)
		}
	}
	return nil
}

// Drag resolves the script's item against tl.
func (s *Script) Drag(tl *timeline.Timeline) (placement.Drag, error) {
	d := placement.Drag{GrabOffsetX: s.GrabOffsetX, GrabOffsetY: s.GrabOffsetY}
	if s.NewItem != nil {
		if _, _, exists := tl.Item(s.NewItem.ID); exists {
			return d, errors.New(errors.ErrCodeInvalidInput, "new item id %q already on the timeline", s.NewItem.ID)
		}
		d.Item = s.NewItem.Clone()
		return d, nil
	}
	it, trackID, ok := tl.Item(s.ItemID)
	if !ok {
		return d, errors.New(errors.ErrCodeItemNotFound, "item %q not found", s.ItemID)
	}
	d.Item = it
	d.OriginalTrackID = trackID
	return d, nil
}
