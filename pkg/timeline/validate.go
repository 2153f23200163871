package timeline

import (
	"github.com/matzehuels/cliptower/pkg/errors"
)

// Validate checks every data-model invariant: unique ids, known kinds with a
// matching payload, non-negative frames, positive durations, non-negative
// media offsets, and no overlap between items of the same track.
func Validate(tl *Timeline) error {
	trackIDs := make(map[string]bool, len(tl.Tracks))
	itemIDs := make(map[string]bool)

	for _, t := range tl.Tracks {
		if t.ID == "" {
			return errors.New(errors.ErrCodeInvalidTimeline, "track with empty id")
		}
		if trackIDs[t.ID] {
			return errors.New(errors.ErrCodeInvalidTimeline, "duplicate track id %q", t.ID)
		}
		trackIDs[t.ID] = true

		for _, it := range t.Items {
			if err := validateItem(it); err != nil {
				return err
			}
			if itemIDs[it.ID] {
				return errors.New(errors.ErrCodeInvalidTimeline, "duplicate item id %q", it.ID)
			}
			itemIDs[it.ID] = true
		}
		if err := checkOverlap(t); err != nil {
			return err
		}
	}
	return nil
}

func validateItem(it Item) error {
	if it.ID == "" {
		return errors.New(errors.ErrCodeInvalidTimeline, "item with empty id")
	}
	if it.From < 0 {
		return errors.New(errors.ErrCodeInvalidTimeline, "item %q starts at negative frame %d", it.ID, it.From)
	}
	if it.DurationInFrames <= 0 {
		return errors.New(errors.ErrCodeInvalidTimeline, "item %q has non-positive duration %d", it.ID, it.DurationInFrames)
	}
	if err := it.checkPayload(); err != nil {
		return err
	}
	if m := it.Media(); m != nil && m.SourceStartInFrames < 0 {
		return errors.New(errors.ErrCodeInvalidTimeline, "item %q has negative source offset %d", it.ID, m.SourceStartInFrames)
	}
	return nil
}

func checkOverlap(t Track) error {
	sorted := t.SortedByFrom()
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if cur.From < prev.End() {
			return errors.New(errors.ErrCodeInvalidTimeline,
				"items %q [%d,%d) and %q [%d,%d) overlap on track %q",
				prev.ID, prev.From, prev.End(), cur.ID, cur.From, cur.End(), t.ID)
		}
	}
	return nil
}
