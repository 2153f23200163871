package placement

import (
	"slices"

	"github.com/matzehuels/cliptower/pkg/placement/overlap"
	"github.com/matzehuels/cliptower/pkg/timeline"
)

// ActionKind names the three possible drop outcomes.
type ActionKind string

const (
	ActionCreateTrack     ActionKind = "create-track"
	ActionMoveWithinTrack ActionKind = "move-within-track"
	ActionMoveToTrack     ActionKind = "move-to-track"
)

// DropAction is the mutation intent produced on pointer release.
type DropAction struct {
	Kind   ActionKind `json:"kind"`
	ItemID string     `json:"itemId"`

	// FromTrackID is the original track, empty for new items.
	FromTrackID string `json:"fromTrackId,omitempty"`

	// InsertIndex is set for ActionCreateTrack.
	InsertIndex int `json:"insertIndex"`

	// TrackID is set for the two move actions.
	TrackID string `json:"trackId,omitempty"`

	Frame int `json:"frame"`
}

// FinalizeDrop converts the last preview of a drag into a DropAction. The
// target track is re-checked against tracks, so a stale preview still yields
// a non-overlapping placement; a preview naming a track that no longer
// exists becomes a new track at the bottom.
func FinalizeDrop(pv Preview, tracks []timeline.Track, originalTrackID string) DropAction {
	act := DropAction{ItemID: pv.ItemID, FromTrackID: originalTrackID, InsertIndex: -1}

	ti := -1
	if !pv.CreateTrack {
		ti = slices.IndexFunc(tracks, func(t timeline.Track) bool { return t.ID == pv.TrackID })
	}
	if ti < 0 {
		act.Kind = ActionCreateTrack
		act.InsertIndex = len(tracks)
		if pv.CreateTrack {
			act.InsertIndex = min(max(pv.InsertIndex, 0), len(tracks))
		}
		act.Frame = max(pv.SnappedFrame, 0)
		return act
	}

	act.TrackID = pv.TrackID
	act.Frame = overlap.Resolve(tracks[ti], pv.Frame, pv.Duration, pv.ItemID)
	if pv.TrackID == originalTrackID {
		act.Kind = ActionMoveWithinTrack
	} else {
		act.Kind = ActionMoveToTrack
	}
	return act
}
