package placement

import (
	"slices"

	"github.com/matzehuels/cliptower/pkg/placement/overlap"
	"github.com/matzehuels/cliptower/pkg/placement/snap"
	"github.com/matzehuels/cliptower/pkg/placement/zone"
	"github.com/matzehuels/cliptower/pkg/timeline"
)

// Pointer is a pointer position in content pixels.
type Pointer struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Drag describes the item being dragged.
type Drag struct {
	Item timeline.Item `json:"item"`

	// OriginalTrackID is the track the item is dragged from. Empty for
	// items dropped in from outside the timeline.
	OriginalTrackID string `json:"originalTrackId,omitempty"`

	// GrabOffsetX and GrabOffsetY locate the pointer inside the item box,
	// measured from its top-left corner.
	GrabOffsetX float64 `json:"grabOffsetX"`
	GrabOffsetY float64 `json:"grabOffsetY"`
}

// Preview is the display-only outcome of one drag update.
type Preview struct {
	ItemID   string `json:"itemId"`
	Duration int    `json:"duration"`

	// TrackID is the existing target track, empty when CreateTrack is set.
	TrackID     string `json:"trackId,omitempty"`
	CreateTrack bool   `json:"createTrack"`
	InsertIndex int    `json:"insertIndex"`

	// Frame is the start frame the item would land on.
	Frame int `json:"frame"`

	// SnappedFrame is the snapped start before overlap resolution. A new
	// track has no neighbours, so create-track drops use it directly.
	SnappedFrame int `json:"snappedFrame"`

	// GuideFrame is where to draw the snap guide line, nil for none.
	GuideFrame *int      `json:"guideFrame,omitempty"`
	Edge       snap.Edge `json:"edge,omitempty"`

	Zone zone.Reason `json:"zone"`
}

// BuildPreview computes where the dragged item would land for pointer p.
func BuildPreview(p Pointer, d Drag, tracks []timeline.Track, currentFrame int, opts Options) Preview {
	it := d.Item
	dur := it.DurationInFrames
	rawFrom := opts.FrameAt(p.X - d.GrabOffsetX)

	src := slices.IndexFunc(tracks, func(t timeline.Track) bool { return t.ID == d.OriginalTrackID })
	srcCount := 0
	if src >= 0 {
		srcCount = len(tracks[src].Items)
	}
	decision := zone.Classify(zone.Input{
		Top:             p.Y - d.GrabOffsetY,
		Height:          opts.ItemHeight,
		TrackCount:      len(tracks),
		SourceIndex:     src,
		SourceItemCount: srcCount,
	}, opts.geometry())

	so := opts.snapOptions(it.ID, currentFrame)
	edgeOnly := so
	edgeOnly.ItemEdgesOnly = true
	res := snap.ResolveRange(rawFrom, dur, tracks, edgeOnly)
	if !res.Snapped {
		res = snap.ResolveRange(rawFrom, dur, tracks, so)
	}
	snapped := max(res.From, 0)

	pv := Preview{
		ItemID:       it.ID,
		Duration:     dur,
		CreateTrack:  decision.CreateTrack,
		InsertIndex:  decision.InsertIndex,
		Frame:        snapped,
		SnappedFrame: snapped,
		Zone:         decision.Reason,
	}
	if res.Snapped {
		guide := res.Target.Frame
		pv.GuideFrame = &guide
		pv.Edge = res.Edge
	}

	if !decision.CreateTrack {
		target := tracks[decision.TrackIndex]
		pv.TrackID = target.ID
		pv.InsertIndex = -1
		pv.Frame = overlap.Resolve(target, snapped, dur, it.ID)
		if pv.Frame != snapped {
			pv.GuideFrame = nil
			pv.Edge = snap.EdgeNone
		}
	}
	return pv
}
