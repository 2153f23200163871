package snap

import (
	"math"

	"github.com/matzehuels/cliptower/pkg/timeline"
)

// GridFrames is the default grid interval.
const GridFrames = 5

// AnchorKind identifies what a snap target belongs to.
type AnchorKind string

const (
	AnchorItemStart  AnchorKind = "item-start"
	AnchorItemEnd    AnchorKind = "item-end"
	AnchorTrackStart AnchorKind = "track-start"
	AnchorPlayhead   AnchorKind = "playhead"
	AnchorGrid       AnchorKind = "grid"
)

// Anchor is a frame a candidate may snap to.
type Anchor struct {
	Frame  int        `json:"frame"`
	Kind   AnchorKind `json:"kind"`
	ItemID string     `json:"itemId,omitempty"`
}

// Options controls a snap query.
type Options struct {
	// ExcludeItemID is left out of the item-edge tier, normally the item
	// being dragged or trimmed.
	ExcludeItemID string

	// Playhead is the current playhead frame.
	Playhead int

	// Enabled turns snapping on. When false every query returns its input.
	Enabled bool

	// Threshold is the exclusive maximum snap distance in frames.
	Threshold int

	// ItemEdgesOnly restricts the query to the item-edge tier.
	ItemEdgesOnly bool

	// Grid overrides GridFrames when positive.
	Grid int
}

func (o Options) grid() int {
	if o.Grid > 0 {
		return o.Grid
	}
	return GridFrames
}

// Result is the outcome of a single-frame snap.
type Result struct {
	Frame   int    `json:"frame"`
	Target  Anchor `json:"target"`
	Snapped bool   `json:"snapped"`
}

// Resolve snaps frame to the best anchor of the highest tier that has one
// within the threshold. If no tier matches, frame is returned unchanged with
// Snapped false.
func Resolve(frame int, tracks []timeline.Track, opts Options) Result {
	miss := Result{Frame: frame}
	if !opts.Enabled {
		return miss
	}

	tiers := [][]Anchor{ItemEdges(tracks, opts.ExcludeItemID)}
	if !opts.ItemEdgesOnly {
		tiers = append(tiers,
			[]Anchor{{Frame: 0, Kind: AnchorTrackStart}, {Frame: opts.Playhead, Kind: AnchorPlayhead}},
			[]Anchor{{Frame: nearestGrid(frame, opts.grid()), Kind: AnchorGrid}},
		)
	}

	for _, tier := range tiers {
		if a, d, ok := nearest(frame, tier); ok && d < opts.Threshold {
			return Result{Frame: a.Frame, Target: a, Snapped: true}
		}
	}
	return miss
}

// ItemEdges returns the start and end anchors of every item on every track
// except the one with id exclude.
func ItemEdges(tracks []timeline.Track, exclude string) []Anchor {
	var out []Anchor
	for _, t := range tracks {
		for _, it := range t.Items {
			if it.ID == exclude {
				continue
			}
			out = append(out,
				Anchor{Frame: it.From, Kind: AnchorItemStart, ItemID: it.ID},
				Anchor{Frame: it.End(), Kind: AnchorItemEnd, ItemID: it.ID},
			)
		}
	}
	return out
}

// nearest returns the first anchor with minimum distance to frame.
func nearest(frame int, anchors []Anchor) (Anchor, int, bool) {
	best, bestDist := Anchor{}, math.MaxInt
	for _, a := range anchors {
		if d := abs(a.Frame - frame); d < bestDist {
			best, bestDist = a, d
		}
	}
	return best, bestDist, bestDist != math.MaxInt
}

func nearestGrid(frame, grid int) int {
	return int(math.Round(float64(frame)/float64(grid))) * grid
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
