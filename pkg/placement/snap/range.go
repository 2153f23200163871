package snap

import "github.com/matzehuels/cliptower/pkg/timeline"

// Edge names the side of a moving interval that produced a snap.
type Edge string

const (
	EdgeNone  Edge = ""
	EdgeLeft  Edge = "left"
	EdgeRight Edge = "right"
)

// RangeResult is the outcome of snapping a moving interval.
type RangeResult struct {
	// From is the snapped start frame of the interval.
	From    int    `json:"from"`
	Target  Anchor `json:"target"`
	Snapped bool   `json:"snapped"`
	Edge    Edge   `json:"edge,omitempty"`
}

// ResolveRange snaps the interval [rawFrom, rawFrom+duration). Both edges are
// tried; when both snap the one with the smaller displacement from rawFrom
// wins and ties go to the left edge. A right-edge snap that would move the
// interval before frame 0 is discarded.
func ResolveRange(rawFrom, duration int, tracks []timeline.Track, opts Options) RangeResult {
	left := Resolve(rawFrom, tracks, opts)
	right := Resolve(rawFrom+duration, tracks, opts)

	rightFrom := right.Frame - duration
	rightOK := right.Snapped && rightFrom >= 0

	switch {
	case left.Snapped && rightOK:
		if abs(rightFrom-rawFrom) < abs(left.Frame-rawFrom) {
			return RangeResult{From: rightFrom, Target: right.Target, Snapped: true, Edge: EdgeRight}
		}
		return RangeResult{From: left.Frame, Target: left.Target, Snapped: true, Edge: EdgeLeft}
	case left.Snapped:
		return RangeResult{From: left.Frame, Target: left.Target, Snapped: true, Edge: EdgeLeft}
	case rightOK:
		return RangeResult{From: rightFrom, Target: right.Target, Snapped: true, Edge: EdgeRight}
	}
	return RangeResult{From: rawFrom}
}
