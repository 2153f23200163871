package placement

import (
	"math"
	"slices"

	"github.com/matzehuels/cliptower/pkg/placement/snap"
	"github.com/matzehuels/cliptower/pkg/timeline"
)

// TrimRequest moves one edge of an item to Frame.
type TrimRequest struct {
	ItemID string    `json:"itemId"`
	Edge   snap.Edge `json:"edge"`
	Frame  int       `json:"frame"`
}

// Trim moves the requested edge of the item, snapping it like a dragged edge
// and keeping the item off its neighbours. A left trim shifts the media
// offset with the edge and cannot reveal frames before the start of the
// media; a right trim cannot run past its end. A result shorter than the
// minimum duration is rejected: the item is returned unchanged with ok false.
func Trim(req TrimRequest, tracks []timeline.Track, currentFrame int, opts Options) (timeline.Item, bool) {
	it, track, found := findItem(tracks, req.ItemID)
	if !found {
		return timeline.Item{}, false
	}
	target := snap.Resolve(req.Frame, tracks, opts.snapOptions(it.ID, currentFrame)).Frame
	lo, hi := neighbours(track, it)
	m := it.Media()

	out := it.Clone()
	switch req.Edge {
	case snap.EdgeLeft:
		if m != nil {
			lo = max(lo, it.From-m.SourceStartInFrames)
		}
		from := min(max(target, lo), it.End())
		out.From = from
		out.DurationInFrames = it.End() - from
		if om := out.Media(); om != nil {
			om.SourceStartInFrames += from - it.From
		}
	case snap.EdgeRight:
		if m != nil && m.SourceDurationInFrames > 0 {
			hi = min(hi, it.From+m.SourceDurationInFrames-m.SourceStartInFrames)
		}
		end := max(min(target, hi), it.From)
		out.DurationInFrames = end - it.From
	default:
		return it, false
	}

	if out.DurationInFrames < opts.minDuration() {
		return it, false
	}
	clampFades(&out)
	return out, out.From != it.From || out.DurationInFrames != it.DurationInFrames
}

// neighbours returns the end of the closest item before it and the start of
// the closest item after it on the same track.
func neighbours(t timeline.Track, it timeline.Item) (lo, hi int) {
	hi = math.MaxInt
	for _, o := range t.Items {
		if o.ID == it.ID {
			continue
		}
		if o.End() <= it.From {
			lo = max(lo, o.End())
		}
		if o.From >= it.End() {
			hi = min(hi, o.From)
		}
	}
	return lo, hi
}

func findItem(tracks []timeline.Track, id string) (timeline.Item, timeline.Track, bool) {
	for _, t := range tracks {
		if i := slices.IndexFunc(t.Items, func(it timeline.Item) bool { return it.ID == id }); i >= 0 {
			return t.Items[i], t, true
		}
	}
	return timeline.Item{}, timeline.Track{}, false
}

func clampFades(it *timeline.Item) {
	d := it.DurationInFrames
	if m := it.Media(); m != nil {
		m.FadeInFrames = min(m.FadeInFrames, d)
		m.FadeOutFrames = min(m.FadeOutFrames, d)
	}
	if it.Kind == timeline.KindImage && it.Image != nil {
		it.Image.FadeInFrames = min(it.Image.FadeInFrames, d)
		it.Image.FadeOutFrames = min(it.Image.FadeOutFrames, d)
	}
}
