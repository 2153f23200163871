package placement

import "github.com/matzehuels/cliptower/pkg/timeline"

// CanSplit reports whether frame lies strictly inside the item.
func CanSplit(it timeline.Item, frame int) bool {
	return it.Contains(frame)
}

// Split cuts it at frame into two adjacent pieces. The first piece keeps the
// id; the second gets newID. For video and audio the second piece resumes the
// media where the first stops. Fade-in stays on the first piece and fade-out
// moves to the second. If frame is not strictly inside the item, it is
// returned unchanged with ok false.
func Split(it timeline.Item, frame int, newID string) (first, second timeline.Item, ok bool) {
	if !CanSplit(it, frame) {
		return it, timeline.Item{}, false
	}

	first = it.Clone()
	first.DurationInFrames = frame - it.From

	second = it.Clone()
	second.ID = newID
	second.From = frame
	second.DurationInFrames = it.End() - frame

	switch it.Kind {
	case timeline.KindVideo, timeline.KindAudio:
		a, b := first.Media(), second.Media()
		if a == nil || b == nil {
			break
		}
		b.SourceStartInFrames = a.SourceStartInFrames + first.DurationInFrames
		a.FadeOutFrames = 0
		b.FadeInFrames = 0
		a.FadeInFrames = min(a.FadeInFrames, first.DurationInFrames)
		b.FadeOutFrames = min(b.FadeOutFrames, second.DurationInFrames)
	case timeline.KindImage:
		if first.Image == nil {
			break
		}
		first.Image.FadeOutFrames = 0
		second.Image.FadeInFrames = 0
		first.Image.FadeInFrames = min(first.Image.FadeInFrames, first.DurationInFrames)
		second.Image.FadeOutFrames = min(second.Image.FadeOutFrames, second.DurationInFrames)
	case timeline.KindSolid, timeline.KindText:
	}
	return first, second, true
}
