// Package overlap keeps a candidate placement clear of the items already on
// a track.
//
// The policy is push-right only: a colliding candidate is advanced to the end
// of the item it hits and the track is rescanned until a full pass finds no
// collision. A candidate is never moved left.
package overlap

import "github.com/matzehuels/cliptower/pkg/timeline"

// Resolve returns the smallest start frame >= max(start, 0) reachable by
// pushing [start, start+duration) past every item of track it collides with.
// The item with id exclude is ignored, so an item can be re-placed on its own
// track.
//
// Each push moves start to the end of an existing item, so start only grows
// and is bounded by the track's last end frame; the loop always terminates.
func Resolve(track timeline.Track, start, duration int, exclude string) int {
	start = max(start, 0)
	for {
		pushed := false
		for _, it := range track.Items {
			if it.ID == exclude {
				continue
			}
			if it.Overlaps(start, duration) {
				start = it.End()
				pushed = true
				break
			}
		}
		if !pushed {
			return start
		}
	}
}

// Collisions returns the items of track that intersect [start,
// start+duration), ignoring exclude.
func Collisions(track timeline.Track, start, duration int, exclude string) []timeline.Item {
	var out []timeline.Item
	for _, it := range track.Items {
		if it.ID != exclude && it.Overlaps(start, duration) {
			out = append(out, it)
		}
	}
	return out
}
