package timeline

import "slices"

// Track is a row of non-overlapping items.
type Track struct {
	ID     string `json:"id" bson:"id"`
	Name   string `json:"name" bson:"name"`
	Items  []Item `json:"items" bson:"items"`
	Locked bool   `json:"locked,omitempty" bson:"locked,omitempty"`
	Hidden bool   `json:"hidden,omitempty" bson:"hidden,omitempty"`
}

// Item returns the item with the given id and its index in the track.
func (t Track) Item(id string) (Item, int, bool) {
	for i, it := range t.Items {
		if it.ID == id {
			return it, i, true
		}
	}
	return Item{}, -1, false
}

// End returns the end frame of the last item on the track, or 0 if empty.
func (t Track) End() int {
	end := 0
	for _, it := range t.Items {
		end = max(end, it.End())
	}
	return end
}

// Free reports whether [from, from+duration) is unoccupied, ignoring the item
// with id exclude.
func (t Track) Free(from, duration int, exclude string) bool {
	for _, it := range t.Items {
		if it.ID != exclude && it.Overlaps(from, duration) {
			return false
		}
	}
	return true
}

// SortedByFrom returns the items ordered by start frame. The track itself is
// not modified.
func (t Track) SortedByFrom() []Item {
	out := slices.Clone(t.Items)
	slices.SortStableFunc(out, func(a, b Item) int { return a.From - b.From })
	return out
}

// Clone returns a deep copy of the track.
func (t Track) Clone() Track {
	out := t
	out.Items = make([]Item, len(t.Items))
	for i, it := range t.Items {
		out.Items[i] = it.Clone()
	}
	return out
}
