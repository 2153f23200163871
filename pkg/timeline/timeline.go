package timeline

import (
	"slices"

	"github.com/matzehuels/cliptower/pkg/errors"
)

// Timeline is an ordered set of tracks plus the transport and view state of
// the composition. Index 0 is the topmost track.
type Timeline struct {
	Tracks []Track `json:"tracks" bson:"tracks"`

	CurrentFrame      int     `json:"currentFrame" bson:"currentFrame"`
	Zoom              float64 `json:"zoom,omitempty" bson:"zoom,omitempty"`
	Playing           bool    `json:"playing,omitempty" bson:"playing,omitempty"`
	CompositionWidth  int     `json:"compositionWidth,omitempty" bson:"compositionWidth,omitempty"`
	CompositionHeight int     `json:"compositionHeight,omitempty" bson:"compositionHeight,omitempty"`
	FPS               int     `json:"fps,omitempty" bson:"fps,omitempty"`
	DurationInFrames  int     `json:"durationInFrames,omitempty" bson:"durationInFrames,omitempty"`
}

// TrackIndex returns the index of the track with the given id, or -1.
func (tl *Timeline) TrackIndex(id string) int {
	return slices.IndexFunc(tl.Tracks, func(t Track) bool { return t.ID == id })
}

// Track returns the track with the given id.
func (tl *Timeline) Track(id string) (Track, bool) {
	if i := tl.TrackIndex(id); i >= 0 {
		return tl.Tracks[i], true
	}
	return Track{}, false
}

// FindItem locates an item by id and returns its track and item indexes.
func (tl *Timeline) FindItem(id string) (trackIdx, itemIdx int, ok bool) {
	for ti, t := range tl.Tracks {
		if _, ii, found := t.Item(id); found {
			return ti, ii, true
		}
	}
	return -1, -1, false
}

// Item returns the item with the given id and the id of the track holding it.
func (tl *Timeline) Item(id string) (Item, string, bool) {
	ti, ii, ok := tl.FindItem(id)
	if !ok {
		return Item{}, "", false
	}
	return tl.Tracks[ti].Items[ii], tl.Tracks[ti].ID, true
}

// ItemCount returns the total number of items across all tracks.
func (tl *Timeline) ItemCount() int {
	n := 0
	for _, t := range tl.Tracks {
		n += len(t.Items)
	}
	return n
}

// End returns the last occupied frame across all tracks.
func (tl *Timeline) End() int {
	end := 0
	for _, t := range tl.Tracks {
		end = max(end, t.End())
	}
	return end
}

// Clone returns a deep copy of the timeline.
func (tl *Timeline) Clone() *Timeline {
	out := *tl
	out.Tracks = make([]Track, len(tl.Tracks))
	for i, t := range tl.Tracks {
		out.Tracks[i] = t.Clone()
	}
	return &out
}

// RemoveItem removes the item with the given id and returns it. If the item
// was the last one on its track, the track is removed as well.
func (tl *Timeline) RemoveItem(id string) (Item, error) {
	ti, ii, ok := tl.FindItem(id)
	if !ok {
		return Item{}, errors.New(errors.ErrCodeItemNotFound, "item %q not found", id)
	}
	t := &tl.Tracks[ti]
	removed := t.Items[ii]
	t.Items = slices.Delete(t.Items, ii, ii+1)
	if len(t.Items) == 0 {
		tl.Tracks = slices.Delete(tl.Tracks, ti, ti+1)
	}
	return removed, nil
}

// InsertTrack inserts t at index, clamped to [0, len(Tracks)].
func (tl *Timeline) InsertTrack(index int, t Track) {
	index = min(max(index, 0), len(tl.Tracks))
	tl.Tracks = slices.Insert(tl.Tracks, index, t)
}

// AddItem appends it to the track with the given id.
func (tl *Timeline) AddItem(trackID string, it Item) error {
	ti := tl.TrackIndex(trackID)
	if ti < 0 {
		return errors.New(errors.ErrCodeTrackNotFound, "track %q not found", trackID)
	}
	tl.Tracks[ti].Items = append(tl.Tracks[ti].Items, it)
	return nil
}

// ReplaceItem overwrites the item sharing it.ID in place.
func (tl *Timeline) ReplaceItem(it Item) error {
	ti, ii, ok := tl.FindItem(it.ID)
	if !ok {
		return errors.New(errors.ErrCodeItemNotFound, "item %q not found", it.ID)
	}
	tl.Tracks[ti].Items[ii] = it
	return nil
}

// InsertItemAfter places it directly after the item with id anchor on the
// same track. Used when a split produces a second piece.
func (tl *Timeline) InsertItemAfter(anchor string, it Item) error {
	ti, ii, ok := tl.FindItem(anchor)
	if !ok {
		return errors.New(errors.ErrCodeItemNotFound, "item %q not found", anchor)
	}
	tl.Tracks[ti].Items = slices.Insert(tl.Tracks[ti].Items, ii+1, it)
	return nil
}
