package editor

import (
	"fmt"
	"testing"

	"github.com/matzehuels/cliptower/pkg/errors"
	"github.com/matzehuels/cliptower/pkg/placement"
	"github.com/matzehuels/cliptower/pkg/placement/snap"
	"github.com/matzehuels/cliptower/pkg/timeline"
)

func seqIDs(prefix string) timeline.IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}

func threeTracks() *timeline.Timeline {
	return &timeline.Timeline{Tracks: []timeline.Track{
		{ID: "t1", Items: []timeline.Item{timeline.NewSolid("a", 0, 30, "#000")}},
		{ID: "t2", Items: []timeline.Item{timeline.NewSolid("b", 200, 30, "#000")}},
		{ID: "t3", Items: []timeline.Item{
			timeline.NewSolid("c", 0, 20, "#000"),
			timeline.NewSolid("d", 60, 10, "#000"),
		}},
	}}
}

func trackIDs(tl *timeline.Timeline) []string {
	out := make([]string, len(tl.Tracks))
	for i, t := range tl.Tracks {
		out[i] = t.ID
	}
	return out
}

func itemIDs(t timeline.Track) []string {
	out := make([]string, len(t.Items))
	for i, it := range t.Items {
		out[i] = it.ID
	}
	return out
}

func TestApplyDrop(t *testing.T) {
	tests := []struct {
		name       string
		act        placement.DropAction
		dragged    func(*timeline.Timeline) timeline.Item
		wantTracks []string
		check      func(t *testing.T, tl *timeline.Timeline)
	}{
		{
			name:       "move to track deletes emptied source",
			act:        placement.DropAction{Kind: placement.ActionMoveToTrack, ItemID: "b", FromTrackID: "t2", TrackID: "t1", Frame: 40},
			wantTracks: []string{"t1", "t3"},
			check: func(t *testing.T, tl *timeline.Timeline) {
				if got := itemIDs(tl.Tracks[0]); fmt.Sprint(got) != "[a b]" {
					t.Errorf("t1 items = %v", got)
				}
				if b := tl.Tracks[0].Items[1]; b.From != 40 {
					t.Errorf("b.From = %d, want 40", b.From)
				}
			},
		},
		{
			name:       "create below shifts for deleted source",
			act:        placement.DropAction{Kind: placement.ActionCreateTrack, ItemID: "a", FromTrackID: "t1", InsertIndex: 3, Frame: 5},
			wantTracks: []string{"t2", "t3", "new1"},
		},
		{
			name:       "create above keeps index",
			act:        placement.DropAction{Kind: placement.ActionCreateTrack, ItemID: "b", FromTrackID: "t2", InsertIndex: 0, Frame: 5},
			wantTracks: []string{"new1", "t1", "t3"},
			check: func(t *testing.T, tl *timeline.Timeline) {
				if it := tl.Tracks[0].Items[0]; it.ID != "b" || it.From != 5 {
					t.Errorf("new track holds %s@%d", it.ID, it.From)
				}
			},
		},
		{
			name:       "create between keeps non-empty source",
			act:        placement.DropAction{Kind: placement.ActionCreateTrack, ItemID: "d", FromTrackID: "t3", InsertIndex: 1, Frame: 60},
			wantTracks: []string{"t1", "new1", "t2", "t3"},
		},
		{
			name:       "move within sole item keeps track",
			act:        placement.DropAction{Kind: placement.ActionMoveWithinTrack, ItemID: "a", FromTrackID: "t1", TrackID: "t1", Frame: 90},
			wantTracks: []string{"t1", "t2", "t3"},
			check: func(t *testing.T, tl *timeline.Timeline) {
				if a := tl.Tracks[0].Items[0]; a.From != 90 {
					t.Errorf("a.From = %d, want 90", a.From)
				}
			},
		},
		{
			name:       "move within re-sorts",
			act:        placement.DropAction{Kind: placement.ActionMoveWithinTrack, ItemID: "c", FromTrackID: "t3", TrackID: "t3", Frame: 80},
			wantTracks: []string{"t1", "t2", "t3"},
			check: func(t *testing.T, tl *timeline.Timeline) {
				if got := itemIDs(tl.Tracks[2]); fmt.Sprint(got) != "[d c]" {
					t.Errorf("t3 items = %v", got)
				}
			},
		},
		{
			name:       "new item onto a track",
			act:        placement.DropAction{Kind: placement.ActionMoveToTrack, ItemID: "n", TrackID: "t2", Frame: 100},
			dragged:    func(*timeline.Timeline) timeline.Item { return timeline.NewText("n", 0, 20, "hi") },
			wantTracks: []string{"t1", "t2", "t3"},
			check: func(t *testing.T, tl *timeline.Timeline) {
				if got := itemIDs(tl.Tracks[1]); fmt.Sprint(got) != "[n b]" {
					t.Errorf("t2 items = %v", got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := threeTracks()
			var dragged timeline.Item
			if tt.dragged != nil {
				dragged = tt.dragged(tl)
			} else {
				dragged, _, _ = tl.Item(tt.act.ItemID)
			}

			if err := ApplyDrop(tl, tt.act, dragged, seqIDs("new")); err != nil {
				t.Fatalf("ApplyDrop: %v", err)
			}
			if got := trackIDs(tl); fmt.Sprint(got) != fmt.Sprint(tt.wantTracks) {
				t.Errorf("tracks = %v, want %v", got, tt.wantTracks)
			}
			if err := timeline.Validate(tl); err != nil {
				t.Errorf("result invalid: %v", err)
			}
			if tt.check != nil {
				tt.check(t, tl)
			}
		})
	}
}

func TestApplyDropErrors(t *testing.T) {
	a := timeline.NewSolid("a", 0, 30, "#000")
	tests := []struct {
		name     string
		act      placement.DropAction
		dragged  timeline.Item
		wantCode errors.Code
	}{
		{"item mismatch", placement.DropAction{Kind: placement.ActionMoveToTrack, ItemID: "b", TrackID: "t1"}, a, errors.ErrCodeInvalidInput},
		{"missing target track", placement.DropAction{Kind: placement.ActionMoveToTrack, ItemID: "a", FromTrackID: "t1", TrackID: "zz"}, a, errors.ErrCodeTrackNotFound},
		{"within on wrong track", placement.DropAction{Kind: placement.ActionMoveWithinTrack, ItemID: "a", FromTrackID: "t2", TrackID: "t2"}, a, errors.ErrCodeItemNotFound},
		{"unknown kind", placement.DropAction{Kind: "teleport", ItemID: "a", FromTrackID: "t1"}, a, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ApplyDrop(threeTracks(), tt.act, tt.dragged, seqIDs("x"))
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("err = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestApplySplit(t *testing.T) {
	tl := threeTracks()
	ok, err := ApplySplit(tl, "d", 65, seqIDs("s"))
	if err != nil || !ok {
		t.Fatalf("ApplySplit = (%v, %v)", ok, err)
	}
	if got := itemIDs(tl.Tracks[2]); fmt.Sprint(got) != "[c d s1]" {
		t.Errorf("t3 items = %v", got)
	}
	if err := timeline.Validate(tl); err != nil {
		t.Errorf("result invalid: %v", err)
	}

	ok, err = ApplySplit(tl, "c", 20, seqIDs("s"))
	if err != nil || ok {
		t.Errorf("split at item end = (%v, %v), want no-op", ok, err)
	}

	if _, err := ApplySplit(tl, "missing", 5, seqIDs("s")); !errors.Is(err, errors.ErrCodeItemNotFound) {
		t.Errorf("missing item err = %v", err)
	}
}

func TestApplyTrim(t *testing.T) {
	tl := threeTracks()
	tl.CurrentFrame = 500
	opts := placement.DefaultOptions()

	ok, err := ApplyTrim(tl, placement.TrimRequest{ItemID: "c", Edge: snap.EdgeRight, Frame: 41}, opts)
	if err != nil || !ok {
		t.Fatalf("ApplyTrim = (%v, %v)", ok, err)
	}
	if c, _, _ := tl.Item("c"); c.DurationInFrames != 40 {
		t.Errorf("c duration = %d, want 40", c.DurationInFrames)
	}

	ok, err = ApplyTrim(tl, placement.TrimRequest{ItemID: "c", Edge: snap.EdgeRight, Frame: 4}, opts)
	if err != nil || ok {
		t.Errorf("trim below floor = (%v, %v), want rejected", ok, err)
	}

	if _, err := ApplyTrim(tl, placement.TrimRequest{ItemID: "zz", Edge: snap.EdgeLeft}, opts); !errors.Is(err, errors.ErrCodeItemNotFound) {
		t.Errorf("missing item err = %v", err)
	}
}
