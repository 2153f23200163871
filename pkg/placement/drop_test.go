package placement

import (
	"testing"

	"github.com/matzehuels/cliptower/pkg/timeline"
)

func TestFinalizeDrop(t *testing.T) {
	tracks := []timeline.Track{
		{ID: "t1", Items: []timeline.Item{
			timeline.NewSolid("a", 0, 30, "#000"),
			timeline.NewSolid("b", 60, 10, "#000"),
		}},
		{ID: "t2", Items: []timeline.Item{timeline.NewSolid("d", 0, 50, "#000")}},
	}

	tests := []struct {
		name     string
		pv       Preview
		original string
		want     DropAction
	}{
		{
			name:     "create track uses snapped frame",
			pv:       Preview{ItemID: "a", Duration: 30, CreateTrack: true, InsertIndex: 1, Frame: 50, SnappedFrame: 50},
			original: "t1",
			want:     DropAction{Kind: ActionCreateTrack, ItemID: "a", FromTrackID: "t1", InsertIndex: 1, Frame: 50},
		},
		{
			name:     "create index is clamped",
			pv:       Preview{ItemID: "a", Duration: 30, CreateTrack: true, InsertIndex: 9, SnappedFrame: 5},
			original: "t1",
			want:     DropAction{Kind: ActionCreateTrack, ItemID: "a", FromTrackID: "t1", InsertIndex: 2, Frame: 5},
		},
		{
			name:     "vanished target falls back to new bottom track",
			pv:       Preview{ItemID: "b", Duration: 10, TrackID: "gone", InsertIndex: -1, Frame: 70, SnappedFrame: 65},
			original: "t1",
			want:     DropAction{Kind: ActionCreateTrack, ItemID: "b", FromTrackID: "t1", InsertIndex: 2, Frame: 65},
		},
		{
			name:     "same track is a move within",
			pv:       Preview{ItemID: "b", Duration: 10, TrackID: "t1", InsertIndex: -1, Frame: 40, SnappedFrame: 40},
			original: "t1",
			want:     DropAction{Kind: ActionMoveWithinTrack, ItemID: "b", FromTrackID: "t1", InsertIndex: -1, TrackID: "t1", Frame: 40},
		},
		{
			name:     "stale frame is pushed clear of neighbours",
			pv:       Preview{ItemID: "b", Duration: 10, TrackID: "t2", InsertIndex: -1, Frame: 10, SnappedFrame: 10},
			original: "t1",
			want:     DropAction{Kind: ActionMoveToTrack, ItemID: "b", FromTrackID: "t1", InsertIndex: -1, TrackID: "t2", Frame: 50},
		},
		{
			name: "new item moves onto a track",
			pv:   Preview{ItemID: "n", Duration: 10, TrackID: "t1", InsertIndex: -1, Frame: 30, SnappedFrame: 30},
			want: DropAction{Kind: ActionMoveToTrack, ItemID: "n", InsertIndex: -1, TrackID: "t1", Frame: 30},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FinalizeDrop(tt.pv, tracks, tt.original)
			if got != tt.want {
				t.Errorf("FinalizeDrop() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPreviewThenDrop(t *testing.T) {
	opts := DefaultOptions()
	tracks := []timeline.Track{
		{ID: "t1", Items: []timeline.Item{timeline.NewSolid("a", 0, 30, "#000")}},
		{ID: "t2", Items: []timeline.Item{timeline.NewSolid("b", 200, 30, "#000")}},
	}
	d := drag(tracks[1].Items[0], "t2")

	pv := BuildPreview(pointerFor(opts, 32, 8), d, tracks, 1000, opts)
	act := FinalizeDrop(pv, tracks, "t2")

	want := DropAction{Kind: ActionMoveToTrack, ItemID: "b", FromTrackID: "t2", InsertIndex: -1, TrackID: "t1", Frame: 30}
	if act != want {
		t.Errorf("drop = %+v, want %+v", act, want)
	}
}
