package placement

import (
	"testing"

	"github.com/matzehuels/cliptower/pkg/placement/snap"
	"github.com/matzehuels/cliptower/pkg/placement/zone"
	"github.com/matzehuels/cliptower/pkg/timeline"
)

// pointerFor returns the pointer position that puts the item's left edge on
// frame with its top edge at top, for a grab at (10, 28).
func pointerFor(opts Options, frame int, top float64) Pointer {
	return Pointer{X: opts.XAt(frame) + 10, Y: top + 28}
}

func drag(it timeline.Item, from string) Drag {
	return Drag{Item: it, OriginalTrackID: from, GrabOffsetX: 10, GrabOffsetY: 28}
}

func TestBuildPreview(t *testing.T) {
	opts := DefaultOptions()
	a := timeline.NewSolid("a", 0, 30, "#f00")
	b := timeline.NewSolid("b", 200, 30, "#0f0")
	c := timeline.NewSolid("c", 0, 20, "#00f")

	tests := []struct {
		name      string
		tracks    []timeline.Track
		drag      Drag
		frame     int
		top       float64
		playhead  int
		snapOff   bool
		wantTrack string
		wantNew   bool
		wantIndex int
		wantFrame int
		wantSnap  int
		wantGuide *int
		wantEdge  snap.Edge
		wantZone  zone.Reason
	}{
		{
			name: "item edge snap on another track",
			tracks: []timeline.Track{
				{ID: "t1", Items: []timeline.Item{a}},
				{ID: "t2", Items: []timeline.Item{b}},
			},
			drag:      drag(b, "t2"),
			frame:     32,
			top:       zone.RestingTop(0, opts.ItemHeight, opts.geometry()),
			playhead:  1000,
			wantTrack: "t1",
			wantIndex: -1,
			wantFrame: 30,
			wantSnap:  30,
			wantGuide: ptr(30),
			wantEdge:  snap.EdgeLeft,
			wantZone:  zone.ReasonInsideRow,
		},
		{
			name: "snap disabled keeps raw frame",
			tracks: []timeline.Track{
				{ID: "t1", Items: []timeline.Item{a}},
				{ID: "t2", Items: []timeline.Item{b}},
			},
			drag:      drag(b, "t2"),
			frame:     32,
			top:       zone.RestingTop(0, opts.ItemHeight, opts.geometry()),
			playhead:  1000,
			snapOff:   true,
			wantTrack: "t1",
			wantIndex: -1,
			wantFrame: 32,
			wantSnap:  32,
			wantZone:  zone.ReasonInsideRow,
		},
		{
			name: "push right drops the guide",
			tracks: []timeline.Track{
				{ID: "t1", Items: []timeline.Item{c}},
				{ID: "t2", Items: []timeline.Item{b}},
			},
			drag:      drag(b, "t2"),
			frame:     15,
			top:       zone.RestingTop(0, opts.ItemHeight, opts.geometry()),
			playhead:  1000,
			wantTrack: "t1",
			wantIndex: -1,
			wantFrame: 20,
			wantSnap:  15,
			wantZone:  zone.ReasonInsideRow,
		},
		{
			name: "below last track creates at bottom",
			tracks: []timeline.Track{
				{ID: "t1", Items: []timeline.Item{a, timeline.NewSolid("x", 100, 10, "#fff")}},
				{ID: "t2", Items: []timeline.Item{b}},
			},
			drag:      drag(a, "t1"),
			frame:     50,
			top:       144,
			playhead:  1000,
			wantNew:   true,
			wantIndex: 2,
			wantFrame: 50,
			wantSnap:  50,
			wantGuide: ptr(50),
			wantEdge:  snap.EdgeLeft,
			wantZone:  zone.ReasonBottomExtreme,
		},
		{
			name: "new item lands on hovered track",
			tracks: []timeline.Track{
				{ID: "t1", Items: []timeline.Item{a}},
				{ID: "t2", Items: []timeline.Item{b}},
			},
			drag:      drag(timeline.NewText("new", 0, 30, "hi"), ""),
			frame:     231,
			top:       zone.RestingTop(1, opts.ItemHeight, opts.geometry()),
			playhead:  1000,
			wantTrack: "t2",
			wantIndex: -1,
			wantFrame: 230,
			wantSnap:  230,
			wantGuide: ptr(230),
			wantEdge:  snap.EdgeLeft,
			wantZone:  zone.ReasonInsideRow,
		},
		{
			name: "playhead snap when no item edge is near",
			tracks: []timeline.Track{
				{ID: "t1", Items: []timeline.Item{a}},
			},
			drag:      drag(timeline.NewText("new", 0, 30, "hi"), ""),
			frame:     73,
			top:       zone.RestingTop(0, opts.ItemHeight, opts.geometry()),
			playhead:  71,
			wantTrack: "t1",
			wantIndex: -1,
			wantFrame: 71,
			wantSnap:  71,
			wantGuide: ptr(71),
			wantEdge:  snap.EdgeLeft,
			wantZone:  zone.ReasonInsideRow,
		},
		{
			name:      "empty timeline creates first track",
			drag:      drag(timeline.NewText("new", 0, 30, "hi"), ""),
			frame:     12,
			top:       300,
			playhead:  1000,
			wantNew:   true,
			wantIndex: 0,
			wantFrame: 10,
			wantSnap:  10,
			wantGuide: ptr(10),
			wantEdge:  snap.EdgeLeft,
			wantZone:  zone.ReasonNoTracks,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := opts
			o.SnapEnabled = !tt.snapOff
			p := pointerFor(o, tt.frame, tt.top)
			pv := BuildPreview(p, tt.drag, tt.tracks, tt.playhead, o)

			if pv.TrackID != tt.wantTrack || pv.CreateTrack != tt.wantNew || pv.InsertIndex != tt.wantIndex {
				t.Fatalf("target = (%q, new=%v, idx=%d), want (%q, new=%v, idx=%d)",
					pv.TrackID, pv.CreateTrack, pv.InsertIndex, tt.wantTrack, tt.wantNew, tt.wantIndex)
			}
			if pv.Frame != tt.wantFrame || pv.SnappedFrame != tt.wantSnap {
				t.Errorf("frame = %d (snapped %d), want %d (snapped %d)", pv.Frame, pv.SnappedFrame, tt.wantFrame, tt.wantSnap)
			}
			if !sameGuide(pv.GuideFrame, tt.wantGuide) {
				t.Errorf("guide = %v, want %v", deref(pv.GuideFrame), deref(tt.wantGuide))
			}
			if pv.Edge != tt.wantEdge {
				t.Errorf("edge = %q, want %q", pv.Edge, tt.wantEdge)
			}
			if pv.Zone != tt.wantZone {
				t.Errorf("zone = %q, want %q", pv.Zone, tt.wantZone)
			}
			if pv.ItemID != tt.drag.Item.ID || pv.Duration != tt.drag.Item.DurationInFrames {
				t.Errorf("preview item = (%q, %d)", pv.ItemID, pv.Duration)
			}
		})
	}
}

func TestBuildPreviewClampsNegativeFrames(t *testing.T) {
	opts := DefaultOptions()
	opts.SnapEnabled = false
	tracks := []timeline.Track{{ID: "t1", Items: []timeline.Item{timeline.NewSolid("a", 100, 10, "#000")}}}
	d := drag(timeline.NewSolid("n", 0, 10, "#000"), "")

	pv := BuildPreview(Pointer{X: 0, Y: 36}, d, tracks, 0, opts)
	if pv.Frame != 0 || pv.SnappedFrame != 0 {
		t.Errorf("frame = %d, want 0", pv.Frame)
	}
}

func TestBuildPreviewDoesNotMutate(t *testing.T) {
	opts := DefaultOptions()
	tracks := []timeline.Track{
		{ID: "t1", Items: []timeline.Item{timeline.NewSolid("a", 0, 20, "#000")}},
		{ID: "t2", Items: []timeline.Item{timeline.NewSolid("b", 200, 30, "#000")}},
	}
	before := tracks[0].Clone()
	d := drag(tracks[1].Items[0], "t2")

	for x := 0.0; x < 400; x += 7 {
		for y := -40.0; y < 200; y += 11 {
			BuildPreview(Pointer{X: x, Y: y}, d, tracks, 50, opts)
		}
	}
	got := tracks[0].Items
	if len(tracks) != 2 || len(got) != len(before.Items) || got[0].From != before.Items[0].From || got[0].DurationInFrames != before.Items[0].DurationInFrames {
		t.Error("BuildPreview modified its input tracks")
	}
}

func TestBuildPreviewNeverOverlaps(t *testing.T) {
	opts := DefaultOptions()
	tracks := []timeline.Track{
		{ID: "t1", Items: []timeline.Item{
			timeline.NewSolid("a", 0, 20, "#000"),
			timeline.NewSolid("b", 25, 10, "#000"),
			timeline.NewSolid("c", 60, 40, "#000"),
		}},
		{ID: "t2", Items: []timeline.Item{timeline.NewSolid("d", 10, 30, "#000")}},
	}
	d := drag(timeline.NewSolid("n", 0, 18, "#000"), "")

	for x := 0.0; x < 600; x += 3 {
		for _, top := range []float64{8, 80} {
			pv := BuildPreview(Pointer{X: x + d.GrabOffsetX, Y: top + d.GrabOffsetY}, d, tracks, 42, opts)
			if pv.CreateTrack {
				continue
			}
			tr := tracks[0]
			if pv.TrackID == "t2" {
				tr = tracks[1]
			}
			if !tr.Free(pv.Frame, pv.Duration, "") {
				t.Fatalf("x=%v: preview frame %d overlaps on %s", x, pv.Frame, pv.TrackID)
			}
			if pv.Frame < 0 {
				t.Fatalf("x=%v: negative frame %d", x, pv.Frame)
			}
		}
	}
}

func ptr(v int) *int { return &v }

func deref(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func sameGuide(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
