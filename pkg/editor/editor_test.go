package editor

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cliptower/pkg/cache"
	"github.com/matzehuels/cliptower/pkg/errors"
	"github.com/matzehuels/cliptower/pkg/observability"
	"github.com/matzehuels/cliptower/pkg/placement"
	"github.com/matzehuels/cliptower/pkg/timeline"
)

func twoTracks() *timeline.Timeline {
	return &timeline.Timeline{Tracks: []timeline.Track{
		{ID: "t1", Items: []timeline.Item{timeline.NewSolid("a", 0, 30, "#000")}},
		{ID: "t2", Items: []timeline.Item{timeline.NewSolid("b", 200, 30, "#000")}},
	}}
}

func newTestEditor(t *testing.T, c cache.Cache) *Editor {
	t.Helper()
	e := New(placement.DefaultOptions(), c, nil, log.New(io.Discard))
	e.NewID = seqIDs("new")
	return e
}

// at returns the pointer that puts the left edge of an item grabbed at
// (10, 28) on frame, resting in row.
func at(frame, row int) placement.Pointer {
	opts := placement.DefaultOptions()
	return placement.Pointer{X: opts.XAt(frame) + 10, Y: float64(row)*opts.TrackHeight + 8 + 28}
}

func TestEditorDrop(t *testing.T) {
	e := newTestEditor(t, nil)
	tl := twoTracks()
	b, _, _ := tl.Item("b")
	d := placement.Drag{Item: b, OriginalTrackID: "t2", GrabOffsetX: 10, GrabOffsetY: 28}

	out, act, err := e.Drop(context.Background(), tl, d, at(32, 0))
	if err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if act.Kind != placement.ActionMoveToTrack || act.TrackID != "t1" || act.Frame != 30 {
		t.Errorf("action = %+v", act)
	}
	if len(out.Tracks) != 1 || len(out.Tracks[0].Items) != 2 {
		t.Errorf("result tracks = %+v", out.Tracks)
	}
	if len(tl.Tracks) != 2 {
		t.Error("Drop modified its input snapshot")
	}
}

func TestEditorDropRejectsInconsistentDrags(t *testing.T) {
	e := newTestEditor(t, nil)
	tl := twoTracks()
	a, _, _ := tl.Item("a")

	tests := []struct {
		name     string
		drag     placement.Drag
		wantCode errors.Code
	}{
		{"new item reuses id", placement.Drag{Item: a}, errors.ErrCodeInvalidInput},
		{"wrong source track", placement.Drag{Item: a, OriginalTrackID: "t2"}, errors.ErrCodeInvalidInput},
		{"unknown item", placement.Drag{Item: timeline.NewSolid("zz", 0, 10, "#000"), OriginalTrackID: "t1"}, errors.ErrCodeItemNotFound},
		{"zero duration", placement.Drag{Item: timeline.NewSolid("n", 0, 0, "#000")}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := e.Drop(context.Background(), tl, tt.drag, at(10, 0))
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("err = %v, want %s", err, tt.wantCode)
			}
		})
	}
}

func TestEditorSplitAndTrim(t *testing.T) {
	e := newTestEditor(t, nil)
	tl := twoTracks()
	ctx := context.Background()

	out, ok, err := e.Split(ctx, tl, "b", 215)
	if err != nil || !ok {
		t.Fatalf("Split = (%v, %v)", ok, err)
	}
	if len(out.Tracks[1].Items) != 2 || len(tl.Tracks[1].Items) != 1 {
		t.Error("Split did not produce a new snapshot")
	}

	_, ok, err = e.Trim(ctx, out, placement.TrimRequest{ItemID: "a", Edge: "right", Frame: 3})
	if err != nil || ok {
		t.Errorf("Trim below floor = (%v, %v), want rejected", ok, err)
	}
}

func TestReplayUsesCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	e := newTestEditor(t, fc)
	ctx := context.Background()
	tl := twoTracks()
	s := &Script{
		ItemID:      "b",
		GrabOffsetX: 10,
		GrabOffsetY: 28,
		Events:      []placement.Pointer{at(100, 1), at(60, 0), at(32, 0)},
	}

	first, hit, err := e.ReplayWithCacheInfo(ctx, tl, s)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if hit {
		t.Error("first replay reported a cache hit")
	}
	if len(first.Previews) != 3 {
		t.Fatalf("previews = %d, want 3", len(first.Previews))
	}
	if first.Action == nil || first.Action.Frame != 30 || first.Action.TrackID != "t1" {
		t.Fatalf("action = %+v", first.Action)
	}
	if len(first.Timeline.Tracks) != 1 {
		t.Errorf("emptied source track survived: %v", trackIDs(first.Timeline))
	}

	second, hit, err := e.ReplayWithCacheInfo(ctx, tl, s)
	if err != nil {
		t.Fatalf("cached Replay: %v", err)
	}
	if !hit {
		t.Error("second replay missed the cache")
	}
	if *second.Action != *first.Action || len(second.Timeline.Tracks) != 1 {
		t.Errorf("cached result differs: %+v", second.Action)
	}
}

func TestReplayCancel(t *testing.T) {
	e := newTestEditor(t, nil)
	tl := twoTracks()
	s := &Script{ItemID: "a", GrabOffsetX: 10, GrabOffsetY: 28, Events: []placement.Pointer{at(300, 3)}, Cancel: true}

	res, err := e.Replay(context.Background(), tl, s)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if res.Action != nil {
		t.Errorf("cancelled drag produced %+v", res.Action)
	}
	if len(res.Previews) != 1 || !res.Previews[0].CreateTrack {
		t.Errorf("preview = %+v", res.Previews)
	}
	if ids := trackIDs(res.Timeline); len(ids) != 2 || ids[0] != "t1" {
		t.Errorf("cancelled drag changed tracks: %v", ids)
	}
}

func TestReplayNewItem(t *testing.T) {
	e := newTestEditor(t, nil)
	n := timeline.NewText("n", 0, 20, "title")
	s := &Script{NewItem: &n, GrabOffsetX: 10, GrabOffsetY: 28, Events: []placement.Pointer{at(100, 2)}}

	res, err := e.Replay(context.Background(), twoTracks(), s)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if res.Action.Kind != placement.ActionCreateTrack || res.Action.InsertIndex != 2 {
		t.Errorf("action = %+v", res.Action)
	}
	if got := trackIDs(res.Timeline); len(got) != 3 || got[2] != "new1" {
		t.Errorf("tracks = %v", got)
	}
}

func TestReplayInvalidScripts(t *testing.T) {
	e := newTestEditor(t, nil)
	n := timeline.NewText("a", 0, 20, "dup")
	tests := []struct {
		name     string
		script   Script
		wantCode errors.Code
	}{
		{"no item", Script{Events: []placement.Pointer{{}}}, errors.ErrCodeInvalidInput},
		{"no events", Script{ItemID: "a"}, errors.ErrCodeInvalidInput},
		{"both items", Script{ItemID: "a", NewItem: &n, Events: []placement.Pointer{{}}}, errors.ErrCodeInvalidInput},
		{"duplicate new id", Script{NewItem: &n, Events: []placement.Pointer{{}}}, errors.ErrCodeInvalidInput},
		{"unknown item", Script{ItemID: "zz", Events: []placement.Pointer{{}}}, errors.ErrCodeItemNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Replay(context.Background(), twoTracks(), &tt.script)
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("err = %v, want %s", err, tt.wantCode)
			}
		})
	}
}

func TestReplayHonoursContext(t *testing.T) {
	e := newTestEditor(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &Script{ItemID: "a", Events: []placement.Pointer{{X: 1, Y: 1}}}
	if _, err := e.Replay(ctx, twoTracks(), s); err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestReplayEmitsHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()
	rec := &recorder{}
	observability.SetEditorHooks(rec)

	e := newTestEditor(t, nil)
	s := &Script{ItemID: "b", GrabOffsetX: 10, GrabOffsetY: 28, Events: []placement.Pointer{at(40, 0), at(32, 0)}}
	if _, err := e.Replay(context.Background(), twoTracks(), s); err != nil {
		t.Fatal(err)
	}

	if rec.previews != 2 || rec.drops != 1 || rec.replays != 1 {
		t.Errorf("hooks: previews=%d drops=%d replays=%d", rec.previews, rec.drops, rec.replays)
	}
	if rec.lastAction != string(placement.ActionMoveToTrack) {
		t.Errorf("last action = %q", rec.lastAction)
	}
}

type recorder struct {
	observability.NoopEditorHooks
	previews, drops, replays int
	lastAction               string
}

func (r *recorder) OnPreview(context.Context, string, string, bool) { r.previews++ }

func (r *recorder) OnDropComplete(_ context.Context, action string, _ time.Duration, _ error) {
	r.drops++
	r.lastAction = action
}

func (r *recorder) OnReplayComplete(context.Context, int, time.Duration, error) { r.replays++ }
