package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cliptower/pkg/editor"
	"github.com/matzehuels/cliptower/pkg/errors"
	tlio "github.com/matzehuels/cliptower/pkg/io"
	"github.com/matzehuels/cliptower/pkg/placement"
	"github.com/matzehuels/cliptower/pkg/store"
	"github.com/matzehuels/cliptower/pkg/timeline"
)

func twoTracks() *timeline.Timeline {
	return &timeline.Timeline{Tracks: []timeline.Track{
		{ID: "t1", Items: []timeline.Item{timeline.NewSolid("a", 0, 30, "#000000")}},
		{ID: "t2", Items: []timeline.Item{timeline.NewSolid("b", 200, 30, "#000000")}},
	}}
}

// at returns the pointer that puts the left edge of an item grabbed at
// (10, 28) on frame, resting in row.
func at(frame, row int) placement.Pointer {
	opts := placement.DefaultOptions()
	return placement.Pointer{X: opts.XAt(frame) + 10, Y: float64(row)*opts.TrackHeight + 8 + 28}
}

func dragOf(item string, events ...placement.Pointer) map[string]any {
	return map[string]any{"itemId": item, "grabOffsetX": 10, "grabOffsetY": 28, "events": events}
}

func newTestServer(t *testing.T, withStore bool) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)
	ed := editor.New(placement.DefaultOptions(), nil, nil, logger)
	var st store.Store
	if withStore {
		fs, err := store.NewFileStore(t.TempDir())
		if err != nil {
			t.Fatal(err)
		}
		st = fs
	}
	srv := httptest.NewServer(New(ed, st, nil, logger).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func wire(t *testing.T, tl *timeline.Timeline) json.RawMessage {
	t.Helper()
	data, err := tlio.MarshalTimeline(tl)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func do(t *testing.T, srv *httptest.Server, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		r = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, srv.URL+path, r)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, false)
	resp := do(t, srv, http.MethodGet, "/healthz", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var info map[string]string
	decodeBody(t, resp, &info)
	if info["version"] == "" {
		t.Errorf("healthz = %v", info)
	}
}

func TestPreview(t *testing.T) {
	srv := newTestServer(t, false)
	resp := do(t, srv, http.MethodPost, "/v1/preview", map[string]any{
		"timeline": wire(t, twoTracks()),
		"drag":     dragOf("b", at(100, 1), at(32, 0)),
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var out previewResponse
	decodeBody(t, resp, &out)
	if len(out.Previews) != 2 {
		t.Fatalf("previews = %d, want 2", len(out.Previews))
	}
	last := out.Previews[1]
	if last.TrackID != "t1" || last.Frame != 30 || last.GuideFrame == nil {
		t.Errorf("last preview = %+v, want t1 @30 snapped", last)
	}
}

func TestDrop(t *testing.T) {
	srv := newTestServer(t, false)
	resp := do(t, srv, http.MethodPost, "/v1/drop", map[string]any{
		"timeline": wire(t, twoTracks()),
		"drag":     dragOf("b", at(32, 0)),
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var out dropResponse
	decodeBody(t, resp, &out)
	if out.Action.Kind != placement.ActionMoveToTrack || out.Action.Frame != 30 {
		t.Errorf("action = %+v", out.Action)
	}
	tl, err := tlio.UnmarshalTimeline(out.Timeline)
	if err != nil {
		t.Fatal(err)
	}
	if len(tl.Tracks) != 1 {
		t.Errorf("tracks = %d, want the emptied track removed", len(tl.Tracks))
	}
}

func TestReplayCancel(t *testing.T) {
	srv := newTestServer(t, false)
	drag := dragOf("b", at(32, 0))
	drag["cancel"] = true
	resp := do(t, srv, http.MethodPost, "/v1/replay", map[string]any{"timeline": wire(t, twoTracks()), "drag": drag})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var out replayResponse
	decodeBody(t, resp, &out)
	if out.Action != nil {
		t.Errorf("cancelled replay applied %+v", out.Action)
	}
	if len(out.Previews) != 1 {
		t.Errorf("previews = %d, want 1", len(out.Previews))
	}
}

func TestSplitAndTrim(t *testing.T) {
	srv := newTestServer(t, false)

	resp := do(t, srv, http.MethodPost, "/v1/split", map[string]any{
		"timeline": wire(t, twoTracks()), "itemId": "b", "frame": 215,
	})
	var split editResponse
	decodeBody(t, resp, &split)
	if resp.StatusCode != http.StatusOK || !split.Applied {
		t.Fatalf("split status=%d applied=%v", resp.StatusCode, split.Applied)
	}
	tl, err := tlio.UnmarshalTimeline(split.Timeline)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(tl.Tracks[1].Items); n != 2 {
		t.Errorf("items after split = %d, want 2", n)
	}

	resp = do(t, srv, http.MethodPost, "/v1/trim", map[string]any{
		"timeline": wire(t, twoTracks()), "itemId": "a", "edge": "right", "frame": 3,
	})
	var trim editResponse
	decodeBody(t, resp, &trim)
	if resp.StatusCode != http.StatusOK || trim.Applied {
		t.Errorf("trim below floor status=%d applied=%v, want 200 and not applied", resp.StatusCode, trim.Applied)
	}
}

func TestErrorStatuses(t *testing.T) {
	srv := newTestServer(t, false)
	overlapping := twoTracks()
	overlapping.Tracks[0].Items = append(overlapping.Tracks[0].Items, timeline.NewSolid("c", 10, 10, "#000000"))

	tests := []struct {
		name   string
		path   string
		body   any
		status int
		code   errors.Code
	}{
		{"missing timeline", "/v1/split", map[string]any{"itemId": "a", "frame": 3}, 400, errors.ErrCodeInvalidInput},
		{"unknown item", "/v1/split", map[string]any{"timeline": wire(t, twoTracks()), "itemId": "zz", "frame": 3}, 404, errors.ErrCodeItemNotFound},
		{"bad edge", "/v1/trim", map[string]any{"timeline": wire(t, twoTracks()), "itemId": "a", "edge": "top"}, 400, errors.ErrCodeInvalidInput},
		{"overlap", "/v1/drop", map[string]any{"timeline": wire(t, overlapping), "drag": dragOf("a", at(0, 0))}, 400, errors.ErrCodeInvalidTimeline},
		{"empty script", "/v1/drop", map[string]any{"timeline": wire(t, twoTracks()), "drag": dragOf("a")}, 400, errors.ErrCodeInvalidInput},
		{"bad format", "/v1/render?format=gif", map[string]any{"timeline": wire(t, twoTracks())}, 400, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, srv, http.MethodPost, tt.path, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var body errorBody
			decodeBody(t, resp, &body)
			if body.Error.Code != tt.code {
				t.Errorf("code = %s, want %s (%s)", body.Error.Code, tt.code, body.Error.Message)
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeInvalidTimeline, "x"), 400},
		{errors.New(errors.ErrCodeDocumentNotFound, "x"), 404},
		{errors.New(errors.ErrCodeStorage, "x"), 500},
		{io.EOF, 500},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestRenderDOT(t *testing.T) {
	srv := newTestServer(t, false)
	resp := do(t, srv, http.MethodPost, "/v1/render?format=dot", map[string]any{"timeline": wire(t, twoTracks())})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	data, _ := io.ReadAll(resp.Body)
	if !strings.HasPrefix(string(data), "digraph timeline") {
		t.Errorf("body = %.40s", data)
	}
	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/vnd.graphviz") {
		t.Errorf("content type = %q", resp.Header.Get("Content-Type"))
	}
}

func TestDocumentsUnmountedWithoutStore(t *testing.T) {
	srv := newTestServer(t, false)
	resp := do(t, srv, http.MethodGet, "/v1/documents", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestDocumentLifecycle(t *testing.T) {
	srv := newTestServer(t, true)

	resp := do(t, srv, http.MethodPost, "/v1/documents", map[string]any{"name": "cut 1", "timeline": wire(t, twoTracks())})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	var created documentResponse
	decodeBody(t, resp, &created)
	if created.ID == "" || created.Name != "cut 1" {
		t.Fatalf("created = %+v", created)
	}
	path := "/v1/documents/" + created.ID

	resp = do(t, srv, http.MethodGet, "/v1/documents", nil)
	var list []store.Summary
	decodeBody(t, resp, &list)
	if len(list) != 1 || list[0].Items != 2 {
		t.Errorf("list = %+v", list)
	}

	resp = do(t, srv, http.MethodPost, path+"/replay", map[string]any{"drag": dragOf("b", at(32, 0))})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("replay status = %d", resp.StatusCode)
	}

	resp = do(t, srv, http.MethodGet, path, nil)
	var got documentResponse
	decodeBody(t, resp, &got)
	tl, err := tlio.UnmarshalTimeline(got.Timeline)
	if err != nil {
		t.Fatal(err)
	}
	if len(tl.Tracks) != 1 || len(tl.Tracks[0].Items) != 2 {
		t.Errorf("stored timeline after replay = %+v", tl.Tracks)
	}

	resp = do(t, srv, http.MethodDelete, path, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d", resp.StatusCode)
	}
	resp = do(t, srv, http.MethodGet, path, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete status = %d", resp.StatusCode)
	}
}
