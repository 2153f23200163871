package api

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/cliptower/pkg/editor"
	"github.com/matzehuels/cliptower/pkg/errors"
	tlio "github.com/matzehuels/cliptower/pkg/io"
	"github.com/matzehuels/cliptower/pkg/placement"
	"github.com/matzehuels/cliptower/pkg/placement/snap"
	"github.com/matzehuels/cliptower/pkg/render/dot"
	"github.com/matzehuels/cliptower/pkg/timeline"
)

type dragRequest struct {
	Timeline json.RawMessage `json:"timeline"`
	Drag     json.RawMessage `json:"drag"`
}

type previewResponse struct {
	Previews []placement.Preview `json:"previews"`
}

type dropResponse struct {
	Action   placement.DropAction `json:"action"`
	Timeline json.RawMessage      `json:"timeline"`
}

type replayResponse struct {
	Previews []placement.Preview  `json:"previews"`
	Action   *placement.DropAction `json:"action,omitempty"`
	Cached   bool                  `json:"cached"`
	Timeline json.RawMessage       `json:"timeline"`
}

type splitRequest struct {
	Timeline json.RawMessage `json:"timeline"`
	ItemID   string          `json:"itemId"`
	Frame    int             `json:"frame"`
}

type trimRequest struct {
	Timeline json.RawMessage `json:"timeline"`
	ItemID   string          `json:"itemId"`
	Edge     snap.Edge       `json:"edge"`
	Frame    int             `json:"frame"`
}

type editResponse struct {
	Applied  bool            `json:"applied"`
	Timeline json.RawMessage `json:"timeline"`
}

type renderRequest struct {
	Timeline json.RawMessage    `json:"timeline"`
	Preview  *placement.Preview `json:"preview,omitempty"`
	Detailed bool               `json:"detailed,omitempty"`
}

func parseTimeline(raw json.RawMessage) (*timeline.Timeline, error) {
	if len(raw) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "request has no timeline")
	}
	return tlio.UnmarshalTimeline(raw)
}

func parseScript(raw json.RawMessage) (*editor.Script, error) {
	if len(raw) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "request has no drag")
	}
	return tlio.UnmarshalScript(raw)
}

func encodeTimeline(tl *timeline.Timeline) (json.RawMessage, error) {
	data, err := tlio.MarshalTimeline(tl)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode timeline")
	}
	return data, nil
}

func (s *Server) readDrag(r *http.Request) (*timeline.Timeline, *editor.Script, error) {
	var req dragRequest
	if err := decode(r, &req); err != nil {
		return nil, nil, err
	}
	tl, err := parseTimeline(req.Timeline)
	if err != nil {
		return nil, nil, err
	}
	sc, err := parseScript(req.Drag)
	if err != nil {
		return nil, nil, err
	}
	return tl, sc, nil
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	tl, sc, err := s.readDrag(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	d, err := sc.Drag(tl)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := previewResponse{Previews: make([]placement.Preview, len(sc.Events))}
	for i, p := range sc.Events {
		out.Previews[i] = s.Editor.Preview(r.Context(), tl, d, p)
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDrop(w http.ResponseWriter, r *http.Request) {
	tl, sc, err := s.readDrag(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	d, err := sc.Drag(tl)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	next, act, err := s.Editor.Drop(r.Context(), tl, d, sc.Events[len(sc.Events)-1])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	body, err := encodeTimeline(next)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, dropResponse{Action: act, Timeline: body})
}

func (s *Server) handleReplay(w http.ResponseWriter, r *http.Request) {
	tl, sc, err := s.readDrag(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.replay(r, tl, sc)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) replay(r *http.Request, tl *timeline.Timeline, sc *editor.Script) (*replayResponse, error) {
	res, cached, err := s.Editor.ReplayWithCacheInfo(r.Context(), tl, sc)
	if err != nil {
		return nil, err
	}
	body, err := encodeTimeline(res.Timeline)
	if err != nil {
		return nil, err
	}
	return &replayResponse{Previews: res.Previews, Action: res.Action, Cached: cached, Timeline: body}, nil
}

func (s *Server) handleSplit(w http.ResponseWriter, r *http.Request) {
	var req splitRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	tl, err := parseTimeline(req.Timeline)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	next, applied, err := s.Editor.Split(r.Context(), tl, req.ItemID, req.Frame)
	s.writeEdit(w, r, next, applied, err)
}

func (s *Server) handleTrim(w http.ResponseWriter, r *http.Request) {
	var req trimRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Edge != snap.EdgeLeft && req.Edge != snap.EdgeRight {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "edge must be left or right, got %q", req.Edge))
		return
	}
	tl, err := parseTimeline(req.Timeline)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	next, applied, err := s.Editor.Trim(r.Context(), tl, placement.TrimRequest{ItemID: req.ItemID, Edge: req.Edge, Frame: req.Frame})
	s.writeEdit(w, r, next, applied, err)
}

func (s *Server) writeEdit(w http.ResponseWriter, r *http.Request, tl *timeline.Timeline, applied bool, err error) {
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	body, err := encodeTimeline(tl)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, editResponse{Applied: applied, Timeline: body})
}

var contentTypes = map[dot.Format]string{
	dot.FormatDOT: "text/vnd.graphviz; charset=utf-8",
	dot.FormatSVG: "image/svg+xml",
	dot.FormatPNG: "image/png",
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("format")
	if name == "" {
		name = string(dot.FormatSVG)
	}
	f, err := dot.ParseFormat(name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req renderRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	tl, err := parseTimeline(req.Timeline)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data, cached, err := s.Renderer.RenderWithCacheInfo(r.Context(), tl, f, dot.Options{Detailed: req.Detailed, Preview: req.Preview})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[f])
	if cached {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	_, _ = w.Write(data)
}
