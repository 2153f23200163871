package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/cliptower/pkg/store"
)

type documentRequest struct {
	Name     string          `json:"name"`
	Timeline json.RawMessage `json:"timeline"`
}

type documentResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Timeline  json.RawMessage `json:"timeline"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (s *Server) writeDocument(w http.ResponseWriter, r *http.Request, status int, doc *store.Document) {
	body, err := encodeTimeline(doc.Timeline)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, status, documentResponse{
		ID:        doc.ID,
		Name:      doc.Name,
		Timeline:  body,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	})
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	list, err := s.Store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if list == nil {
		list = []store.Summary{}
	}
	s.writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	s.saveDocument(w, r, "", http.StatusCreated)
}

func (s *Server) handlePutDocument(w http.ResponseWriter, r *http.Request) {
	s.saveDocument(w, r, chi.URLParam(r, "id"), http.StatusOK)
}

func (s *Server) saveDocument(w http.ResponseWriter, r *http.Request, id string, status int) {
	var req documentRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	tl, err := parseTimeline(req.Timeline)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	doc := &store.Document{ID: id, Name: req.Name, Timeline: tl}
	if err := s.Store.Save(r.Context(), doc); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeDocument(w, r, status, doc)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.Store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeDocument(w, r, http.StatusOK, doc)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleReplayDocument replays a drag against a stored document and saves
// the result unless the drag was cancelled.
func (s *Server) handleReplayDocument(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Drag json.RawMessage `json:"drag"`
	}
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	sc, err := parseScript(req.Drag)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	doc, err := s.Store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, cached, err := s.Editor.ReplayWithCacheInfo(r.Context(), doc.Timeline, sc)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if res.Action != nil {
		doc.Timeline = res.Timeline
		if err := s.Store.Save(r.Context(), doc); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	body, err := encodeTimeline(res.Timeline)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, replayResponse{Previews: res.Previews, Action: res.Action, Cached: cached, Timeline: body})
}
