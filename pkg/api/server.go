package api

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/cliptower/pkg/buildinfo"
	"github.com/matzehuels/cliptower/pkg/editor"
	"github.com/matzehuels/cliptower/pkg/render/dot"
	"github.com/matzehuels/cliptower/pkg/store"
)

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	Editor *editor.Editor

	// Store backs /v1/documents. Nil leaves those routes unmounted.
	Store store.Store

	Renderer *dot.Renderer
	Logger   *log.Logger
}

// New returns a server. A nil renderer renders without a cache and a nil
// logger uses log.Default().
func New(ed *editor.Editor, st store.Store, r *dot.Renderer, logger *log.Logger) *Server {
	if r == nil {
		r = &dot.Renderer{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{Editor: ed, Store: st, Renderer: r, Logger: logger}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		s.writeJSON(w, http.StatusOK, buildinfo.Get())
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/preview", s.handlePreview)
		r.Post("/drop", s.handleDrop)
		r.Post("/replay", s.handleReplay)
		r.Post("/split", s.handleSplit)
		r.Post("/trim", s.handleTrim)
		r.Post("/render", s.handleRender)

		if s.Store != nil {
			r.Route("/documents", func(r chi.Router) {
				r.Get("/", s.handleListDocuments)
				r.Post("/", s.handleCreateDocument)
				r.Get("/{id}", s.handleGetDocument)
				r.Put("/{id}", s.handlePutDocument)
				r.Delete("/{id}", s.handleDeleteDocument)
				r.Post("/{id}/replay", s.handleReplayDocument)
			})
		}
	})
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.Logger.Debug("request",
			"id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"took", time.Since(start).Round(time.Microsecond))
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.Logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.Logger.Info("server stopped")
	return nil
}
