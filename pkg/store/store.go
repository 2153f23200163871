// Package store persists named timeline documents.
//
// [FileStore] keeps one JSON file per document, [SQLiteStore] a single
// database file, and [MongoStore] a MongoDB collection for shared
// deployments. [Open] picks a backend from configuration and wraps it so
// every operation reports to the observability store hooks.
package store

import (
	"context"
	"time"

	"github.com/matzehuels/cliptower/pkg/config"
	"github.com/matzehuels/cliptower/pkg/errors"
	"github.com/matzehuels/cliptower/pkg/observability"
	"github.com/matzehuels/cliptower/pkg/timeline"
)

// Document is a stored timeline.
type Document struct {
	ID        string             `json:"id" bson:"_id"`
	Name      string             `json:"name" bson:"name"`
	Timeline  *timeline.Timeline `json:"timeline" bson:"timeline"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Summary describes a document without its timeline.
type Summary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Tracks    int       `json:"tracks"`
	Items     int       `json:"items"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store is implemented by every backend.
type Store interface {
	// Save inserts or replaces doc. An empty ID is filled with a new one;
	// CreatedAt is kept across replacements and UpdatedAt is set to now.
	Save(ctx context.Context, doc *Document) error

	// Load returns the document or a DOCUMENT_NOT_FOUND error.
	Load(ctx context.Context, id string) (*Document, error)

	// List returns all documents, most recently updated first.
	List(ctx context.Context) ([]Summary, error)

	// Delete removes the document or returns DOCUMENT_NOT_FOUND.
	Delete(ctx context.Context, id string) error

	Close() error
}

// Open builds the store selected by cfg.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	var (
		s   Store
		err error
	)
	switch cfg.Backend {
	case config.StoreFile, "":
		s, err = NewFileStore(cfg.Dir)
	case config.StoreSQLite:
		s, err = OpenSQLite(cfg.SQLitePath)
	case config.StoreMongo:
		s, err = OpenMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	backend := cfg.Backend
	if backend == "" {
		backend = config.StoreFile
	}
	return Instrument(s, backend), nil
}

// prepare validates doc and stamps its id and times before a save.
func prepare(doc *Document, created time.Time, now time.Time) error {
	if doc.Timeline == nil {
		return errors.New(errors.ErrCodeInvalidInput, "document has no timeline")
	}
	if err := timeline.Validate(doc.Timeline); err != nil {
		return err
	}
	if doc.ID == "" {
		doc.ID = timeline.NewID()
	}
	if created.IsZero() {
		created = now
	}
	doc.CreatedAt = created
	doc.UpdatedAt = now
	return nil
}

func summarize(doc *Document) Summary {
	s := Summary{ID: doc.ID, Name: doc.Name, UpdatedAt: doc.UpdatedAt}
	if doc.Timeline != nil {
		s.Tracks = len(doc.Timeline.Tracks)
		s.Items = doc.Timeline.ItemCount()
	}
	return s
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeDocumentNotFound, "document %q not found", id)
}

// instrumented reports every call to the store hooks.
type instrumented struct {
	Store
	backend string
}

// Instrument wraps s so each operation fires observability.Store().OnStoreOp.
func Instrument(s Store, backend string) Store {
	return &instrumented{Store: s, backend: backend}
}

func (s *instrumented) report(ctx context.Context, op string, start time.Time, err error) {
	observability.Store().OnStoreOp(ctx, s.backend, op, time.Since(start), err)
}

func (s *instrumented) Save(ctx context.Context, doc *Document) error {
	start := time.Now()
	err := s.Store.Save(ctx, doc)
	s.report(ctx, "save", start, err)
	return err
}

func (s *instrumented) Load(ctx context.Context, id string) (*Document, error) {
	start := time.Now()
	doc, err := s.Store.Load(ctx, id)
	s.report(ctx, "load", start, err)
	return doc, err
}

func (s *instrumented) List(ctx context.Context) ([]Summary, error) {
	start := time.Now()
	out, err := s.Store.List(ctx)
	s.report(ctx, "list", start, err)
	return out, err
}

func (s *instrumented) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := s.Store.Delete(ctx, id)
	s.report(ctx, "delete", start, err)
	return err
}
