package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/cliptower/pkg/errors"
)

// FileStore keeps each document in <dir>/<id>.json.
type FileStore struct {
	dir string
	mu  sync.Mutex
	now func() time.Time
}

// DefaultDir is where documents live when no directory is configured.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeStorage, err, "locate config directory")
	}
	return filepath.Join(base, "cliptower", "timelines"), nil
}

// NewFileStore opens (creating if needed) a store rooted at dir. An empty
// dir means [DefaultDir].
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "create %s", dir)
	}
	return &FileStore{dir: dir, now: time.Now}, nil
}

func (s *FileStore) Save(_ context.Context, doc *Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var created time.Time
	if doc.ID != "" {
		if old, err := s.read(doc.ID); err == nil {
			created = old.CreatedAt
		}
	}
	if err := prepare(doc, created, s.now().UTC()); err != nil {
		return err
	}
	if err := checkID(doc.ID); err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode document")
	}
	tmp := s.path(doc.ID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write document")
	}
	if err := os.Rename(tmp, s.path(doc.ID)); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write document")
	}
	return nil
}

func (s *FileStore) Load(_ context.Context, id string) (*Document, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(id)
}

func (s *FileStore) List(context.Context) ([]Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list %s", s.dir)
	}
	var out []Summary
	for _, e := range entries {
		id, ok := strings.CutSuffix(e.Name(), ".json")
		if e.IsDir() || !ok {
			continue
		}
		doc, err := s.read(id)
		if err != nil {
			return nil, err
		}
		out = append(out, summarize(doc))
	}
	sortSummaries(out)
	return out, nil
}

func (s *FileStore) Delete(_ context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(id))
	if os.IsNotExist(err) {
		return notFound(id)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete %s", id)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// Dir returns the directory documents are written to.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) read(id string) (*Document, error) {
	data, err := os.ReadFile(s.path(id))
	if os.IsNotExist(err) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read %s", id)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "decode %s", id)
	}
	return &doc, nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// checkID keeps ids usable as file names.
func checkID(id string) error {
	if id == "" || id != filepath.Base(id) || strings.HasPrefix(id, ".") {
		return errors.New(errors.ErrCodeInvalidInput, "invalid document id %q", id)
	}
	return nil
}

func sortSummaries(s []Summary) {
	slices.SortFunc(s, func(a, b Summary) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

var _ Store = (*FileStore)(nil)
