package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite"

	"github.com/matzehuels/cliptower/pkg/errors"
	"github.com/matzehuels/cliptower/pkg/timeline"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS documents (
	id        TEXT PRIMARY KEY,
	name      TEXT NOT NULL,
	body      TEXT NOT NULL,
	tracks    INTEGER NOT NULL,
	items     INTEGER NOT NULL,
	createdAt INTEGER NOT NULL,
	updatedAt INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS documents_updated ON documents(updatedAt DESC);
`

// SQLiteStore keeps documents in one SQLite table with the timeline stored
// as JSON.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens or creates the database at path. ":memory:" gives a
// private in-memory database.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "open database")
	}
	// One connection keeps :memory: databases shared across calls and
	// serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil && path != ":memory:" {
		db.Close()
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "enable WAL")
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "create schema")
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

func (s *SQLiteStore) Save(ctx context.Context, doc *Document) error {
	var created time.Time
	if doc.ID != "" {
		var ms int64
		err := s.db.QueryRowContext(ctx, `SELECT createdAt FROM documents WHERE id = ?`, doc.ID).Scan(&ms)
		if err == nil {
			created = time.UnixMilli(ms).UTC()
		} else if err != sql.ErrNoRows {
			return errors.Wrap(errors.ErrCodeStorage, err, "query document")
		}
	}
	if err := prepare(doc, created, s.now().UTC().Truncate(time.Millisecond)); err != nil {
		return err
	}

	body, err := json.Marshal(doc.Timeline)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode timeline")
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (id, name, body, tracks, items, createdAt, updatedAt)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			body = excluded.body,
			tracks = excluded.tracks,
			items = excluded.items,
			updatedAt = excluded.updatedAt
	`, doc.ID, doc.Name, string(body), len(doc.Timeline.Tracks), doc.Timeline.ItemCount(),
		doc.CreatedAt.UnixMilli(), doc.UpdatedAt.UnixMilli())
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "save document")
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, id string) (*Document, error) {
	var (
		doc              Document
		body             string
		created, updated int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, body, createdAt, updatedAt FROM documents WHERE id = ?`, id,
	).Scan(&doc.ID, &doc.Name, &body, &created, &updated)
	if err == sql.ErrNoRows {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "load document")
	}

	var tl timeline.Timeline
	if err := json.Unmarshal([]byte(body), &tl); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "decode timeline %s", id)
	}
	doc.Timeline = &tl
	doc.CreatedAt = time.UnixMilli(created).UTC()
	doc.UpdatedAt = time.UnixMilli(updated).UTC()
	return &doc, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, tracks, items, updatedAt
		FROM documents
		ORDER BY updatedAt DESC, id ASC
	`)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list documents")
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		var updated int64
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.Tracks, &sum.Items, &updated); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStorage, err, "scan document")
		}
		sum.UpdatedAt = time.UnixMilli(updated).UTC()
		out = append(out, sum)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete document")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound(id)
	}
	return nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

var _ Store = (*SQLiteStore)(nil)
