// Package catalog persists parameter records in SQLite.
//
// Specs are stored as protobuf-encoded google.protobuf.Struct blobs (see the
// wire package), so records survive schema-free additions of new kernels.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/born-ml/spatial/internal/distribution"
	"github.com/born-ml/spatial/internal/field"
	"github.com/born-ml/spatial/internal/wire"
)

// ErrNotFound is returned when no record matches.
var ErrNotFound = errors.New("catalog: record not found")

const schema = `
CREATE TABLE IF NOT EXISTS records (
	record_id   TEXT PRIMARY KEY,
	name        TEXT NOT NULL UNIQUE,
	kernel      TEXT NOT NULL,
	spec        BLOB NOT NULL,
	created_at  TEXT NOT NULL
);
`

// Store manages parameter records in SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and runs migrations.
// Use ":memory:" for a private in-memory catalog.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if path == ":memory:" {
		// Each connection would get its own empty database.
		db.SetMaxOpenConns(1)
	} else if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put records f under name. Names are unique.
func (s *Store) Put(ctx context.Context, name string, f field.Field) (distribution.Record, error) {
	return insertRecord(ctx, s.db, name, f)
}

// Entry is a named field for PutAll.
type Entry struct {
	Name  string
	Field field.Field
}

// PutAll records every entry in one transaction. Either all entries are
// stored or none are.
func (s *Store) PutAll(ctx context.Context, entries []Entry) ([]distribution.Record, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	recs := make([]distribution.Record, 0, len(entries))
	for _, e := range entries {
		rec, err := insertRecord(ctx, tx, e.Name, e.Field)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit records: %w", err)
	}
	return recs, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertRecord(ctx context.Context, db execer, name string, f field.Field) (distribution.Record, error) {
	if name == "" {
		return distribution.Record{}, errors.New("catalog: empty record name")
	}
	rec := distribution.NewRecord(name, f)

	blob, err := wire.MarshalSpec(rec.Spec)
	if err != nil {
		return distribution.Record{}, err
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO records (record_id, name, kernel, spec, created_at) VALUES (?, ?, ?, ?, ?)`,
		rec.ID.String(), rec.Name, rec.Spec.Type, blob, rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return distribution.Record{}, fmt.Errorf("insert record %q: %w", name, err)
	}
	return rec, nil
}

// Get returns the record with the given ID.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (distribution.Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT record_id, name, spec, created_at FROM records WHERE record_id = ?`, id.String())
	return scanRecord(row)
}

// GetByName returns the record with the given name.
func (s *Store) GetByName(ctx context.Context, name string) (distribution.Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT record_id, name, spec, created_at FROM records WHERE name = ?`, name)
	return scanRecord(row)
}

// List returns every record ordered by name.
func (s *Store) List(ctx context.Context) ([]distribution.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT record_id, name, spec, created_at FROM records ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var out []distribution.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return out, nil
}

// Delete removes the record with the given ID.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE record_id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("delete record %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete record %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Load rebuilds the field recorded under name through b.
func (s *Store) Load(ctx context.Context, b *distribution.Builder, name string) (field.Field, error) {
	rec, err := s.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return rec.Field(b)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (distribution.Record, error) {
	var (
		id, name, created string
		blob              []byte
	)
	if err := sc.Scan(&id, &name, &blob, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return distribution.Record{}, ErrNotFound
		}
		return distribution.Record{}, fmt.Errorf("scan record: %w", err)
	}

	rid, err := uuid.Parse(id)
	if err != nil {
		return distribution.Record{}, fmt.Errorf("parse record id %q: %w", id, err)
	}
	spec, err := wire.UnmarshalSpec(blob)
	if err != nil {
		return distribution.Record{}, fmt.Errorf("record %s: %w", id, err)
	}
	at, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return distribution.Record{}, fmt.Errorf("parse created_at: %w", err)
	}
	return distribution.Record{ID: rid, Name: name, Spec: spec, CreatedAt: at}, nil
}
