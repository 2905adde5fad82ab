// Package store persists the catalog records in SQLite.
//
// Records load into the structs in internal/model and save back through
// explicit Save calls at well-defined boundaries; nothing writes to the
// database as a side effect of mutating a struct. The store keeps an
// in-process cache of loaded records, which is sound under the
// single-user, single-process access model.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"

	"github.com/nomenlabs/nomen/internal/model"
	"github.com/nomenlabs/nomen/internal/model/schema"
	_ "modernc.org/sqlite"
)

// ErrNotFound reports a lookup for a record id that has no row.
var ErrNotFound = errors.New("record not found")

// Store is a handle to the catalog database.
type Store struct {
	db   *sql.DB
	path string

	cache map[schema.Ref]model.Record
}

// Open opens the database at path, creating and migrating it as
// needed. Use ":memory:" for an in-memory database.
func Open(path string) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("file:%s?%s", url.PathEscape(path),
			"_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{
		db:    db,
		path:  path,
		cache: make(map[schema.Ref]model.Record),
	}
	if err := s.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DB exposes the underlying connection for ad hoc queries (the shell's
// query surface). Callers must not mutate catalog tables through it.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ResetCache drops every cached record, so later Gets reload from the
// database. Long-lived sessions call this between batch runs.
func (s *Store) ResetCache() {
	s.cache = make(map[schema.Ref]model.Record)
}

// Get loads one record by kind and id, from cache when already loaded.
func (s *Store) Get(kind schema.Kind, id int64) (model.Record, error) {
	if rec, ok := s.cache[schema.Ref{Kind: kind, ID: id}]; ok {
		return rec, nil
	}
	switch kind {
	case schema.KindName:
		return s.GetName(id)
	case schema.KindTaxon:
		return s.GetTaxon(id)
	case schema.KindArticle:
		return s.GetArticle(id)
	case schema.KindCitationGroup:
		return s.GetCitationGroup(id)
	case schema.KindCollection:
		return s.GetCollection(id)
	case schema.KindClassificationEntry:
		return s.GetClassificationEntry(id)
	case schema.KindLocation:
		return s.GetLocation(id)
	case schema.KindPeriod:
		return s.GetPeriod(id)
	case schema.KindRegion:
		return s.GetRegion(id)
	}
	return nil, fmt.Errorf("unknown record kind %q", kind)
}

// Save writes one record back by kind.
func (s *Store) Save(rec model.Record) error {
	switch r := rec.(type) {
	case *model.Name:
		return s.SaveName(r)
	case *model.Taxon:
		return s.SaveTaxon(r)
	case *model.Article:
		return s.SaveArticle(r)
	case *model.CitationGroup:
		return s.SaveCitationGroup(r)
	case *model.Collection:
		return s.SaveCollection(r)
	case *model.ClassificationEntry:
		return s.SaveClassificationEntry(r)
	case *model.Location:
		return s.SaveLocation(r)
	case *model.Period:
		return s.SavePeriod(r)
	case *model.Region:
		return s.SaveRegion(r)
	}
	return fmt.Errorf("unknown record type %T", rec)
}

// cachePut stores a loaded record for later Get and Resolve calls.
func (s *Store) cachePut(rec model.Record) {
	s.cache[schema.Ref{Kind: rec.RecordKind(), ID: rec.GetID()}] = rec
}

// nullID converts a zero id to NULL for storage.
func nullID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

// scanID converts a nullable id column back to the zero convention.
func scanID(n sql.NullInt64) int64 {
	if n.Valid {
		return n.Int64
	}
	return 0
}

func notFound(err error, kind schema.Kind, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s #%d", ErrNotFound, kind, id)
	}
	return nil
}
