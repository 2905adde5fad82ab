package store

import (
	"fmt"

	"github.com/nomenlabs/nomen/internal/model"
	"github.com/nomenlabs/nomen/internal/model/schema"
)

// Search finds records of one kind whose display fields contain term.
// Matching is a case-insensitive substring match on the columns a human
// would search by: names and spellings, titles, labels. A limit of 0
// means no limit.
func (s *Store) Search(kind schema.Kind, term string, limit int) ([]model.Record, error) {
	pat := "%" + term + "%"
	suffix := ` ORDER BY id`
	if limit > 0 {
		suffix += fmt.Sprintf(` LIMIT %d`, limit)
	}

	switch kind {
	case schema.KindName:
		names, err := s.queryNames(
			`SELECT `+nameColumns+` FROM names
			 WHERE root_name LIKE ? OR corrected_original_name LIKE ? OR original_name LIKE ?`+suffix,
			pat, pat, pat)
		return recordSlice(names), err
	case schema.KindTaxon:
		return s.searchRows(
			`SELECT `+taxonColumns+` FROM taxa WHERE valid_name LIKE ?`+suffix,
			func(rows rowScanner) (model.Record, error) { return scanTaxon(rows) }, pat)
	case schema.KindArticle:
		articles, err := s.queryArticles(
			`SELECT `+articleColumns+` FROM articles
			 WHERE name LIKE ? OR title LIKE ?`+suffix, pat, pat)
		return recordSlice(articles), err
	case schema.KindCitationGroup:
		return s.searchRows(
			`SELECT `+citationGroupColumns+` FROM citation_groups WHERE name LIKE ?`+suffix,
			func(rows rowScanner) (model.Record, error) { return scanCitationGroup(rows) }, pat)
	case schema.KindCollection:
		return s.searchRows(
			`SELECT `+collectionColumns+` FROM collections
			 WHERE label LIKE ? OR name LIKE ?`+suffix,
			func(rows rowScanner) (model.Record, error) { return scanCollection(rows) }, pat, pat)
	case schema.KindClassificationEntry:
		entries, err := s.queryEntries(
			`SELECT `+entryColumns+` FROM classification_entries WHERE name LIKE ?`+suffix, pat)
		return recordSlice(entries), err
	case schema.KindLocation:
		return s.searchRows(
			`SELECT `+locationColumns+` FROM locations WHERE name LIKE ?`+suffix,
			func(rows rowScanner) (model.Record, error) { return scanLocation(rows) }, pat)
	case schema.KindPeriod:
		return s.searchRows(
			`SELECT `+periodColumns+` FROM periods WHERE name LIKE ?`+suffix,
			func(rows rowScanner) (model.Record, error) { return scanPeriod(rows) }, pat)
	case schema.KindRegion:
		return s.searchRows(
			`SELECT `+regionColumns+` FROM regions WHERE name LIKE ?`+suffix,
			func(rows rowScanner) (model.Record, error) { return scanRegion(rows) }, pat)
	}
	return nil, fmt.Errorf("unknown record kind %q", kind)
}

type rowScanner interface{ Scan(...any) error }

func (s *Store) searchRows(query string, scan func(rowScanner) (model.Record, error), args ...any) ([]model.Record, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}
	defer rows.Close()

	var out []model.Record
	for rows.Next() {
		rec, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan search result: %w", err)
		}
		s.cachePut(rec)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func recordSlice[T model.Record](in []T) []model.Record {
	out := make([]model.Record, len(in))
	for i, r := range in {
		out[i] = r
	}
	return out
}
