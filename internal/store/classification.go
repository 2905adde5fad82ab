package store

import (
	"database/sql"
	"fmt"

	"github.com/nomenlabs/nomen/internal/model"
	"github.com/nomenlabs/nomen/internal/model/schema"
)

const entryColumns = `id, article_id, name, rank, page, parent_id, mapped_name_id, authority, year`

func scanEntry(row interface{ Scan(...any) error }) (*model.ClassificationEntry, error) {
	e := &model.ClassificationEntry{}
	var article, parent, mapped sql.NullInt64
	err := row.Scan(&e.ID, &article, &e.Name, &e.Rank, &e.Page, &parent, &mapped,
		&e.Authority, &e.Year)
	if err != nil {
		return nil, err
	}
	e.ArticleID = scanID(article)
	e.ParentID = scanID(parent)
	e.MappedNameID = scanID(mapped)
	return e, nil
}

// CreateClassificationEntry inserts a new entry and fills in its id.
func (s *Store) CreateClassificationEntry(e *model.ClassificationEntry) error {
	res, err := s.db.Exec(
		`INSERT INTO classification_entries (article_id, name, rank, page, parent_id,
			mapped_name_id, authority, year)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		nullID(e.ArticleID), e.Name, e.Rank, e.Page, nullID(e.ParentID),
		nullID(e.MappedNameID), e.Authority, e.Year,
	)
	if err != nil {
		return fmt.Errorf("failed to create classification entry: %w", err)
	}
	e.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read new classification entry id: %w", err)
	}
	e.ClearDirty()
	s.cachePut(e)
	return nil
}

// GetClassificationEntry loads one entry by id.
func (s *Store) GetClassificationEntry(id int64) (*model.ClassificationEntry, error) {
	if rec, ok := s.cache[schema.Ref{Kind: schema.KindClassificationEntry, ID: id}]; ok {
		return rec.(*model.ClassificationEntry), nil
	}
	e, err := scanEntry(s.db.QueryRow(
		`SELECT `+entryColumns+` FROM classification_entries WHERE id = ?`, id))
	if err != nil {
		if nf := notFound(err, schema.KindClassificationEntry, id); nf != nil {
			return nil, nf
		}
		return nil, fmt.Errorf("failed to get classification entry: %w", err)
	}
	s.cachePut(e)
	return e, nil
}

// SaveClassificationEntry writes an entry back and clears its dirty
// flag.
func (s *Store) SaveClassificationEntry(e *model.ClassificationEntry) error {
	_, err := s.db.Exec(
		`UPDATE classification_entries SET article_id = ?, name = ?, rank = ?, page = ?,
			parent_id = ?, mapped_name_id = ?, authority = ?, year = ? WHERE id = ?`,
		nullID(e.ArticleID), e.Name, e.Rank, e.Page, nullID(e.ParentID),
		nullID(e.MappedNameID), e.Authority, e.Year, e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to save classification entry: %w", err)
	}
	e.ClearDirty()
	s.cachePut(e)
	return nil
}

func (s *Store) queryEntries(query string, args ...any) ([]*model.ClassificationEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query classification entries: %w", err)
	}
	defer rows.Close()

	var entries []*model.ClassificationEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan classification entry: %w", err)
		}
		s.cachePut(e)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ListClassificationEntries returns entries ordered by id. A limit of
// 0 means no limit.
func (s *Store) ListClassificationEntries(limit int) ([]*model.ClassificationEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM classification_entries ORDER BY id`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, limit)
	}
	return s.queryEntries(query)
}

// EntriesByArticle returns the entries printed in one article.
func (s *Store) EntriesByArticle(articleID int64) ([]*model.ClassificationEntry, error) {
	return s.queryEntries(
		`SELECT `+entryColumns+` FROM classification_entries WHERE article_id = ? ORDER BY id`,
		articleID,
	)
}
