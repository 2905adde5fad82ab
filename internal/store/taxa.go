package store

import (
	"database/sql"
	"fmt"

	"github.com/nomenlabs/nomen/internal/model"
	"github.com/nomenlabs/nomen/internal/model/schema"
)

const taxonColumns = `id, rank, valid_name, age_class, parent_id, base_name_id, tags`

func scanTaxon(row interface{ Scan(...any) error }) (*model.Taxon, error) {
	t := &model.Taxon{}
	var parent, baseName sql.NullInt64
	err := row.Scan(&t.ID, &t.Rank, &t.ValidName, &t.AgeClass, &parent, &baseName, &t.RawTags)
	if err != nil {
		return nil, err
	}
	t.ParentID = scanID(parent)
	t.BaseNameID = scanID(baseName)
	return t, nil
}

// CreateTaxon inserts a new taxon and fills in its id.
func (s *Store) CreateTaxon(t *model.Taxon) error {
	res, err := s.db.Exec(
		`INSERT INTO taxa (rank, valid_name, age_class, parent_id, base_name_id, tags)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.Rank, t.ValidName, t.AgeClass, nullID(t.ParentID), nullID(t.BaseNameID), t.RawTags,
	)
	if err != nil {
		return fmt.Errorf("failed to create taxon: %w", err)
	}
	t.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read new taxon id: %w", err)
	}
	t.ClearDirty()
	s.cachePut(t)
	return nil
}

// GetTaxon loads one taxon by id.
func (s *Store) GetTaxon(id int64) (*model.Taxon, error) {
	if rec, ok := s.cache[schema.Ref{Kind: schema.KindTaxon, ID: id}]; ok {
		return rec.(*model.Taxon), nil
	}
	t, err := scanTaxon(s.db.QueryRow(`SELECT `+taxonColumns+` FROM taxa WHERE id = ?`, id))
	if err != nil {
		if nf := notFound(err, schema.KindTaxon, id); nf != nil {
			return nil, nf
		}
		return nil, fmt.Errorf("failed to get taxon: %w", err)
	}
	s.cachePut(t)
	return t, nil
}

// SaveTaxon writes a taxon back and clears its dirty flag.
func (s *Store) SaveTaxon(t *model.Taxon) error {
	_, err := s.db.Exec(
		`UPDATE taxa SET rank = ?, valid_name = ?, age_class = ?, parent_id = ?,
			base_name_id = ?, tags = ? WHERE id = ?`,
		t.Rank, t.ValidName, t.AgeClass, nullID(t.ParentID), nullID(t.BaseNameID),
		t.RawTags, t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to save taxon: %w", err)
	}
	t.ClearDirty()
	s.cachePut(t)
	return nil
}

// ListTaxa returns all taxa ordered by id. A limit of 0 means no limit.
func (s *Store) ListTaxa(limit int) ([]*model.Taxon, error) {
	query := `SELECT ` + taxonColumns + ` FROM taxa ORDER BY id`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, limit)
	}
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list taxa: %w", err)
	}
	defer rows.Close()

	var taxa []*model.Taxon
	for rows.Next() {
		t, err := scanTaxon(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan taxon: %w", err)
		}
		s.cachePut(t)
		taxa = append(taxa, t)
	}
	return taxa, rows.Err()
}

// ChildTaxa returns the direct children of one taxon.
func (s *Store) ChildTaxa(parentID int64) ([]*model.Taxon, error) {
	rows, err := s.db.Query(
		`SELECT `+taxonColumns+` FROM taxa WHERE parent_id = ? ORDER BY id`, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list child taxa: %w", err)
	}
	defer rows.Close()

	var taxa []*model.Taxon
	for rows.Next() {
		t, err := scanTaxon(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan taxon: %w", err)
		}
		s.cachePut(t)
		taxa = append(taxa, t)
	}
	return taxa, rows.Err()
}
