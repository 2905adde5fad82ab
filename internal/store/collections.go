package store

import (
	"database/sql"
	"fmt"

	"github.com/nomenlabs/nomen/internal/model"
	"github.com/nomenlabs/nomen/internal/model/schema"
)

const collectionColumns = `id, label, name, city, location_id, comment, tags`

func scanCollection(row interface{ Scan(...any) error }) (*model.Collection, error) {
	c := &model.Collection{}
	var loc sql.NullInt64
	err := row.Scan(&c.ID, &c.Label, &c.Name, &c.City, &loc, &c.Comment, &c.RawTags)
	if err != nil {
		return nil, err
	}
	c.LocationID = scanID(loc)
	return c, nil
}

// CreateCollection inserts a new collection and fills in its id.
func (s *Store) CreateCollection(c *model.Collection) error {
	res, err := s.db.Exec(
		`INSERT INTO collections (label, name, city, location_id, comment, tags)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.Label, c.Name, c.City, nullID(c.LocationID), c.Comment, c.RawTags,
	)
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}
	c.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read new collection id: %w", err)
	}
	c.ClearDirty()
	s.cachePut(c)
	return nil
}

// GetCollection loads one collection by id.
func (s *Store) GetCollection(id int64) (*model.Collection, error) {
	if rec, ok := s.cache[schema.Ref{Kind: schema.KindCollection, ID: id}]; ok {
		return rec.(*model.Collection), nil
	}
	c, err := scanCollection(s.db.QueryRow(
		`SELECT `+collectionColumns+` FROM collections WHERE id = ?`, id))
	if err != nil {
		if nf := notFound(err, schema.KindCollection, id); nf != nil {
			return nil, nf
		}
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	s.cachePut(c)
	return c, nil
}

// SaveCollection writes a collection back and clears its dirty flag.
func (s *Store) SaveCollection(c *model.Collection) error {
	_, err := s.db.Exec(
		`UPDATE collections SET label = ?, name = ?, city = ?, location_id = ?,
			comment = ?, tags = ? WHERE id = ?`,
		c.Label, c.Name, c.City, nullID(c.LocationID), c.Comment, c.RawTags, c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to save collection: %w", err)
	}
	c.ClearDirty()
	s.cachePut(c)
	return nil
}

// ListCollections returns all collections ordered by id. A limit of 0
// means no limit.
func (s *Store) ListCollections(limit int) ([]*model.Collection, error) {
	query := `SELECT ` + collectionColumns + ` FROM collections ORDER BY id`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, limit)
	}
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	defer rows.Close()

	var collections []*model.Collection
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan collection: %w", err)
		}
		s.cachePut(c)
		collections = append(collections, c)
	}
	return collections, rows.Err()
}
