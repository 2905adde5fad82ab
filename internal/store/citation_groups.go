package store

import (
	"database/sql"
	"fmt"

	"github.com/nomenlabs/nomen/internal/model"
	"github.com/nomenlabs/nomen/internal/model/schema"
)

const citationGroupColumns = `id, name, type, region_id, target_id, tags`

func scanCitationGroup(row interface{ Scan(...any) error }) (*model.CitationGroup, error) {
	c := &model.CitationGroup{}
	var region, target sql.NullInt64
	err := row.Scan(&c.ID, &c.Name, &c.Type, &region, &target, &c.RawTags)
	if err != nil {
		return nil, err
	}
	c.RegionID = scanID(region)
	c.TargetID = scanID(target)
	return c, nil
}

// CreateCitationGroup inserts a new group and fills in its id.
func (s *Store) CreateCitationGroup(c *model.CitationGroup) error {
	res, err := s.db.Exec(
		`INSERT INTO citation_groups (name, type, region_id, target_id, tags)
		 VALUES (?, ?, ?, ?, ?)`,
		c.Name, c.Type, nullID(c.RegionID), nullID(c.TargetID), c.RawTags,
	)
	if err != nil {
		return fmt.Errorf("failed to create citation group: %w", err)
	}
	c.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read new citation group id: %w", err)
	}
	c.ClearDirty()
	s.cachePut(c)
	return nil
}

// GetCitationGroup loads one group by id.
func (s *Store) GetCitationGroup(id int64) (*model.CitationGroup, error) {
	if rec, ok := s.cache[schema.Ref{Kind: schema.KindCitationGroup, ID: id}]; ok {
		return rec.(*model.CitationGroup), nil
	}
	c, err := scanCitationGroup(s.db.QueryRow(
		`SELECT `+citationGroupColumns+` FROM citation_groups WHERE id = ?`, id))
	if err != nil {
		if nf := notFound(err, schema.KindCitationGroup, id); nf != nil {
			return nil, nf
		}
		return nil, fmt.Errorf("failed to get citation group: %w", err)
	}
	s.cachePut(c)
	return c, nil
}

// SaveCitationGroup writes a group back and clears its dirty flag.
func (s *Store) SaveCitationGroup(c *model.CitationGroup) error {
	_, err := s.db.Exec(
		`UPDATE citation_groups SET name = ?, type = ?, region_id = ?, target_id = ?, tags = ?
		 WHERE id = ?`,
		c.Name, c.Type, nullID(c.RegionID), nullID(c.TargetID), c.RawTags, c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to save citation group: %w", err)
	}
	c.ClearDirty()
	s.cachePut(c)
	return nil
}

// ListCitationGroups returns groups ordered by id. With onlyValid,
// redirected and deleted groups are excluded. A limit of 0 means no
// limit.
func (s *Store) ListCitationGroups(onlyValid bool, limit int) ([]*model.CitationGroup, error) {
	query := `SELECT ` + citationGroupColumns + ` FROM citation_groups`
	if onlyValid {
		query += fmt.Sprintf(` WHERE type NOT IN (%d, %d)`, model.CGRedirect, model.CGDeleted)
	}
	query += ` ORDER BY id`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, limit)
	}
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list citation groups: %w", err)
	}
	defer rows.Close()

	var groups []*model.CitationGroup
	for rows.Next() {
		c, err := scanCitationGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan citation group: %w", err)
		}
		s.cachePut(c)
		groups = append(groups, c)
	}
	return groups, rows.Err()
}
