package store

import (
	"database/sql"
	"fmt"

	"github.com/nomenlabs/nomen/internal/model"
	"github.com/nomenlabs/nomen/internal/model/schema"
)

const nameColumns = `id, group_id, root_name, status, nomenclature_status, taxon_id,
	original_name, corrected_original_name, authority, year, page_described,
	original_citation_id, citation_group_id, type_name_id, collection_id,
	type_locality_id, type_specimen, tags, type_tags`

func scanName(row interface{ Scan(...any) error }) (*model.Name, error) {
	n := &model.Name{}
	var taxon, citation, cg, typeName, coll, loc sql.NullInt64
	err := row.Scan(
		&n.ID, &n.Group, &n.RootName, &n.Status, &n.NomenclatureStatus, &taxon,
		&n.OriginalName, &n.CorrectedOriginalName, &n.Authority, &n.Year, &n.PageDescribed,
		&citation, &cg, &typeName, &coll, &loc, &n.TypeSpecimen, &n.RawTags, &n.RawTypeTags,
	)
	if err != nil {
		return nil, err
	}
	n.TaxonID = scanID(taxon)
	n.OriginalCitationID = scanID(citation)
	n.CitationGroupID = scanID(cg)
	n.TypeNameID = scanID(typeName)
	n.CollectionID = scanID(coll)
	n.TypeLocalityID = scanID(loc)
	return n, nil
}

// CreateName inserts a new name and fills in its id.
func (s *Store) CreateName(n *model.Name) error {
	res, err := s.db.Exec(
		`INSERT INTO names (group_id, root_name, status, nomenclature_status, taxon_id,
			original_name, corrected_original_name, authority, year, page_described,
			original_citation_id, citation_group_id, type_name_id, collection_id,
			type_locality_id, type_specimen, tags, type_tags)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.Group, n.RootName, n.Status, n.NomenclatureStatus, nullID(n.TaxonID),
		n.OriginalName, n.CorrectedOriginalName, n.Authority, n.Year, n.PageDescribed,
		nullID(n.OriginalCitationID), nullID(n.CitationGroupID), nullID(n.TypeNameID),
		nullID(n.CollectionID), nullID(n.TypeLocalityID), n.TypeSpecimen, n.RawTags, n.RawTypeTags,
	)
	if err != nil {
		return fmt.Errorf("failed to create name: %w", err)
	}
	n.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read new name id: %w", err)
	}
	n.ClearDirty()
	s.cachePut(n)
	return nil
}

// GetName loads one name by id.
func (s *Store) GetName(id int64) (*model.Name, error) {
	if rec, ok := s.cache[schema.Ref{Kind: schema.KindName, ID: id}]; ok {
		return rec.(*model.Name), nil
	}
	n, err := scanName(s.db.QueryRow(`SELECT `+nameColumns+` FROM names WHERE id = ?`, id))
	if err != nil {
		if nf := notFound(err, schema.KindName, id); nf != nil {
			return nil, nf
		}
		return nil, fmt.Errorf("failed to get name: %w", err)
	}
	s.cachePut(n)
	return n, nil
}

// SaveName writes a name back and clears its dirty flag.
func (s *Store) SaveName(n *model.Name) error {
	_, err := s.db.Exec(
		`UPDATE names SET group_id = ?, root_name = ?, status = ?, nomenclature_status = ?,
			taxon_id = ?, original_name = ?, corrected_original_name = ?, authority = ?,
			year = ?, page_described = ?, original_citation_id = ?, citation_group_id = ?,
			type_name_id = ?, collection_id = ?, type_locality_id = ?, type_specimen = ?,
			tags = ?, type_tags = ?
		 WHERE id = ?`,
		n.Group, n.RootName, n.Status, n.NomenclatureStatus, nullID(n.TaxonID),
		n.OriginalName, n.CorrectedOriginalName, n.Authority, n.Year, n.PageDescribed,
		nullID(n.OriginalCitationID), nullID(n.CitationGroupID), nullID(n.TypeNameID),
		nullID(n.CollectionID), nullID(n.TypeLocalityID), n.TypeSpecimen,
		n.RawTags, n.RawTypeTags, n.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to save name: %w", err)
	}
	n.ClearDirty()
	s.cachePut(n)
	return nil
}

func (s *Store) queryNames(query string, args ...any) ([]*model.Name, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query names: %w", err)
	}
	defer rows.Close()

	var names []*model.Name
	for rows.Next() {
		n, err := scanName(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan name: %w", err)
		}
		s.cachePut(n)
		names = append(names, n)
	}
	return names, rows.Err()
}

// ListNames returns names ordered by id. With onlyValid, soft-deleted
// names are excluded. A limit of 0 means no limit.
func (s *Store) ListNames(onlyValid bool, limit int) ([]*model.Name, error) {
	query := `SELECT ` + nameColumns + ` FROM names`
	if onlyValid {
		query += fmt.Sprintf(` WHERE status NOT IN (%d, %d)`,
			model.StatusSpurious, model.StatusRemoved)
	}
	query += ` ORDER BY id`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, limit)
	}
	return s.queryNames(query)
}

// NamesByTaxon returns the valid names assigned to one taxon.
func (s *Store) NamesByTaxon(taxonID int64) ([]*model.Name, error) {
	return s.queryNames(
		`SELECT `+nameColumns+` FROM names
		 WHERE taxon_id = ? AND status NOT IN (?, ?) ORDER BY id`,
		taxonID, model.StatusSpurious, model.StatusRemoved,
	)
}

// NamesByRootName returns the valid names in a group sharing a root
// name, the raw population for homonymy comparison.
func (s *Store) NamesByRootName(group model.Group, rootName string) ([]*model.Name, error) {
	return s.queryNames(
		`SELECT `+nameColumns+` FROM names
		 WHERE group_id = ? AND root_name = ? AND status NOT IN (?, ?) ORDER BY id`,
		group, rootName, model.StatusSpurious, model.StatusRemoved,
	)
}

// NamesByOriginalGenus returns the valid species-group names whose
// corrected original name places them in the given genus: the candidate
// population for primary homonym comparison.
func (s *Store) NamesByOriginalGenus(genus string) ([]*model.Name, error) {
	return s.queryNames(
		`SELECT `+nameColumns+` FROM names
		 WHERE group_id = ? AND corrected_original_name LIKE ? AND status NOT IN (?, ?)
		 ORDER BY id`,
		model.GroupSpecies, genus+" %", model.StatusSpurious, model.StatusRemoved,
	)
}

// NamesByCitationGroup returns the valid names citing one group.
func (s *Store) NamesByCitationGroup(cgID int64) ([]*model.Name, error) {
	return s.queryNames(
		`SELECT `+nameColumns+` FROM names
		 WHERE citation_group_id = ? AND status NOT IN (?, ?) ORDER BY id`,
		cgID, model.StatusSpurious, model.StatusRemoved,
	)
}
