package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/nomenlabs/nomen/internal/model"
	"github.com/nomenlabs/nomen/internal/model/schema"
)

const locationColumns = `id, name, region_id, min_period_id, max_period_id, deleted, comment`

func scanLocation(row interface{ Scan(...any) error }) (*model.Location, error) {
	l := &model.Location{}
	var region, minPeriod, maxPeriod sql.NullInt64
	err := row.Scan(&l.ID, &l.Name, &region, &minPeriod, &maxPeriod, &l.Deleted, &l.Comment)
	if err != nil {
		return nil, err
	}
	l.RegionID = scanID(region)
	l.MinPeriodID = scanID(minPeriod)
	l.MaxPeriodID = scanID(maxPeriod)
	return l, nil
}

// CreateLocation inserts a new location and fills in its id.
func (s *Store) CreateLocation(l *model.Location) error {
	res, err := s.db.Exec(
		`INSERT INTO locations (name, region_id, min_period_id, max_period_id, deleted, comment)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		l.Name, nullID(l.RegionID), nullID(l.MinPeriodID), nullID(l.MaxPeriodID),
		l.Deleted, l.Comment,
	)
	if err != nil {
		return fmt.Errorf("failed to create location: %w", err)
	}
	l.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read new location id: %w", err)
	}
	l.ClearDirty()
	s.cachePut(l)
	return nil
}

// GetLocation loads one location by id.
func (s *Store) GetLocation(id int64) (*model.Location, error) {
	if rec, ok := s.cache[schema.Ref{Kind: schema.KindLocation, ID: id}]; ok {
		return rec.(*model.Location), nil
	}
	l, err := scanLocation(s.db.QueryRow(
		`SELECT `+locationColumns+` FROM locations WHERE id = ?`, id))
	if err != nil {
		if nf := notFound(err, schema.KindLocation, id); nf != nil {
			return nil, nf
		}
		return nil, fmt.Errorf("failed to get location: %w", err)
	}
	s.cachePut(l)
	return l, nil
}

// SaveLocation writes a location back and clears its dirty flag.
func (s *Store) SaveLocation(l *model.Location) error {
	_, err := s.db.Exec(
		`UPDATE locations SET name = ?, region_id = ?, min_period_id = ?, max_period_id = ?,
			deleted = ?, comment = ? WHERE id = ?`,
		l.Name, nullID(l.RegionID), nullID(l.MinPeriodID), nullID(l.MaxPeriodID),
		l.Deleted, l.Comment, l.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to save location: %w", err)
	}
	l.ClearDirty()
	s.cachePut(l)
	return nil
}

// ListLocations returns locations ordered by name. Deleted locations
// are excluded when onlyValid is set. A limit of 0 means no limit.
func (s *Store) ListLocations(onlyValid bool, limit int) ([]*model.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations`
	if onlyValid {
		query += ` WHERE deleted = 0`
	}
	query += ` ORDER BY name`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, limit)
	}
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	var locations []*model.Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		s.cachePut(l)
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

const periodColumns = `id, name, system, parent_id, min_age, max_age`

func scanPeriod(row interface{ Scan(...any) error }) (*model.Period, error) {
	p := &model.Period{}
	var parent sql.NullInt64
	var minAge, maxAge sql.NullFloat64
	err := row.Scan(&p.ID, &p.Name, &p.System, &parent, &minAge, &maxAge)
	if err != nil {
		return nil, err
	}
	p.ParentID = scanID(parent)
	if minAge.Valid {
		v := minAge.Float64
		p.MinAge = &v
	}
	if maxAge.Valid {
		v := maxAge.Float64
		p.MaxAge = &v
	}
	return p, nil
}

func nullAge(age *float64) any {
	if age == nil {
		return nil
	}
	return *age
}

// CreatePeriod inserts a new period and fills in its id.
func (s *Store) CreatePeriod(p *model.Period) error {
	res, err := s.db.Exec(
		`INSERT INTO periods (name, system, parent_id, min_age, max_age)
		 VALUES (?, ?, ?, ?, ?)`,
		p.Name, p.System, nullID(p.ParentID), nullAge(p.MinAge), nullAge(p.MaxAge),
	)
	if err != nil {
		return fmt.Errorf("failed to create period: %w", err)
	}
	p.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read new period id: %w", err)
	}
	p.ClearDirty()
	s.cachePut(p)
	return nil
}

// GetPeriod loads one period by id.
func (s *Store) GetPeriod(id int64) (*model.Period, error) {
	if rec, ok := s.cache[schema.Ref{Kind: schema.KindPeriod, ID: id}]; ok {
		return rec.(*model.Period), nil
	}
	p, err := scanPeriod(s.db.QueryRow(
		`SELECT `+periodColumns+` FROM periods WHERE id = ?`, id))
	if err != nil {
		if nf := notFound(err, schema.KindPeriod, id); nf != nil {
			return nil, nf
		}
		return nil, fmt.Errorf("failed to get period: %w", err)
	}
	s.cachePut(p)
	return p, nil
}

// PeriodByName loads one period by its unique name.
func (s *Store) PeriodByName(name string) (*model.Period, error) {
	p, err := scanPeriod(s.db.QueryRow(
		`SELECT `+periodColumns+` FROM periods WHERE name = ?`, name))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("period %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get period: %w", err)
	}
	s.cachePut(p)
	return p, nil
}

// SavePeriod writes a period back and clears its dirty flag.
func (s *Store) SavePeriod(p *model.Period) error {
	_, err := s.db.Exec(
		`UPDATE periods SET name = ?, system = ?, parent_id = ?, min_age = ?, max_age = ?
		 WHERE id = ?`,
		p.Name, p.System, nullID(p.ParentID), nullAge(p.MinAge), nullAge(p.MaxAge), p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to save period: %w", err)
	}
	p.ClearDirty()
	s.cachePut(p)
	return nil
}

// UpsertPeriod creates the period or, when one with the same name
// already exists, updates it in place. Used by the seed loader so
// re-seeding stays idempotent.
func (s *Store) UpsertPeriod(p *model.Period) error {
	existing, err := s.PeriodByName(p.Name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return s.CreatePeriod(p)
		}
		return err
	}
	p.ID = existing.ID
	return s.SavePeriod(p)
}

// ListPeriods returns all periods ordered by id.
func (s *Store) ListPeriods() ([]*model.Period, error) {
	rows, err := s.db.Query(`SELECT ` + periodColumns + ` FROM periods ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	defer rows.Close()

	var periods []*model.Period
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan period: %w", err)
		}
		s.cachePut(p)
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

const regionColumns = `id, name, kind, parent_id`

func scanRegion(row interface{ Scan(...any) error }) (*model.Region, error) {
	r := &model.Region{}
	var parent sql.NullInt64
	err := row.Scan(&r.ID, &r.Name, &r.Kind, &parent)
	if err != nil {
		return nil, err
	}
	r.ParentID = scanID(parent)
	return r, nil
}

// CreateRegion inserts a new region and fills in its id.
func (s *Store) CreateRegion(r *model.Region) error {
	res, err := s.db.Exec(
		`INSERT INTO regions (name, kind, parent_id) VALUES (?, ?, ?)`,
		r.Name, r.Kind, nullID(r.ParentID),
	)
	if err != nil {
		return fmt.Errorf("failed to create region: %w", err)
	}
	r.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read new region id: %w", err)
	}
	r.ClearDirty()
	s.cachePut(r)
	return nil
}

// GetRegion loads one region by id.
func (s *Store) GetRegion(id int64) (*model.Region, error) {
	if rec, ok := s.cache[schema.Ref{Kind: schema.KindRegion, ID: id}]; ok {
		return rec.(*model.Region), nil
	}
	r, err := scanRegion(s.db.QueryRow(
		`SELECT `+regionColumns+` FROM regions WHERE id = ?`, id))
	if err != nil {
		if nf := notFound(err, schema.KindRegion, id); nf != nil {
			return nil, nf
		}
		return nil, fmt.Errorf("failed to get region: %w", err)
	}
	s.cachePut(r)
	return r, nil
}

// RegionByName loads one region by its unique name.
func (s *Store) RegionByName(name string) (*model.Region, error) {
	r, err := scanRegion(s.db.QueryRow(
		`SELECT `+regionColumns+` FROM regions WHERE name = ?`, name))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("region %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get region: %w", err)
	}
	s.cachePut(r)
	return r, nil
}

// SaveRegion writes a region back and clears its dirty flag.
func (s *Store) SaveRegion(r *model.Region) error {
	_, err := s.db.Exec(
		`UPDATE regions SET name = ?, kind = ?, parent_id = ? WHERE id = ?`,
		r.Name, r.Kind, nullID(r.ParentID), r.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to save region: %w", err)
	}
	r.ClearDirty()
	s.cachePut(r)
	return nil
}

// UpsertRegion creates the region or updates the existing row with the
// same name. Used by the seed loader.
func (s *Store) UpsertRegion(r *model.Region) error {
	existing, err := s.RegionByName(r.Name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return s.CreateRegion(r)
		}
		return err
	}
	r.ID = existing.ID
	return s.SaveRegion(r)
}

// ListRegions returns all regions ordered by id.
func (s *Store) ListRegions() ([]*model.Region, error) {
	rows, err := s.db.Query(`SELECT ` + regionColumns + ` FROM regions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list regions: %w", err)
	}
	defer rows.Close()

	var regions []*model.Region
	for rows.Next() {
		r, err := scanRegion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan region: %w", err)
		}
		s.cachePut(r)
		regions = append(regions, r)
	}
	return regions, rows.Err()
}
