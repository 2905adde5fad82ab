package model

import (
	"fmt"

	"github.com/nomenlabs/nomen/internal/model/schema"
	"github.com/nomenlabs/nomen/pkg/lint"
)

// Location is a type locality: a place within a region, optionally
// bounded stratigraphically by a period range.
type Location struct {
	Base

	Name        string
	RegionID    int64
	MinPeriodID int64
	MaxPeriodID int64
	Deleted     bool
	Comment     string
}

func (l *Location) String() string {
	return fmt.Sprintf("Location #%d (%s)", l.ID, l.Name)
}

// RecordKind returns schema.KindLocation.
func (l *Location) RecordKind() schema.Kind { return schema.KindLocation }

// IsInvalid reports whether the location is deleted.
func (l *Location) IsInvalid() bool { return l.Deleted }

// IgnoredLints returns nil: locations carry no tag list.
func (l *Location) IgnoredLints() []lint.Ignore { return nil }

// RemoveIgnoredLint is a no-op.
func (l *Location) RemoveIgnoredLint(string) {}

// CheckRender always succeeds.
func (l *Location) CheckRender() error { return nil }

// FieldDefs describes the location's fields for the generic lint path.
func (l *Location) FieldDefs() []schema.Field {
	return []schema.Field{
		schema.StrField("name", l.Name),
		schema.FKField("region", schema.KindRegion, l.RegionID),
		schema.FKField("min_period", schema.KindPeriod, l.MinPeriodID),
		schema.FKField("max_period", schema.KindPeriod, l.MaxPeriodID),
		schema.StrField("comment", l.Comment),
	}
}

// RequiredFields names the fields that must be set.
func (l *Location) RequiredFields() []string {
	return []string{"name", "region"}
}

// Period is one stratigraphic or geochronological unit, with its age
// bounds in millions of years where known.
type Period struct {
	Base

	Name     string
	System   PeriodSystem
	ParentID int64
	MinAge   *float64
	MaxAge   *float64
}

func (p *Period) String() string {
	return fmt.Sprintf("Period #%d (%s)", p.ID, p.Name)
}

// RecordKind returns schema.KindPeriod.
func (p *Period) RecordKind() schema.Kind { return schema.KindPeriod }

// IsInvalid always reports false.
func (p *Period) IsInvalid() bool { return false }

// IgnoredLints returns nil: periods carry no tag list.
func (p *Period) IgnoredLints() []lint.Ignore { return nil }

// RemoveIgnoredLint is a no-op.
func (p *Period) RemoveIgnoredLint(string) {}

// CheckRender verifies the system enum is in range.
func (p *Period) CheckRender() error {
	if !p.System.Known() {
		return fmt.Errorf("bad system %d", int(p.System))
	}
	return nil
}

// FieldDefs describes the period's fields for the generic lint path.
func (p *Period) FieldDefs() []schema.Field {
	return []schema.Field{
		schema.StrField("name", p.Name),
		schema.EnumField("system"),
		schema.FKField("parent", schema.KindPeriod, p.ParentID),
		{Name: "min_age", Kind: schema.Scalar, Empty: p.MinAge == nil},
		{Name: "max_age", Kind: schema.Scalar, Empty: p.MaxAge == nil},
	}
}

// RequiredFields names the fields that must be set.
func (p *Period) RequiredFields() []string {
	return []string{"name"}
}

// Region is one geographic unit in the continent, country, subnational
// hierarchy.
type Region struct {
	Base

	Name     string
	Kind     RegionKind
	ParentID int64
}

func (r *Region) String() string {
	return fmt.Sprintf("Region #%d (%s)", r.ID, r.Name)
}

// RecordKind returns schema.KindRegion.
func (r *Region) RecordKind() schema.Kind { return schema.KindRegion }

// IsInvalid always reports false.
func (r *Region) IsInvalid() bool { return false }

// IgnoredLints returns nil: regions carry no tag list.
func (r *Region) IgnoredLints() []lint.Ignore { return nil }

// RemoveIgnoredLint is a no-op.
func (r *Region) RemoveIgnoredLint(string) {}

// CheckRender verifies the kind enum is in range.
func (r *Region) CheckRender() error {
	if !r.Kind.Known() {
		return fmt.Errorf("bad kind %d", int(r.Kind))
	}
	return nil
}

// FieldDefs describes the region's fields for the generic lint path.
func (r *Region) FieldDefs() []schema.Field {
	return []schema.Field{
		schema.StrField("name", r.Name),
		schema.EnumField("kind"),
		schema.FKField("parent", schema.KindRegion, r.ParentID),
	}
}

// RequiredFields names the fields that must be set. Continents have no
// parent.
func (r *Region) RequiredFields() []string {
	fields := []string{"name"}
	if r.Kind != RegionContinent {
		fields = append(fields, "parent")
	}
	return fields
}
