package commands

import (
	"fmt"
	"strconv"

	"github.com/nomenlabs/nomen/internal/model"
)

// fieldValue renders one field of a record for display. Foreign keys
// are resolved by the caller; this covers scalars, enums, and raw tag
// columns.
func fieldValue(rec model.Record, field string) string {
	switch r := rec.(type) {
	case *model.Name:
		switch field {
		case "group":
			return r.Group.String()
		case "root_name":
			return r.RootName
		case "status":
			return r.Status.String()
		case "nomenclature_status":
			return r.NomenclatureStatus.String()
		case "original_name":
			return r.OriginalName
		case "corrected_original_name":
			return r.CorrectedOriginalName
		case "authority":
			return r.Authority
		case "year":
			return r.Year
		case "page_described":
			return r.PageDescribed
		case "type_specimen":
			return r.TypeSpecimen
		case "tags":
			return r.RawTags
		case "type_tags":
			return r.RawTypeTags
		}
	case *model.Taxon:
		switch field {
		case "rank":
			return r.Rank.String()
		case "valid_name":
			return r.ValidName
		case "age_class":
			return r.AgeClass.String()
		case "tags":
			return r.RawTags
		}
	case *model.Article:
		switch field {
		case "name":
			return r.Name
		case "kind":
			return r.Kind.String()
		case "authors":
			return r.Authors
		case "year":
			return r.Year
		case "title":
			return r.Title
		case "series":
			return r.Series
		case "volume":
			return r.Volume
		case "issue":
			return r.Issue
		case "start_page":
			return r.StartPage
		case "end_page":
			return r.EndPage
		case "url":
			return r.URL
		case "doi":
			return r.DOI
		case "tags":
			return r.RawTags
		}
	case *model.CitationGroup:
		switch field {
		case "name":
			return r.Name
		case "type":
			return r.Type.String()
		case "tags":
			return r.RawTags
		}
	case *model.Collection:
		switch field {
		case "label":
			return r.Label
		case "name":
			return r.Name
		case "city":
			return r.City
		case "comment":
			return r.Comment
		case "tags":
			return r.RawTags
		}
	case *model.ClassificationEntry:
		switch field {
		case "name":
			return r.Name
		case "rank":
			return r.Rank
		case "page":
			return r.Page
		case "authority":
			return r.Authority
		case "year":
			return r.Year
		}
	case *model.Location:
		switch field {
		case "name":
			return r.Name
		case "comment":
			return r.Comment
		}
	case *model.Period:
		switch field {
		case "name":
			return r.Name
		case "system":
			return r.System.String()
		case "min_age":
			if r.MinAge != nil {
				return strconv.FormatFloat(*r.MinAge, 'f', -1, 64)
			}
		case "max_age":
			if r.MaxAge != nil {
				return strconv.FormatFloat(*r.MaxAge, 'f', -1, 64)
			}
		}
	case *model.Region:
		switch field {
		case "name":
			return r.Name
		case "kind":
			return r.Kind.String()
		}
	}
	return ""
}

// setField assigns one field of a record from its string form and marks
// the record dirty. Enum fields go through their parsers; foreign keys
// take the raw id. Tag columns are not editable this way.
func setField(rec model.Record, field, value string) error {
	assigned := false
	switch r := rec.(type) {
	case *model.Name:
		switch field {
		case "group":
			v, err := model.ParseGroup(value)
			if err != nil {
				return err
			}
			r.Group, assigned = v, true
		case "root_name":
			r.RootName, assigned = value, true
		case "status":
			v, err := model.ParseStatus(value)
			if err != nil {
				return err
			}
			r.Status, assigned = v, true
		case "nomenclature_status":
			v, err := model.ParseNomenclatureStatus(value)
			if err != nil {
				return err
			}
			r.NomenclatureStatus, assigned = v, true
		case "taxon":
			return setID(&r.TaxonID, value, r)
		case "original_name":
			r.OriginalName, assigned = value, true
		case "corrected_original_name":
			r.CorrectedOriginalName, assigned = value, true
		case "authority":
			r.Authority, assigned = value, true
		case "year":
			r.Year, assigned = value, true
		case "page_described":
			r.PageDescribed, assigned = value, true
		case "original_citation":
			return setID(&r.OriginalCitationID, value, r)
		case "citation_group":
			return setID(&r.CitationGroupID, value, r)
		case "type":
			return setID(&r.TypeNameID, value, r)
		case "collection":
			return setID(&r.CollectionID, value, r)
		case "type_locality":
			return setID(&r.TypeLocalityID, value, r)
		case "type_specimen":
			r.TypeSpecimen, assigned = value, true
		}
		if assigned {
			r.MarkDirty()
		}
	case *model.Taxon:
		switch field {
		case "rank":
			v, err := model.ParseRank(value)
			if err != nil {
				return err
			}
			r.Rank, assigned = v, true
		case "valid_name":
			r.ValidName, assigned = value, true
		case "age_class":
			v, err := model.ParseAgeClass(value)
			if err != nil {
				return err
			}
			r.AgeClass, assigned = v, true
		case "parent":
			return setID(&r.ParentID, value, r)
		case "base_name":
			return setID(&r.BaseNameID, value, r)
		}
		if assigned {
			r.MarkDirty()
		}
	case *model.Article:
		switch field {
		case "name":
			r.Name, assigned = value, true
		case "kind":
			v, err := model.ParseArticleKind(value)
			if err != nil {
				return err
			}
			r.Kind, assigned = v, true
		case "authors":
			r.Authors, assigned = value, true
		case "year":
			r.Year, assigned = value, true
		case "title":
			r.Title, assigned = value, true
		case "citation_group":
			return setID(&r.CitationGroupID, value, r)
		case "series":
			r.Series, assigned = value, true
		case "volume":
			r.Volume, assigned = value, true
		case "issue":
			r.Issue, assigned = value, true
		case "start_page":
			r.StartPage, assigned = value, true
		case "end_page":
			r.EndPage, assigned = value, true
		case "url":
			r.URL, assigned = value, true
		case "doi":
			r.DOI, assigned = value, true
		case "parent":
			return setID(&r.ParentID, value, r)
		}
		if assigned {
			r.MarkDirty()
		}
	case *model.CitationGroup:
		switch field {
		case "name":
			r.Name, assigned = value, true
		case "type":
			v, err := model.ParseCitationGroupType(value)
			if err != nil {
				return err
			}
			r.Type, assigned = v, true
		case "region":
			return setID(&r.RegionID, value, r)
		case "target":
			return setID(&r.TargetID, value, r)
		}
		if assigned {
			r.MarkDirty()
		}
	case *model.Collection:
		switch field {
		case "label":
			r.Label, assigned = value, true
		case "name":
			r.Name, assigned = value, true
		case "city":
			r.City, assigned = value, true
		case "location":
			return setID(&r.LocationID, value, r)
		case "comment":
			r.Comment, assigned = value, true
		}
		if assigned {
			r.MarkDirty()
		}
	case *model.ClassificationEntry:
		switch field {
		case "article":
			return setID(&r.ArticleID, value, r)
		case "name":
			r.Name, assigned = value, true
		case "rank":
			r.Rank, assigned = value, true
		case "page":
			r.Page, assigned = value, true
		case "parent":
			return setID(&r.ParentID, value, r)
		case "mapped_name":
			return setID(&r.MappedNameID, value, r)
		case "authority":
			r.Authority, assigned = value, true
		case "year":
			r.Year, assigned = value, true
		}
		if assigned {
			r.MarkDirty()
		}
	case *model.Location:
		switch field {
		case "name":
			r.Name, assigned = value, true
		case "region":
			return setID(&r.RegionID, value, r)
		case "min_period":
			return setID(&r.MinPeriodID, value, r)
		case "max_period":
			return setID(&r.MaxPeriodID, value, r)
		case "comment":
			r.Comment, assigned = value, true
		}
		if assigned {
			r.MarkDirty()
		}
	case *model.Period:
		switch field {
		case "name":
			r.Name, assigned = value, true
		case "system":
			v, err := model.ParsePeriodSystem(value)
			if err != nil {
				return err
			}
			r.System, assigned = v, true
		case "parent":
			return setID(&r.ParentID, value, r)
		case "min_age":
			return setAge(&r.MinAge, value, r)
		case "max_age":
			return setAge(&r.MaxAge, value, r)
		}
		if assigned {
			r.MarkDirty()
		}
	case *model.Region:
		switch field {
		case "name":
			r.Name, assigned = value, true
		case "kind":
			v, err := model.ParseRegionKind(value)
			if err != nil {
				return err
			}
			r.Kind, assigned = v, true
		case "parent":
			return setID(&r.ParentID, value, r)
		}
		if assigned {
			r.MarkDirty()
		}
	}
	if !assigned {
		return fmt.Errorf("%s has no editable field %q", rec.RecordKind(), field)
	}
	return nil
}

type dirtyMarker interface{ MarkDirty() }

// setID assigns a foreign-key field from its decimal form. An empty
// value or "0" clears the reference.
func setID(dst *int64, value string, rec dirtyMarker) error {
	if value == "" {
		*dst = 0
		rec.MarkDirty()
		return nil
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fmt.Errorf("bad id %q", value)
	}
	*dst = id
	rec.MarkDirty()
	return nil
}

// setAge assigns an optional age bound. An empty value clears it.
func setAge(dst **float64, value string, rec dirtyMarker) error {
	if value == "" {
		*dst = nil
		rec.MarkDirty()
		return nil
	}
	age, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("bad age %q", value)
	}
	*dst = &age
	rec.MarkDirty()
	return nil
}
