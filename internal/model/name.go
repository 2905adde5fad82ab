package model

import (
	"fmt"

	"github.com/nomenlabs/nomen/internal/model/schema"
	"github.com/nomenlabs/nomen/pkg/adt"
	"github.com/nomenlabs/nomen/pkg/lint"
)

// Name is one nomenclatural name: the unit of the zoological record,
// distinct from the Taxon it is currently assigned to. A taxon has one
// valid name and any number of synonyms; every one is a Name row.
type Name struct {
	Base

	Group              Group
	RootName           string
	Status             Status
	NomenclatureStatus NomenclatureStatus
	TaxonID            int64

	// OriginalName is the name exactly as spelled in the original
	// description; CorrectedOriginalName normalizes it to the Code's
	// orthography.
	OriginalName          string
	CorrectedOriginalName string

	Authority     string
	Year          string
	PageDescribed string

	OriginalCitationID int64
	CitationGroupID    int64

	// TypeNameID is the type of the name: the type species for a
	// genus-group name, the type genus for a family-group name.
	TypeNameID int64

	CollectionID   int64
	TypeLocalityID int64
	TypeSpecimen   string

	RawTags     string
	RawTypeTags string
}

// EffectiveName returns the most specific spelling on record.
func (n *Name) EffectiveName() string {
	if n.CorrectedOriginalName != "" {
		return n.CorrectedOriginalName
	}
	if n.OriginalName != "" {
		return n.OriginalName
	}
	return n.RootName
}

func (n *Name) String() string {
	desc := n.EffectiveName()
	if n.Authority != "" {
		desc += " " + n.Authority
		if n.Year != "" {
			desc += ", " + n.Year
		}
	}
	return fmt.Sprintf("Name #%d (%s)", n.ID, desc)
}

// RecordKind returns schema.KindName.
func (n *Name) RecordKind() schema.Kind { return schema.KindName }

// IsInvalid reports whether the name is soft-deleted.
func (n *Name) IsInvalid() bool { return n.Status.Invalid() }

// Tags decodes the name's annotation tags.
func (n *Name) Tags() ([]NameTag, error) {
	return adt.DecodeList(n.RawTags, DecodeNameTag)
}

// SetTags replaces the annotation tags and marks the name dirty.
func (n *Name) SetTags(tags []NameTag) error {
	raw, err := adt.EncodeList(tags, EncodeNameTag)
	if err != nil {
		return err
	}
	n.RawTags = raw
	n.MarkDirty()
	return nil
}

// TypeTags decodes the type-specimen tags.
func (n *Name) TypeTags() ([]TypeTag, error) {
	return adt.DecodeList(n.RawTypeTags, DecodeTypeTag)
}

// SetTypeTags replaces the type-specimen tags and marks the name dirty.
func (n *Name) SetTypeTags(tags []TypeTag) error {
	raw, err := adt.EncodeList(tags, EncodeTypeTag)
	if err != nil {
		return err
	}
	n.RawTypeTags = raw
	n.MarkDirty()
	return nil
}

// IgnoredLints returns suppressions from both tag lists.
func (n *Name) IgnoredLints() []lint.Ignore {
	var out []lint.Ignore
	if tags, err := n.Tags(); err == nil {
		out = append(out, ignoresIn(tags)...)
	}
	if tags, err := n.TypeTags(); err == nil {
		out = append(out, ignoresIn(tags)...)
	}
	return out
}

// RemoveIgnoredLint drops the suppression for label from either tag
// list.
func (n *Name) RemoveIgnoredLint(label string) {
	if tags, err := n.Tags(); err == nil {
		if kept, removed := withoutIgnore(tags, label); removed {
			_ = n.SetTags(kept)
		}
	}
	if tags, err := n.TypeTags(); err == nil {
		if kept, removed := withoutIgnore(tags, label); removed {
			_ = n.SetTypeTags(kept)
		}
	}
}

// CheckRender verifies enums are in range and both tag columns decode.
func (n *Name) CheckRender() error {
	if !n.Group.Known() {
		return fmt.Errorf("bad group %d", int(n.Group))
	}
	if !n.Status.Known() {
		return fmt.Errorf("bad status %d", int(n.Status))
	}
	if !n.NomenclatureStatus.Known() {
		return fmt.Errorf("bad nomenclature status %d", int(n.NomenclatureStatus))
	}
	if _, err := n.Tags(); err != nil {
		return fmt.Errorf("tags: %w", err)
	}
	if _, err := n.TypeTags(); err != nil {
		return fmt.Errorf("type_tags: %w", err)
	}
	return nil
}

// FieldDefs describes the name's fields for the generic lint path.
func (n *Name) FieldDefs() []schema.Field {
	var tagRefs, typeTagRefs []schema.Ref
	if tags, err := n.Tags(); err == nil {
		for _, t := range tags {
			tagRefs = append(tagRefs, NameTagRefs(t)...)
		}
	}
	if tags, err := n.TypeTags(); err == nil {
		for _, t := range tags {
			typeTagRefs = append(typeTagRefs, TypeTagRefs(t)...)
		}
	}
	return []schema.Field{
		schema.EnumField("group"),
		schema.StrField("root_name", n.RootName),
		schema.EnumField("status"),
		schema.EnumField("nomenclature_status"),
		schema.FKField("taxon", schema.KindTaxon, n.TaxonID),
		schema.StrField("original_name", n.OriginalName),
		schema.StrField("corrected_original_name", n.CorrectedOriginalName),
		schema.StrField("authority", n.Authority),
		schema.StrField("year", n.Year),
		schema.StrField("page_described", n.PageDescribed),
		schema.FKField("original_citation", schema.KindArticle, n.OriginalCitationID),
		schema.FKField("citation_group", schema.KindCitationGroup, n.CitationGroupID),
		schema.FKField("type", schema.KindName, n.TypeNameID),
		schema.FKField("collection", schema.KindCollection, n.CollectionID),
		schema.FKField("type_locality", schema.KindLocation, n.TypeLocalityID),
		schema.StrField("type_specimen", n.TypeSpecimen),
		schema.TagsField("tags", n.RawTags, tagRefs),
		schema.TagsField("type_tags", n.RawTypeTags, typeTagRefs),
	}
}

// RequiredFields names the fields that must be set given the name's
// group and status.
func (n *Name) RequiredFields() []string {
	fields := []string{"root_name", "taxon", "authority", "year"}
	if n.Group == GroupSpecies || n.Group == GroupGenus {
		fields = append(fields, "original_name")
	}
	if n.OriginalName != "" {
		fields = append(fields, "corrected_original_name")
	}
	if n.OriginalCitationID != 0 {
		fields = append(fields, "page_described")
	}
	if n.NomenclatureStatus == NSAvailable &&
		(n.Group == GroupGenus || n.Group == GroupFamily) {
		fields = append(fields, "type")
	}
	return fields
}
