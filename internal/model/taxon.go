package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nomenlabs/nomen/internal/model/schema"
	"github.com/nomenlabs/nomen/pkg/adt"
	"github.com/nomenlabs/nomen/pkg/lint"
)

// Taxon is one node in the valid classification tree. Its base name is
// the Name the taxon's valid name derives from.
type Taxon struct {
	Base

	Rank       Rank
	ValidName  string
	AgeClass   AgeClass
	ParentID   int64
	BaseNameID int64
	RawTags    string
}

func (t *Taxon) String() string {
	return fmt.Sprintf("Taxon #%d (%s %s)", t.ID, t.Rank, t.ValidName)
}

// RecordKind returns schema.KindTaxon.
func (t *Taxon) RecordKind() schema.Kind { return schema.KindTaxon }

// IsInvalid always reports false: taxa are removed by reassigning
// their names, never soft-deleted.
func (t *Taxon) IsInvalid() bool { return false }

// Tags decodes the taxon's annotation tags.
func (t *Taxon) Tags() ([]TaxonTag, error) {
	return adt.DecodeList(t.RawTags, DecodeTaxonTag)
}

// SetTags replaces the annotation tags and marks the taxon dirty.
func (t *Taxon) SetTags(tags []TaxonTag) error {
	raw, err := adt.EncodeList(tags, EncodeTaxonTag)
	if err != nil {
		return err
	}
	t.RawTags = raw
	t.MarkDirty()
	return nil
}

// IgnoredLints returns the taxon's suppressions.
func (t *Taxon) IgnoredLints() []lint.Ignore {
	tags, err := t.Tags()
	if err != nil {
		return nil
	}
	return ignoresIn(tags)
}

// RemoveIgnoredLint drops the suppression for label.
func (t *Taxon) RemoveIgnoredLint(label string) {
	tags, err := t.Tags()
	if err != nil {
		return
	}
	if kept, removed := withoutIgnore(tags, label); removed {
		_ = t.SetTags(kept)
	}
}

// CheckRender verifies enums are in range and the tag column decodes.
func (t *Taxon) CheckRender() error {
	if !t.Rank.Known() {
		return fmt.Errorf("bad rank %d", int(t.Rank))
	}
	if !t.AgeClass.Known() {
		return fmt.Errorf("bad age class %d", int(t.AgeClass))
	}
	if _, err := t.Tags(); err != nil {
		return fmt.Errorf("tags: %w", err)
	}
	return nil
}

// FieldDefs describes the taxon's fields for the generic lint path.
func (t *Taxon) FieldDefs() []schema.Field {
	var tagRefs []schema.Ref
	if tags, err := t.Tags(); err == nil {
		for _, tag := range tags {
			tagRefs = append(tagRefs, TaxonTagRefs(tag)...)
		}
	}
	return []schema.Field{
		schema.EnumField("rank"),
		schema.StrField("valid_name", t.ValidName),
		schema.EnumField("age_class"),
		schema.FKField("parent", schema.KindTaxon, t.ParentID),
		schema.FKField("base_name", schema.KindName, t.BaseNameID),
		schema.TagsField("tags", t.RawTags, tagRefs),
	}
}

// RequiredFields names the fields that must be set. Only the root of
// the tree may lack a parent.
func (t *Taxon) RequiredFields() []string {
	fields := []string{"valid_name", "base_name"}
	if t.Rank != RankClass {
		fields = append(fields, "parent")
	}
	return fields
}

// TaxonTag is one annotation on a Taxon.
type TaxonTag interface{ taxonTag() }

// EnglishCommonName records a vernacular name for the taxon.
type EnglishCommonName struct {
	Name string
}

// IncertaeSedis marks the taxon's placement as uncertain.
type IncertaeSedis struct {
	Comment string
}

func (EnglishCommonName) taxonTag() {}
func (IncertaeSedis) taxonTag()     {}

// Discriminants are storage values; never renumber.
const (
	discEnglishCommonName uint8 = iota + 1
	discIncertaeSedis
	discTaxonIgnoreLint
)

// EncodeTaxonTag serializes one tag into discriminant plus attributes.
func EncodeTaxonTag(t TaxonTag) (uint8, []any, error) {
	switch v := t.(type) {
	case EnglishCommonName:
		return discEnglishCommonName, []any{v.Name}, nil
	case IncertaeSedis:
		return discIncertaeSedis, []any{adt.OptAttr(v.Comment)}, nil
	case IgnoreLint:
		return discTaxonIgnoreLint, []any{v.Label, adt.OptAttr(v.Comment)}, nil
	}
	return 0, nil, fmt.Errorf("%w: %T is not a taxon tag", adt.ErrUnknownDiscriminant, t)
}

// DecodeTaxonTag reconstructs one tag from its serialized form.
func DecodeTaxonTag(disc uint8, raw []json.RawMessage) (TaxonTag, error) {
	switch disc {
	case discEnglishCommonName:
		if err := adt.Arity(disc, raw, 1); err != nil {
			return nil, err
		}
		name, err := adt.Str(raw[0])
		if err != nil {
			return nil, err
		}
		return EnglishCommonName{Name: name}, nil
	case discIncertaeSedis:
		if err := adt.Arity(disc, raw, 1); err != nil {
			return nil, err
		}
		comment, err := adt.OptStr(raw[0])
		if err != nil {
			return nil, err
		}
		return IncertaeSedis{Comment: comment}, nil
	case discTaxonIgnoreLint:
		if err := adt.Arity(disc, raw, 2); err != nil {
			return nil, err
		}
		label, err := adt.Str(raw[0])
		if err != nil {
			return nil, err
		}
		comment, err := adt.OptStr(raw[1])
		if err != nil {
			return nil, err
		}
		return IgnoreLint{Label: label, Comment: comment}, nil
	}
	return nil, fmt.Errorf("%w: taxon tag %d", adt.ErrUnknownDiscriminant, disc)
}

// TaxonTagVariant returns the tag's variant name.
func TaxonTagVariant(t TaxonTag) string {
	switch t.(type) {
	case EnglishCommonName:
		return "EnglishCommonName"
	case IncertaeSedis:
		return "IncertaeSedis"
	case IgnoreLint:
		return "IgnoreLint"
	}
	return fmt.Sprintf("%T", t)
}

// TaxonTagRefs returns the record references embedded in one tag.
func TaxonTagRefs(TaxonTag) []schema.Ref { return nil }

// CompareTaxonTags orders two tags: attribute-wise within a variant,
// by variant name across variants.
func CompareTaxonTags(a, b TaxonTag) int {
	va, vb := TaxonTagVariant(a), TaxonTagVariant(b)
	if va != vb {
		return strings.Compare(va, vb)
	}
	_, aa, _ := EncodeTaxonTag(a)
	_, ab, _ := EncodeTaxonTag(b)
	return adt.CompareAttrs(aa, ab)
}
