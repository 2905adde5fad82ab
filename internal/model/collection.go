package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nomenlabs/nomen/internal/model/schema"
	"github.com/nomenlabs/nomen/pkg/adt"
	"github.com/nomenlabs/nomen/pkg/lint"
)

// Collection is a specimen repository: the museum or institute holding
// type material. The label is the abbreviation used in specimen
// numbers.
type Collection struct {
	Base

	Label      string
	Name       string
	City       string
	LocationID int64
	Comment    string
	RawTags    string
}

func (c *Collection) String() string {
	return fmt.Sprintf("Collection #%d (%s)", c.ID, c.Label)
}

// RecordKind returns schema.KindCollection.
func (c *Collection) RecordKind() schema.Kind { return schema.KindCollection }

// IsInvalid always reports false: collections are merged, never
// soft-deleted.
func (c *Collection) IsInvalid() bool { return false }

// Tags decodes the collection's annotation tags.
func (c *Collection) Tags() ([]CollectionTag, error) {
	return adt.DecodeList(c.RawTags, DecodeCollectionTag)
}

// SetTags replaces the annotation tags and marks the collection dirty.
func (c *Collection) SetTags(tags []CollectionTag) error {
	raw, err := adt.EncodeList(tags, EncodeCollectionTag)
	if err != nil {
		return err
	}
	c.RawTags = raw
	c.MarkDirty()
	return nil
}

// IgnoredLints returns the collection's suppressions.
func (c *Collection) IgnoredLints() []lint.Ignore {
	tags, err := c.Tags()
	if err != nil {
		return nil
	}
	return ignoresIn(tags)
}

// RemoveIgnoredLint drops the suppression for label.
func (c *Collection) RemoveIgnoredLint(label string) {
	tags, err := c.Tags()
	if err != nil {
		return
	}
	if kept, removed := withoutIgnore(tags, label); removed {
		_ = c.SetTags(kept)
	}
}

// CheckRender verifies the tag column decodes.
func (c *Collection) CheckRender() error {
	if _, err := c.Tags(); err != nil {
		return fmt.Errorf("tags: %w", err)
	}
	return nil
}

// FieldDefs describes the collection's fields for the generic lint
// path.
func (c *Collection) FieldDefs() []schema.Field {
	var tagRefs []schema.Ref
	if tags, err := c.Tags(); err == nil {
		for _, t := range tags {
			tagRefs = append(tagRefs, CollectionTagRefs(t)...)
		}
	}
	return []schema.Field{
		schema.StrField("label", c.Label),
		schema.StrField("name", c.Name),
		schema.StrField("city", c.City),
		schema.FKField("location", schema.KindLocation, c.LocationID),
		schema.StrField("comment", c.Comment),
		schema.TagsField("tags", c.RawTags, tagRefs),
	}
}

// RequiredFields names the fields that must be set.
func (c *Collection) RequiredFields() []string {
	return []string{"label", "name", "location"}
}

// CollectionTag is one annotation on a Collection.
type CollectionTag interface{ collectionTag() }

// CollectionDatabase records the repository's online specimen
// database.
type CollectionDatabase struct {
	URL     string
	Comment string
}

// TypeCatalog records a published catalog of the repository's types.
type TypeCatalog struct {
	ArticleID int64
	Comment   string
}

func (CollectionDatabase) collectionTag() {}
func (TypeCatalog) collectionTag()        {}

// Discriminants are storage values; never renumber.
const (
	discCollectionDatabase uint8 = iota + 1
	discTypeCatalog
	discCollectionIgnoreLint
)

// EncodeCollectionTag serializes one tag into discriminant plus
// attributes.
func EncodeCollectionTag(t CollectionTag) (uint8, []any, error) {
	switch v := t.(type) {
	case CollectionDatabase:
		return discCollectionDatabase, []any{v.URL, adt.OptAttr(v.Comment)}, nil
	case TypeCatalog:
		return discTypeCatalog, []any{adt.RefAttr(v.ArticleID), adt.OptAttr(v.Comment)}, nil
	case IgnoreLint:
		return discCollectionIgnoreLint, []any{v.Label, adt.OptAttr(v.Comment)}, nil
	}
	return 0, nil, fmt.Errorf("%w: %T is not a collection tag", adt.ErrUnknownDiscriminant, t)
}

// DecodeCollectionTag reconstructs one tag from its serialized form.
func DecodeCollectionTag(disc uint8, raw []json.RawMessage) (CollectionTag, error) {
	switch disc {
	case discCollectionDatabase:
		if err := adt.Arity(disc, raw, 2); err != nil {
			return nil, err
		}
		url, err := adt.Str(raw[0])
		if err != nil {
			return nil, err
		}
		comment, err := adt.OptStr(raw[1])
		if err != nil {
			return nil, err
		}
		return CollectionDatabase{URL: url, Comment: comment}, nil
	case discTypeCatalog:
		if err := adt.Arity(disc, raw, 2); err != nil {
			return nil, err
		}
		id, err := adt.Ref(raw[0])
		if err != nil {
			return nil, err
		}
		comment, err := adt.OptStr(raw[1])
		if err != nil {
			return nil, err
		}
		return TypeCatalog{ArticleID: id, Comment: comment}, nil
	case discCollectionIgnoreLint:
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
	return nil, fmt.Errorf("%w: collection tag %d", adt.ErrUnknownDiscriminant, disc)
}

// CollectionTagVariant returns the tag's variant name.
func CollectionTagVariant(t CollectionTag) string {
	switch t.(type) {
	case CollectionDatabase:
		return "CollectionDatabase"
	case TypeCatalog:
		return "TypeCatalog"
	case IgnoreLint:
		return "IgnoreLint"
	}
	return fmt.Sprintf("%T", t)
}

// CollectionTagRefs returns the record references embedded in one tag.
func CollectionTagRefs(t CollectionTag) []schema.Ref {
	if v, ok := t.(TypeCatalog); ok && v.ArticleID != 0 {
		return []schema.Ref{{Kind: schema.KindArticle, ID: v.ArticleID}}
	}
	return nil
}

// CompareCollectionTags orders two tags: attribute-wise within a
// variant, by variant name across variants.
func CompareCollectionTags(a, b CollectionTag) int {
	va, vb := CollectionTagVariant(a), CollectionTagVariant(b)
	if va != vb {
		return strings.Compare(va, vb)
	}
	_, aa, _ := EncodeCollectionTag(a)
	_, ab, _ := EncodeCollectionTag(b)
	return adt.CompareAttrs(aa, ab)
}
