package model

import (
	"fmt"

	"github.com/nomenlabs/nomen/internal/model/schema"
	"github.com/nomenlabs/nomen/pkg/adt"
	"github.com/nomenlabs/nomen/pkg/lint"
)

// CitationGroup is a family of citations: a journal, a book, or the
// university issuing a thesis. Articles and names hang off it for
// year-range and series validation.
type CitationGroup struct {
	Base

	Name     string
	Type     CitationGroupType
	RegionID int64

	// TargetID is the replacement group when Type is redirect.
	TargetID int64

	RawTags string
}

func (c *CitationGroup) String() string {
	return fmt.Sprintf("CitationGroup #%d (%s)", c.ID, c.Name)
}

// RecordKind returns schema.KindCitationGroup.
func (c *CitationGroup) RecordKind() schema.Kind { return schema.KindCitationGroup }

// IsInvalid reports whether the group is redirected or deleted.
func (c *CitationGroup) IsInvalid() bool { return c.Type.Invalid() }

// Tags decodes the group's annotation tags.
func (c *CitationGroup) Tags() ([]CitationGroupTag, error) {
	return adt.DecodeList(c.RawTags, DecodeCitationGroupTag)
}

// SetTags replaces the annotation tags and marks the group dirty.
func (c *CitationGroup) SetTags(tags []CitationGroupTag) error {
	raw, err := adt.EncodeList(tags, EncodeCitationGroupTag)
	if err != nil {
		return err
	}
	c.RawTags = raw
	c.MarkDirty()
	return nil
}

// IgnoredLints returns the group's suppressions.
func (c *CitationGroup) IgnoredLints() []lint.Ignore {
	tags, err := c.Tags()
	if err != nil {
		return nil
	}
	return ignoresIn(tags)
}

// RemoveIgnoredLint drops the suppression for label.
func (c *CitationGroup) RemoveIgnoredLint(label string) {
	tags, err := c.Tags()
	if err != nil {
		return
	}
	if kept, removed := withoutIgnore(tags, label); removed {
		_ = c.SetTags(kept)
	}
}

// CheckRender verifies the type is in range and the tag column decodes.
func (c *CitationGroup) CheckRender() error {
	if !c.Type.Known() {
		return fmt.Errorf("bad type %d", int(c.Type))
	}
	if _, err := c.Tags(); err != nil {
		return fmt.Errorf("tags: %w", err)
	}
	return nil
}

// FieldDefs describes the group's fields for the generic lint path.
func (c *CitationGroup) FieldDefs() []schema.Field {
	var tagRefs []schema.Ref
	if tags, err := c.Tags(); err == nil {
		for _, t := range tags {
			tagRefs = append(tagRefs, CitationGroupTagRefs(t)...)
		}
	}
	return []schema.Field{
		schema.StrField("name", c.Name),
		schema.EnumField("type"),
		schema.FKField("region", schema.KindRegion, c.RegionID),
		schema.FKField("target", schema.KindCitationGroup, c.TargetID),
		schema.TagsField("tags", c.RawTags, tagRefs),
	}
}

// RequiredFields names the fields that must be set given the group's
// type.
func (c *CitationGroup) RequiredFields() []string {
	fields := []string{"name"}
	if c.Type == CGRedirect {
		fields = append(fields, "target")
	}
	return fields
}
