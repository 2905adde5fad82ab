package model

import (
	"fmt"

	"github.com/nomenlabs/nomen/internal/model/schema"
	"github.com/nomenlabs/nomen/pkg/adt"
	"github.com/nomenlabs/nomen/pkg/lint"
)

// Article is one bibliographic reference. The handle name is the stable
// citation key curators type; chapters point at their container through
// ParentID, and redirect articles point at their replacement the same
// way.
type Article struct {
	Base

	Name            string
	Kind            ArticleKind
	Authors         string
	Year            string
	Title           string
	CitationGroupID int64
	Series          string
	Volume          string
	Issue           string
	StartPage       string
	EndPage         string
	URL             string
	DOI             string
	ParentID        int64
	RawTags         string
}

func (a *Article) String() string {
	return fmt.Sprintf("Article #%d (%s)", a.ID, a.Name)
}

// RecordKind returns schema.KindArticle.
func (a *Article) RecordKind() schema.Kind { return schema.KindArticle }

// IsInvalid reports whether the article is redirected or removed.
func (a *Article) IsInvalid() bool { return a.Kind.Invalid() }

// Tags decodes the article's annotation tags.
func (a *Article) Tags() ([]ArticleTag, error) {
	return adt.DecodeList(a.RawTags, DecodeArticleTag)
}

// SetTags replaces the annotation tags and marks the article dirty.
func (a *Article) SetTags(tags []ArticleTag) error {
	raw, err := adt.EncodeList(tags, EncodeArticleTag)
	if err != nil {
		return err
	}
	a.RawTags = raw
	a.MarkDirty()
	return nil
}

// IgnoredLints returns the article's suppressions.
func (a *Article) IgnoredLints() []lint.Ignore {
	tags, err := a.Tags()
	if err != nil {
		return nil
	}
	return ignoresIn(tags)
}

// RemoveIgnoredLint drops the suppression for label.
func (a *Article) RemoveIgnoredLint(label string) {
	tags, err := a.Tags()
	if err != nil {
		return
	}
	if kept, removed := withoutIgnore(tags, label); removed {
		_ = a.SetTags(kept)
	}
}

// CheckRender verifies the kind is in range and the tag column decodes.
func (a *Article) CheckRender() error {
	if !a.Kind.Known() {
		return fmt.Errorf("bad kind %d", int(a.Kind))
	}
	if _, err := a.Tags(); err != nil {
		return fmt.Errorf("tags: %w", err)
	}
	return nil
}

// FieldDefs describes the article's fields for the generic lint path.
func (a *Article) FieldDefs() []schema.Field {
	var tagRefs []schema.Ref
	if tags, err := a.Tags(); err == nil {
		for _, t := range tags {
			tagRefs = append(tagRefs, ArticleTagRefs(t)...)
		}
	}
	return []schema.Field{
		schema.StrField("name", a.Name),
		schema.EnumField("kind"),
		schema.StrField("authors", a.Authors),
		schema.StrField("year", a.Year),
		schema.StrField("title", a.Title),
		schema.FKField("citation_group", schema.KindCitationGroup, a.CitationGroupID),
		schema.StrField("series", a.Series),
		schema.StrField("volume", a.Volume),
		schema.StrField("issue", a.Issue),
		schema.StrField("start_page", a.StartPage),
		schema.StrField("end_page", a.EndPage),
		schema.StrField("url", a.URL),
		schema.StrField("doi", a.DOI),
		schema.FKField("parent", schema.KindArticle, a.ParentID),
		schema.TagsField("tags", a.RawTags, tagRefs),
	}
}

// RequiredFields names the fields that must be set given the article's
// kind.
func (a *Article) RequiredFields() []string {
	fields := []string{"name"}
	if a.Kind.Invalid() {
		return append(fields, "parent")
	}
	fields = append(fields, "authors", "title", "year")
	switch a.Kind {
	case ArticleJournal:
		fields = append(fields, "citation_group", "volume", "start_page")
	case ArticleChapter:
		fields = append(fields, "parent", "start_page")
	case ArticleThesis:
		fields = append(fields, "citation_group")
	}
	return fields
}
