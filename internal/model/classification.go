package model

import (
	"fmt"

	"github.com/nomenlabs/nomen/internal/model/schema"
	"github.com/nomenlabs/nomen/pkg/lint"
)

// ClassificationEntry is one entry of a published classification,
// recorded exactly as printed. The rank is the printed string, not an
// enum, because publications use ranks the Code does not. MappedNameID
// links the entry to the Name it denotes.
type ClassificationEntry struct {
	Base

	ArticleID    int64
	Name         string
	Rank         string
	Page         string
	ParentID     int64
	MappedNameID int64
	Authority    string
	Year         string
}

func (e *ClassificationEntry) String() string {
	return fmt.Sprintf("ClassificationEntry #%d (%s, %s)", e.ID, e.Name, e.Rank)
}

// RecordKind returns schema.KindClassificationEntry.
func (e *ClassificationEntry) RecordKind() schema.Kind { return schema.KindClassificationEntry }

// IsInvalid always reports false.
func (e *ClassificationEntry) IsInvalid() bool { return false }

// IgnoredLints returns nil: entries carry no tag list, so checks on
// them cannot be suppressed.
func (e *ClassificationEntry) IgnoredLints() []lint.Ignore { return nil }

// RemoveIgnoredLint is a no-op.
func (e *ClassificationEntry) RemoveIgnoredLint(string) {}

// CheckRender always succeeds: entries hold only plain columns.
func (e *ClassificationEntry) CheckRender() error { return nil }

// FieldDefs describes the entry's fields for the generic lint path.
func (e *ClassificationEntry) FieldDefs() []schema.Field {
	return []schema.Field{
		schema.FKField("article", schema.KindArticle, e.ArticleID),
		schema.StrField("name", e.Name),
		schema.StrField("rank", e.Rank),
		schema.StrField("page", e.Page),
		schema.FKField("parent", schema.KindClassificationEntry, e.ParentID),
		schema.FKField("mapped_name", schema.KindName, e.MappedNameID),
		schema.StrField("authority", e.Authority),
		schema.StrField("year", e.Year),
	}
}

// RequiredFields names the fields that must be set.
func (e *ClassificationEntry) RequiredFields() []string {
	return []string{"article", "name", "rank"}
}
