// Package cecheck is the rule catalog for ClassificationEntry records.
package cecheck

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nomenlabs/nomen/internal/model"
	"github.com/nomenlabs/nomen/internal/store"
	"github.com/nomenlabs/nomen/pkg/lint"
)

var pageRe = regexp.MustCompile(`^(\d+(-\d+)?|[ivxlcdm]+(-[ivxlcdm]+)?)$`)

// New builds the ClassificationEntry registry.
func New(st *store.Store) *lint.Registry[*model.ClassificationEntry] {
	r := lint.New[*model.ClassificationEntry]("classification-entry")

	r.Register("mapped_name", func(e *model.ClassificationEntry, lc *lint.Context) ([]string, error) {
		return checkMappedName(st, e)
	})
	r.Register("parent_article", func(e *model.ClassificationEntry, lc *lint.Context) ([]string, error) {
		return checkParentArticle(st, e)
	})
	r.Register("page_format", checkPageFormat)

	return r
}

// checkMappedName requires the mapped name's group to be consistent
// with the printed rank, where the rank string parses.
func checkMappedName(st *store.Store, e *model.ClassificationEntry) ([]string, error) {
	if e.MappedNameID == 0 {
		return nil, nil
	}
	mapped, err := st.GetName(e.MappedNameID)
	if err != nil {
		return nil, nil
	}
	rank, err := model.ParseRank(strings.ToLower(e.Rank))
	if err != nil {
		// publications use ranks the Code does not; skip the comparison
		return nil, nil
	}
	if want := rank.Group(); mapped.Group != want {
		return []string{fmt.Sprintf("mapped name %s is %s-group, printed rank %q needs %s-group",
			mapped, mapped.Group, e.Rank, want)}, nil
	}
	return nil, nil
}

// checkParentArticle requires the parent entry to come from the same
// publication.
func checkParentArticle(st *store.Store, e *model.ClassificationEntry) ([]string, error) {
	if e.ParentID == 0 {
		return nil, nil
	}
	parent, err := st.GetClassificationEntry(e.ParentID)
	if err != nil {
		return nil, nil
	}
	if parent.ArticleID != e.ArticleID {
		return []string{fmt.Sprintf("parent entry %s is from a different article", parent)}, nil
	}
	return nil, nil
}

func checkPageFormat(e *model.ClassificationEntry, lc *lint.Context) ([]string, error) {
	if e.Page == "" {
		return nil, nil
	}
	if !pageRe.MatchString(e.Page) {
		return []string{fmt.Sprintf("malformed page %q", e.Page)}, nil
	}
	return nil, nil
}
