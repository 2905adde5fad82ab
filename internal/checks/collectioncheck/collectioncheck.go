// Package collectioncheck is the rule catalog for Collection records.
package collectioncheck

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nomenlabs/nomen/internal/model"
	"github.com/nomenlabs/nomen/internal/store"
	"github.com/nomenlabs/nomen/pkg/lint"
)

// labelRe matches repository abbreviations as used in specimen
// numbers: uppercase-led, no spaces.
var labelRe = regexp.MustCompile(`^[A-Z][A-Za-z]*(\.[A-Za-z]+)*$`)

// New builds the Collection registry.
func New(st *store.Store) *lint.Registry[*model.Collection] {
	r := lint.New[*model.Collection]("collection")

	r.Register("label_format", checkLabelFormat)
	lint.RegisterDupeFinder(r, "duplicate_collection",
		func() ([]*model.Collection, error) { return st.ListCollections(0) },
		dupeKey, nil)

	return r
}

func dupeKey(c *model.Collection) (string, bool) {
	if c.Label == "" {
		return "", false
	}
	return strings.ToUpper(c.Label), true
}

func checkLabelFormat(c *model.Collection, lc *lint.Context) ([]string, error) {
	if c.Label == "" {
		return nil, nil
	}
	trimmed := strings.TrimSpace(c.Label)
	if trimmed != c.Label {
		if lc.Config.Autofix {
			c.Label = trimmed
			c.MarkDirty()
			lc.Report("%s: trimming label whitespace", c)
		} else {
			return []string{fmt.Sprintf("label %q has surrounding whitespace", c.Label)}, nil
		}
	}
	if !labelRe.MatchString(c.Label) {
		return []string{fmt.Sprintf("label %q is not a valid repository abbreviation",
			c.Label)}, nil
	}
	return nil, nil
}
