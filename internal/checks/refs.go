package checks

import (
	"fmt"

	"github.com/nomenlabs/nomen/internal/model"
	"github.com/nomenlabs/nomen/internal/model/schema"
	"github.com/nomenlabs/nomen/pkg/lint"
)

// checkReferences walks every outbound reference the record embeds and
// verifies the target exists and is usable. A reference whose target
// has been redirected is rewritten under Autofix when the field is a
// plain foreign key; tag-embedded references cannot be rewritten
// generically and are reported instead. Issues carry the label "refs".
func (s *Suite) checkReferences(rec model.Record, lc *lint.Context) []string {
	var issues []string
	flag := func(format string, args ...any) {
		text := fmt.Sprintf(format, args...)
		issues = append(issues, fmt.Sprintf("%s: %s [%s]", rec, text, labelRefs))
	}

	for _, field := range rec.FieldDefs() {
		for _, ref := range field.Refs {
			res, err := s.store.Resolve(ref)
			if err != nil {
				flag("field %q: %v", field.Name, err)
				continue
			}
			if res.Missing {
				flag("field %q references missing %s #%d", field.Name, res.Target.Kind, res.Target.ID)
				continue
			}
			if res.Redirected {
				if field.Kind == schema.ForeignKey && lc.Config.Autofix &&
					applyRedirect(rec, field.Name, res.Target.ID) {
					lc.Report("%s: repointing %q at %s", rec, field.Name, res.Record)
				} else {
					flag("field %q references redirected record, now %s", field.Name, res.Record)
				}
			}
			if res.Invalid() {
				flag("field %q references invalid record %s", field.Name, res.Record)
			}
		}
	}
	return issues
}

// applyRedirect rewrites one foreign-key field to a new target id.
// Only fields whose target kinds can redirect (articles and citation
// groups) appear here; anything else reports false and the caller
// flags instead.
func applyRedirect(rec model.Record, field string, newID int64) bool {
	switch r := rec.(type) {
	case *model.Name:
		switch field {
		case "original_citation":
			r.OriginalCitationID = newID
		case "citation_group":
			r.CitationGroupID = newID
		default:
			return false
		}
		r.MarkDirty()
		return true
	case *model.Article:
		switch field {
		case "citation_group":
			r.CitationGroupID = newID
		case "parent":
			r.ParentID = newID
		default:
			return false
		}
		r.MarkDirty()
		return true
	case *model.CitationGroup:
		// collapsing a chain of redirect groups repoints the target
		if field != "target" {
			return false
		}
		r.TargetID = newID
		r.MarkDirty()
		return true
	case *model.ClassificationEntry:
		if field != "article" {
			return false
		}
		r.ArticleID = newID
		r.MarkDirty()
		return true
	}
	return false
}
