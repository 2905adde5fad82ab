// Package taxoncheck is the rule catalog for Taxon records.
package taxoncheck

import (
	"fmt"

	"github.com/nomenlabs/nomen/internal/model"
	"github.com/nomenlabs/nomen/internal/store"
	"github.com/nomenlabs/nomen/pkg/lint"
)

// New builds the Taxon registry.
func New(st *store.Store) *lint.Registry[*model.Taxon] {
	r := lint.New[*model.Taxon]("taxon")

	r.Register("parent_rank", func(t *model.Taxon, lc *lint.Context) ([]string, error) {
		return checkParentRank(st, t)
	})
	r.Register("base_name_group", func(t *model.Taxon, lc *lint.Context) ([]string, error) {
		return checkBaseNameGroup(st, t)
	})
	r.Register("valid_name", func(t *model.Taxon, lc *lint.Context) ([]string, error) {
		return checkValidName(st, t, lc)
	})
	r.Register("age_class", func(t *model.Taxon, lc *lint.Context) ([]string, error) {
		return checkAgeClass(st, t)
	})

	return r
}

// checkParentRank requires the parent to sit strictly higher in the
// tree.
func checkParentRank(st *store.Store, t *model.Taxon) ([]string, error) {
	if t.ParentID == 0 {
		return nil, nil
	}
	parent, err := st.GetTaxon(t.ParentID)
	if err != nil {
		return nil, nil
	}
	if parent.Rank <= t.Rank {
		return []string{fmt.Sprintf("parent %s does not outrank %s", parent, t.Rank)}, nil
	}
	return nil, nil
}

// checkBaseNameGroup requires the base name's group to match the
// taxon's rank.
func checkBaseNameGroup(st *store.Store, t *model.Taxon) ([]string, error) {
	if t.BaseNameID == 0 {
		return nil, nil
	}
	base, err := st.GetName(t.BaseNameID)
	if err != nil {
		return nil, nil
	}
	if want := t.Rank.Group(); base.Group != want {
		return []string{fmt.Sprintf("base name %s is %s-group, rank %s needs %s-group",
			base, base.Group, t.Rank, want)}, nil
	}
	return nil, nil
}

// checkValidName derives the taxon's display name from its base name
// and fills or verifies the stored value.
func checkValidName(st *store.Store, t *model.Taxon, lc *lint.Context) ([]string, error) {
	if t.BaseNameID == 0 {
		return nil, nil
	}
	base, err := st.GetName(t.BaseNameID)
	if err != nil {
		return nil, nil
	}
	derived := base.EffectiveName()
	if derived == "" || t.ValidName == derived {
		return nil, nil
	}
	if t.ValidName == "" && lc.Config.Autofix {
		t.ValidName = derived
		t.MarkDirty()
		lc.Report("%s: setting valid name to %q", t, derived)
		return nil, nil
	}
	return []string{fmt.Sprintf("valid name %q does not match base name's %q",
		t.ValidName, derived)}, nil
}

// checkAgeClass requires children of fossil taxa to be fossil too.
func checkAgeClass(st *store.Store, t *model.Taxon) ([]string, error) {
	if t.ParentID == 0 {
		return nil, nil
	}
	parent, err := st.GetTaxon(t.ParentID)
	if err != nil {
		return nil, nil
	}
	if parent.AgeClass == model.AgeFossil && t.AgeClass != model.AgeFossil {
		return []string{fmt.Sprintf("%s taxon under fossil parent %s", t.AgeClass, parent)}, nil
	}
	return nil, nil
}
