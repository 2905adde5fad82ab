package taxoncheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomenlabs/nomen/internal/model"
	"github.com/nomenlabs/nomen/internal/store"
	"github.com/nomenlabs/nomen/pkg/lint"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCheckParentRank(t *testing.T) {
	st := newTestStore(t)
	family := &model.Taxon{Rank: model.RankFamily, ValidName: "Paridae"}
	require.NoError(t, st.CreateTaxon(family))

	genus := &model.Taxon{Rank: model.RankGenus, ValidName: "Parus", ParentID: family.ID}
	issues, err := checkParentRank(st, genus)
	require.NoError(t, err)
	assert.Empty(t, issues)

	// a genus may not hang under another genus
	other := &model.Taxon{Rank: model.RankGenus, ValidName: "Poecile"}
	require.NoError(t, st.CreateTaxon(other))
	genus.ParentID = other.ID
	issues, err = checkParentRank(st, genus)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], "does not outrank")
}

func TestCheckBaseNameGroup(t *testing.T) {
	st := newTestStore(t)
	base := &model.Name{Group: model.GroupSpecies, RootName: "major"}
	require.NoError(t, st.CreateName(base))

	species := &model.Taxon{Rank: model.RankSpecies, BaseNameID: base.ID}
	issues, err := checkBaseNameGroup(st, species)
	require.NoError(t, err)
	assert.Empty(t, issues)

	genus := &model.Taxon{Rank: model.RankGenus, BaseNameID: base.ID}
	issues, err = checkBaseNameGroup(st, genus)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], "species-group")
}

func TestCheckValidNameAutofix(t *testing.T) {
	st := newTestStore(t)
	base := &model.Name{
		Group:                 model.GroupSpecies,
		RootName:              "major",
		CorrectedOriginalName: "Parus major",
	}
	require.NoError(t, st.CreateName(base))

	tx := &model.Taxon{Rank: model.RankSpecies, BaseNameID: base.ID}
	lc := lint.NewContext(lint.Config{Autofix: true}, nil, nil)

	issues, err := checkValidName(st, tx, lc)
	require.NoError(t, err)
	assert.Empty(t, issues)
	assert.Equal(t, "Parus major", tx.ValidName)
	assert.True(t, tx.Dirty())

	// second pass sees the derived value and leaves it alone
	tx.ClearDirty()
	issues, err = checkValidName(st, tx, lc)
	require.NoError(t, err)
	assert.Empty(t, issues)
	assert.False(t, tx.Dirty())
}

func TestCheckValidNameMismatch(t *testing.T) {
	st := newTestStore(t)
	base := &model.Name{
		Group:                 model.GroupSpecies,
		RootName:              "major",
		CorrectedOriginalName: "Parus major",
	}
	require.NoError(t, st.CreateName(base))

	tx := &model.Taxon{Rank: model.RankSpecies, ValidName: "Parus minor", BaseNameID: base.ID}
	lc := lint.NewContext(lint.Config{Autofix: true}, nil, nil)

	issues, err := checkValidName(st, tx, lc)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], `"Parus major"`)
	assert.Equal(t, "Parus minor", tx.ValidName)
}

func TestCheckAgeClass(t *testing.T) {
	st := newTestStore(t)
	fossil := &model.Taxon{Rank: model.RankGenus, ValidName: "Palaeoparus", AgeClass: model.AgeFossil}
	require.NoError(t, st.CreateTaxon(fossil))

	child := &model.Taxon{Rank: model.RankSpecies, AgeClass: model.AgeExtant, ParentID: fossil.ID}
	issues, err := checkAgeClass(st, child)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], "under fossil parent")

	child.AgeClass = model.AgeFossil
	issues, err = checkAgeClass(st, child)
	require.NoError(t, err)
	assert.Empty(t, issues)
}
