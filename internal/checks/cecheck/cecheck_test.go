package cecheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomenlabs/nomen/internal/model"
	"github.com/nomenlabs/nomen/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCheckMappedName(t *testing.T) {
	st := newTestStore(t)
	mapped := &model.Name{Group: model.GroupGenus, RootName: "Parus"}
	require.NoError(t, st.CreateName(mapped))

	e := &model.ClassificationEntry{Name: "Parus", Rank: "genus", MappedNameID: mapped.ID}
	issues, err := checkMappedName(st, e)
	require.NoError(t, err)
	assert.Empty(t, issues)

	e.Rank = "species"
	issues, err = checkMappedName(st, e)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], "genus-group")

	// ranks outside the Code are not compared
	e.Rank = "Abtheilung"
	issues, err = checkMappedName(st, e)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestCheckParentArticle(t *testing.T) {
	st := newTestStore(t)
	a := &model.Article{Name: "Smith 1900", Kind: model.ArticleJournal}
	b := &model.Article{Name: "Jones 1901", Kind: model.ArticleJournal}
	require.NoError(t, st.CreateArticle(a))
	require.NoError(t, st.CreateArticle(b))

	parent := &model.ClassificationEntry{ArticleID: a.ID, Name: "Paridae", Rank: "family"}
	require.NoError(t, st.CreateClassificationEntry(parent))

	same := &model.ClassificationEntry{ArticleID: a.ID, Name: "Parus", Rank: "genus", ParentID: parent.ID}
	issues, err := checkParentArticle(st, same)
	require.NoError(t, err)
	assert.Empty(t, issues)

	other := &model.ClassificationEntry{ArticleID: b.ID, Name: "Parus", Rank: "genus", ParentID: parent.ID}
	issues, err = checkParentArticle(st, other)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], "different article")
}

func TestCheckPageFormat(t *testing.T) {
	tests := []struct {
		page string
		ok   bool
	}{
		{"", true},
		{"12", true},
		{"12-15", true},
		{"xii", true},
		{"iv-vi", true},
		{"p. 12", false},
		{"12a", false},
	}
	for _, tt := range tests {
		issues, err := checkPageFormat(&model.ClassificationEntry{Page: tt.page}, nil)
		require.NoError(t, err)
		assert.Equal(t, tt.ok, len(issues) == 0, "page %q", tt.page)
	}
}
