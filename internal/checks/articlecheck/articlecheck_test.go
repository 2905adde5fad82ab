package articlecheck

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

func TestCheckPageRange(t *testing.T) {
	lc := lint.NewContext(lint.Config{}, nil, nil)

	tests := []struct {
		name      string
		start     string
		end       string
		wantIssue bool
	}{
		{"ordered", "10", "25", false},
		{"equal", "10", "10", false},
		{"inverted", "25", "10", true},
		{"roman skipped", "xii", "10", false},
		{"open ended", "10", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &model.Article{StartPage: tt.start, EndPage: tt.end}
			issues, err := checkPageRange(a, lc)
			require.NoError(t, err)
			assert.Equal(t, tt.wantIssue, len(issues) > 0)
		})
	}
}

func TestCheckDOIFormat(t *testing.T) {
	lc := lint.NewContext(lint.Config{}, nil, nil)

	issues, err := checkDOIFormat(&model.Article{DOI: "10.1234/abc.123"}, lc)
	require.NoError(t, err)
	assert.Empty(t, issues)

	issues, err = checkDOIFormat(&model.Article{DOI: "not-a-doi"}, lc)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], "malformed DOI")

	issues, err = checkDOIFormat(&model.Article{DOI: "https://doi.org/10.1234/abc"}, lc)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], "resolver prefix")
}

func TestCheckDOIFormatAutofixStripsPrefix(t *testing.T) {
	a := &model.Article{Name: "Smith 1900", DOI: "doi:10.1234/abc"}
	lc := lint.NewContext(lint.Config{Autofix: true}, nil, nil)

	issues, err := checkDOIFormat(a, lc)
	require.NoError(t, err)
	assert.Empty(t, issues)
	assert.Equal(t, "10.1234/abc", a.DOI)
	assert.True(t, a.Dirty())
}

func TestCheckTitleFormat(t *testing.T) {
	a := &model.Article{Name: "Smith 1900", Title: "  On the  genus Parus. "}
	lc := lint.NewContext(lint.Config{Autofix: true}, nil, nil)

	issues, err := checkTitleFormat(a, lc)
	require.NoError(t, err)
	assert.Empty(t, issues)
	assert.Equal(t, "On the genus Parus", a.Title)

	// a clean title passes untouched
	a.ClearDirty()
	issues, err = checkTitleFormat(a, lc)
	require.NoError(t, err)
	assert.Empty(t, issues)
	assert.False(t, a.Dirty())
}

func TestCheckYearAgainstCitationGroupRange(t *testing.T) {
	st := newTestStore(t)
	cg := &model.CitationGroup{Name: "Annals", Type: model.CGJournal}
	require.NoError(t, cg.SetTags([]model.CitationGroupTag{
		model.YearRange{Start: "1850", End: "1900"},
	}))
	require.NoError(t, st.CreateCitationGroup(cg))

	deps := Deps{Store: st}
	lc := lint.NewContext(lint.Config{}, nil, nil)

	inRange := &model.Article{Year: "1877", CitationGroupID: cg.ID}
	issues, err := deps.checkYear(inRange, lc)
	require.NoError(t, err)
	assert.Empty(t, issues)

	outOfRange := &model.Article{Year: "1920", CitationGroupID: cg.ID}
	issues, err = deps.checkYear(outOfRange, lc)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], "outside")
}

func TestCheckSeriesRequired(t *testing.T) {
	st := newTestStore(t)
	cg := &model.CitationGroup{Name: "Annals", Type: model.CGJournal}
	require.NoError(t, cg.SetTags([]model.CitationGroupTag{model.MustHaveSeries{}}))
	require.NoError(t, st.CreateCitationGroup(cg))

	deps := Deps{Store: st}
	lc := lint.NewContext(lint.Config{}, nil, nil)

	a := &model.Article{Kind: model.ArticleJournal, CitationGroupID: cg.ID}
	issues, err := deps.checkSeriesRequired(a, lc)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], "requires a series")

	a.Series = "3"
	issues, err = deps.checkSeriesRequired(a, lc)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestValidISBN(t *testing.T) {
	assert.True(t, validISBN("0-306-40615-2"))
	assert.False(t, validISBN("0-306-40615-3"))
	assert.True(t, validISBN("978-0-306-40615-7"))
	assert.False(t, validISBN("978-0-306-40615-8"))
	assert.False(t, validISBN("12345"))
}

func TestCheckPartLocation(t *testing.T) {
	a := &model.Article{Name: "Smith 1900"}
	a.ID = 5
	require.NoError(t, a.SetTags([]model.ArticleTag{
		model.PartLocation{ParentArticleID: 5, StartPage: 20, EndPage: 10},
	}))
	lc := lint.NewContext(lint.Config{}, nil, nil)

	issues, err := Deps{}.checkPartLocation(a, lc)
	require.NoError(t, err)
	assert.Len(t, issues, 2)
}

func TestDupeKey(t *testing.T) {
	a, ok := dupeKey(&model.Article{Title: "On the genus  Parus.", Year: "1900a"})
	require.True(t, ok)
	b, ok := dupeKey(&model.Article{Title: "on the genus parus", Year: "1900"})
	require.True(t, ok)
	assert.Equal(t, a, b)

	_, ok = dupeKey(&model.Article{Title: "X", Year: "1900", Kind: model.ArticleRedirect})
	assert.False(t, ok)
}
