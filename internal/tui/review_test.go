package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/list"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomenlabs/nomen/internal/model"
	"github.com/nomenlabs/nomen/internal/store"
)

func TestIssueLabel(t *testing.T) {
	tests := []struct {
		issue string
		want  string
	}{
		{`Name #1 (major): leading whitespace [root_name_format]`, "root_name_format"},
		{`Article #2 (x): missing required field "year" [required_fields]`, "required_fields"},
		{"no label here", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, issueLabel(tt.issue), tt.issue)
	}
}

func TestIssueItemDescription(t *testing.T) {
	item := issueItem{
		rec:   &model.Name{RootName: "major"},
		issue: "something is off [year_format]",
	}
	assert.Equal(t, "something is off [year_format]", item.Description())

	item.ignored = true
	assert.Contains(t, item.Description(), "(suppressed)")
}

func TestIgnoreSelectedPersistsSuppression(t *testing.T) {
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	defer func() { _ = st.Close() }()

	name := &model.Name{RootName: "major", Authority: "Smith", Year: "1800"}
	require.NoError(t, st.CreateName(name))

	issue := name.String() + ": odd year [year_format]"
	items := []list.Item{issueItem{rec: name, issue: issue, label: issueLabel(issue)}}
	l := list.New(items, list.NewDefaultDelegate(), 60, 20)

	m := reviewModel{list: l, st: st}
	updated, _ := m.ignoreSelected()
	rm, ok := updated.(reviewModel)
	require.True(t, ok)
	require.NoError(t, rm.err)

	ignores := name.IgnoredLints()
	require.Len(t, ignores, 1)
	assert.Equal(t, "year_format", ignores[0].Label)
	assert.False(t, name.Dirty(), "save should clear the dirty flag")
}

func TestIgnoreSelectedUnsupportedKind(t *testing.T) {
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	defer func() { _ = st.Close() }()

	region := &model.Region{Name: "Africa"}
	require.NoError(t, st.CreateRegion(region))

	issue := region.String() + ": odd name [name_format]"
	items := []list.Item{issueItem{rec: region, issue: issue, label: "name_format"}}
	l := list.New(items, list.NewDefaultDelegate(), 60, 20)

	m := reviewModel{list: l, st: st}
	updated, _ := m.ignoreSelected()
	rm, ok := updated.(reviewModel)
	require.True(t, ok)
	require.NoError(t, rm.err)
	assert.Contains(t, rm.status, "cannot carry suppressions")
}
