package lint

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// specimen is a minimal Object for exercising the registry.
type specimen struct {
	id      int64
	label   string
	invalid bool
	ignores []Ignore
	dirty   bool
}

func (s *specimen) String() string { return fmt.Sprintf("specimen #%d (%s)", s.id, s.label) }
func (s *specimen) GetID() int64   { return s.id }
func (s *specimen) IsInvalid() bool {
	return s.invalid
}

func (s *specimen) IgnoredLints() []Ignore { return s.ignores }

func (s *specimen) RemoveIgnoredLint(label string) {
	kept := s.ignores[:0]
	for _, ig := range s.ignores {
		if ig.Label != label {
			kept = append(kept, ig)
		}
	}
	s.ignores = kept
	s.dirty = true
}

func yield(texts ...string) Check[*specimen] {
	return func(*specimen, *Context) ([]string, error) {
		return texts, nil
	}
}

func TestRunPrefixesIssues(t *testing.T) {
	r := New[*specimen]("specimen")
	r.Register("label_format", yield("label is empty"))

	res := r.Run(&specimen{id: 3, label: "x"}, NewContext(Config{}, nil, nil))
	require.Len(t, res.Issues, 1)
	assert.Equal(t, "specimen #3 (x): label is empty [label_format]", res.Issues[0])
	assert.Equal(t, 1, res.Checked)
}

func TestDisabledCheckExcludedByDefault(t *testing.T) {
	ran := 0
	r := New[*specimen]("specimen")
	r.Register("slow_check", func(*specimen, *Context) ([]string, error) {
		ran++
		return []string{"found something"}, nil
	}, Disabled())

	res := r.Run(&specimen{id: 1}, NewContext(Config{}, nil, nil))
	assert.Zero(t, ran)
	assert.Empty(t, res.Issues)

	res = r.Run(&specimen{id: 1}, NewContext(Config{EnableAll: true}, nil, nil))
	assert.Equal(t, 1, ran)
	require.Len(t, res.Issues, 1)
	assert.Contains(t, res.Issues[0], "[slow_check]")
}

func TestNetworkCheckSkippedWithoutNetwork(t *testing.T) {
	ran := false
	r := New[*specimen]("specimen")
	r.Register("remote_lookup", func(*specimen, *Context) ([]string, error) {
		ran = true
		return nil, nil
	}, RequiresNetwork())

	res := r.Run(&specimen{id: 1}, NewContext(Config{}, nil, nil))
	assert.False(t, ran)
	assert.Zero(t, res.Checked)

	r.Run(&specimen{id: 1}, NewContext(Config{NetworkEnabled: true}, nil, nil))
	assert.True(t, ran)
}

func TestSuppressionSwallowsIssuesAndDisablesPrompts(t *testing.T) {
	var sawInteractive, sawSuppressed bool
	r := New[*specimen]("specimen")
	r.Register("label_format", func(_ *specimen, lc *Context) ([]string, error) {
		sawInteractive = lc.Config.Interactive
		sawSuppressed = lc.Suppressed()
		return []string{"bad label"}, nil
	})

	e := &specimen{id: 1, ignores: []Ignore{{Label: "label_format", Comment: "known"}}}
	res := r.Run(e, NewContext(Config{Interactive: true}, nil, nil))

	assert.Empty(t, res.Issues)
	assert.Equal(t, []string{"label_format"}, res.UsedIgnores)
	assert.Empty(t, res.UnusedIgnores)
	assert.False(t, sawInteractive)
	assert.True(t, sawSuppressed)
}

func TestUnusedIgnoreReportedWithoutAutofix(t *testing.T) {
	r := New[*specimen]("specimen")
	r.Register("label_format", yield())

	e := &specimen{id: 1, ignores: []Ignore{{Label: "label_format"}}}
	res := r.Run(e, NewContext(Config{}, nil, nil))

	assert.Equal(t, []string{"label_format"}, res.UnusedIgnores)
	require.Len(t, res.Issues, 1)
	assert.Equal(t, "specimen #1 (): unused ignore tag [label_format]", res.Issues[0])
	assert.Len(t, e.ignores, 1)
	assert.False(t, e.dirty)
}

func TestUnusedIgnoreRemovedWithAutofix(t *testing.T) {
	r := New[*specimen]("specimen")
	r.Register("label_format", yield())

	var narration strings.Builder
	e := &specimen{id: 1, ignores: []Ignore{{Label: "label_format"}}}
	res := r.Run(e, NewContext(Config{Autofix: true}, nil, &narration))

	assert.Equal(t, []string{"label_format"}, res.UnusedIgnores)
	assert.Empty(t, res.Issues)
	assert.Empty(t, e.ignores)
	assert.True(t, e.dirty)
	assert.Contains(t, narration.String(), "removing unused ignore [label_format]")

	// A second pass has nothing left to reconcile.
	e.dirty = false
	res = r.Run(e, NewContext(Config{Autofix: true}, nil, nil))
	assert.Empty(t, res.UnusedIgnores)
	assert.Empty(t, res.Issues)
	assert.False(t, e.dirty)
}

func TestDisabledCheckIgnorePreserved(t *testing.T) {
	r := New[*specimen]("specimen")
	r.Register("slow_check", yield(), Disabled())

	e := &specimen{id: 1, ignores: []Ignore{{Label: "slow_check"}}}
	res := r.Run(e, NewContext(Config{Autofix: true}, nil, nil))

	assert.Empty(t, res.Issues)
	assert.Empty(t, res.UnusedIgnores)
	assert.Len(t, e.ignores, 1)
}

func TestNetworkCheckIgnorePreservedOffline(t *testing.T) {
	r := New[*specimen]("specimen")
	r.Register("remote_lookup", yield("remote mismatch"), RequiresNetwork())

	e := &specimen{id: 1, ignores: []Ignore{{Label: "remote_lookup"}}}
	res := r.Run(e, NewContext(Config{Autofix: true}, nil, nil))

	assert.Empty(t, res.Issues)
	assert.Equal(t, []string{"remote_lookup"}, res.UsedIgnores)
	assert.Len(t, e.ignores, 1)
}

func TestUnknownIgnoreLabelReconciled(t *testing.T) {
	r := New[*specimen]("specimen")
	r.Register("label_format", yield())

	e := &specimen{id: 1, ignores: []Ignore{{Label: "no_such_check"}}}
	res := r.Run(e, NewContext(Config{Autofix: true}, nil, nil))

	assert.Equal(t, []string{"no_such_check"}, res.UnusedIgnores)
	assert.Empty(t, e.ignores)
}

func TestReservedLabelLeftAlone(t *testing.T) {
	r := New[*specimen]("specimen")
	r.Reserve("refs")
	r.Register("year_format", yield())

	e := &specimen{id: 1, ignores: []Ignore{{Label: "refs"}}}
	res := r.Run(e, NewContext(Config{Autofix: true}, nil, nil))

	assert.Empty(t, res.Issues)
	assert.Empty(t, res.UnusedIgnores)
	assert.Equal(t, []Ignore{{Label: "refs"}}, e.IgnoredLints())
	assert.False(t, e.dirty)
}

func TestCheckErrorBecomesSyntheticIssue(t *testing.T) {
	r := New[*specimen]("specimen")
	r.Register("broken", func(*specimen, *Context) ([]string, error) {
		return nil, errors.New("no such column")
	})
	r.Register("later", yield("still ran"))

	res := r.Run(&specimen{id: 1}, NewContext(Config{}, nil, nil))
	require.Len(t, res.Issues, 2)
	assert.Equal(t, "specimen #1 (): check failed: no such column [broken]", res.Issues[0])
	assert.Contains(t, res.Issues[1], "[later]")
}

func TestCheckPanicBecomesSyntheticIssue(t *testing.T) {
	r := New[*specimen]("specimen")
	r.Register("crashy", func(*specimen, *Context) ([]string, error) {
		panic("index out of range")
	})
	r.Register("later", yield("still ran"))

	res := r.Run(&specimen{id: 1}, NewContext(Config{}, nil, nil))
	require.Len(t, res.Issues, 2)
	assert.Contains(t, res.Issues[0], "check panicked: index out of range")
	assert.Contains(t, res.Issues[0], "[crashy]")
}

func TestDuplicateLabelPanics(t *testing.T) {
	r := New[*specimen]("specimen")
	r.Register("label_format", yield())
	assert.Panics(t, func() {
		r.Register("label_format", yield())
	})
	assert.Panics(t, func() {
		r.Register("", yield())
	})
}

func TestChecksMetadata(t *testing.T) {
	r := New[*specimen]("specimen")
	r.Register("a", yield())
	r.Register("b", yield(), Disabled())
	r.Register("c", yield(), RequiresNetwork())

	infos := r.Checks()
	require.Len(t, infos, 3)
	assert.Equal(t, "a", infos[0].Label)
	assert.True(t, infos[1].Disabled)
	assert.True(t, infos[2].RequiresNetwork)
	assert.Equal(t, "specimen", r.Kind())
}

func TestDupeFinderFlagsAllButLowestID(t *testing.T) {
	pop := []*specimen{
		{id: 4, label: "mus"},
		{id: 2, label: "mus"},
		{id: 9, label: "rattus"},
	}
	r := New[*specimen]("specimen")
	RegisterDupeFinder(r, "duplicate_label",
		func() ([]*specimen, error) { return pop, nil },
		func(s *specimen) (string, bool) { return s.label, s.label != "" },
		nil,
	)

	lc := NewContext(Config{}, nil, nil)

	res := r.Run(pop[0], lc)
	require.Len(t, res.Issues, 1)
	assert.Equal(t, "specimen #4 (mus): possible duplicate of specimen #2 (mus) [duplicate_label]", res.Issues[0])

	// The lowest-id member is canonical and reports nothing.
	assert.Empty(t, r.Run(pop[1], lc).Issues)
	assert.Empty(t, r.Run(pop[2], lc).Issues)
}

func TestDupeFinderRevalidatesStaleGroups(t *testing.T) {
	pop := []*specimen{
		{id: 1, label: "mus"},
		{id: 2, label: "mus"},
	}
	r := New[*specimen]("specimen")
	RegisterDupeFinder(r, "duplicate_label",
		func() ([]*specimen, error) { return pop, nil },
		func(s *specimen) (string, bool) { return s.label, s.label != "" },
		nil,
	)

	lc := NewContext(Config{}, nil, nil)
	require.NotEmpty(t, r.Run(pop[1], lc).Issues)

	// Renaming one member after the cached snapshot dissolves the group.
	pop[0].label = "apodemus"
	assert.Empty(t, r.Run(pop[1], lc).Issues)
	assert.Empty(t, r.Run(pop[0], lc).Issues)
}

func TestDupeFinderFixerMergesGroup(t *testing.T) {
	pop := []*specimen{
		{id: 1, label: "mus"},
		{id: 2, label: "mus"},
	}
	var fixedKey string
	fixer := func(key string, group []*specimen, lc *Context) error {
		fixedKey = key
		require.Len(t, group, 2)
		// Merge everything but the canonical member away.
		for _, m := range group {
			if m.id != 1 {
				m.invalid = true
				m.label = ""
			}
		}
		lc.Report("merged %d records for %q", len(group)-1, key)
		return nil
	}

	r := New[*specimen]("specimen")
	RegisterDupeFinder(r, "duplicate_label",
		func() ([]*specimen, error) { return pop, nil },
		func(s *specimen) (string, bool) { return s.label, s.label != "" },
		fixer,
	)

	var narration strings.Builder
	lc := NewContext(Config{Autofix: true}, nil, &narration)

	res := r.Run(pop[1], lc)
	assert.Empty(t, res.Issues)
	assert.Equal(t, "mus", fixedKey)
	assert.Contains(t, narration.String(), "merged 1 records")

	// After the merge the grouping no longer reports the pair.
	assert.Empty(t, r.Run(pop[0], lc).Issues)
	assert.Empty(t, r.Run(pop[1], lc).Issues)
}

func TestDupeFinderFixerSkippedWhenSuppressed(t *testing.T) {
	pop := []*specimen{
		{id: 1, label: "mus"},
		{id: 2, label: "mus", ignores: []Ignore{{Label: "duplicate_label"}}},
	}
	fixed := false
	r := New[*specimen]("specimen")
	RegisterDupeFinder(r, "duplicate_label",
		func() ([]*specimen, error) { return pop, nil },
		func(s *specimen) (string, bool) { return s.label, s.label != "" },
		func(string, []*specimen, *Context) error {
			fixed = true
			return nil
		},
	)

	res := r.Run(pop[1], NewContext(Config{Autofix: true}, nil, nil))
	assert.False(t, fixed)
	assert.Empty(t, res.Issues)
	assert.Equal(t, []string{"duplicate_label"}, res.UsedIgnores)
}

func TestDupeFinderQueryErrorSurfaces(t *testing.T) {
	r := New[*specimen]("specimen")
	RegisterDupeFinder(r, "duplicate_label",
		func() ([]*specimen, error) { return nil, errors.New("db locked") },
		func(s *specimen) (string, bool) { return s.label, true },
		nil,
	)

	res := r.Run(&specimen{id: 1, label: "mus"}, NewContext(Config{}, nil, nil))
	require.Len(t, res.Issues, 1)
	assert.Contains(t, res.Issues[0], "check failed")
	assert.Contains(t, res.Issues[0], "db locked")
}
