package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigRuns(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		label string
		want  bool
	}{
		{name: "empty config runs everything", cfg: Config{}, label: "a", want: true},
		{name: "only includes named", cfg: Config{Only: []string{"a", "b"}}, label: "a", want: true},
		{name: "only excludes rest", cfg: Config{Only: []string{"a"}}, label: "b", want: false},
		{name: "disabled excludes named", cfg: Config{Disabled: []string{"a"}}, label: "a", want: false},
		{name: "disabled keeps rest", cfg: Config{Disabled: []string{"a"}}, label: "b", want: true},
		{name: "only wins over disabled", cfg: Config{Only: []string{"a"}, Disabled: []string{"a"}}, label: "a", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.Runs(tt.label))
		})
	}
}

func TestOnlyFilterRestrictsRun(t *testing.T) {
	r := New[*specimen]("specimen")
	r.Register("label_format", yield("bad label"))
	r.Register("year_format", yield("bad year"))

	res := r.Run(&specimen{id: 1}, NewContext(Config{Only: []string{"year_format"}}, nil, nil))
	assert.Equal(t, 1, res.Checked)
	require.Len(t, res.Issues, 1)
	assert.Contains(t, res.Issues[0], "[year_format]")
}

func TestDisabledFilterSkipsCheck(t *testing.T) {
	r := New[*specimen]("specimen")
	r.Register("label_format", yield("bad label"))
	r.Register("year_format", yield("bad year"))

	res := r.Run(&specimen{id: 1}, NewContext(Config{Disabled: []string{"label_format"}}, nil, nil))
	assert.Equal(t, 1, res.Checked)
	require.Len(t, res.Issues, 1)
	assert.Contains(t, res.Issues[0], "[year_format]")
}

// A suppression for a check that did not run this pass must survive an
// autofix run: the skipped check cannot vouch that it is stale.
func TestFilteredCheckSuppressionSurvivesAutofix(t *testing.T) {
	r := New[*specimen]("specimen")
	r.Register("label_format", yield("bad label"))
	r.Register("year_format", yield())

	s := &specimen{id: 1, ignores: []Ignore{{Label: "label_format"}}}
	res := r.Run(s, NewContext(Config{Autofix: true, Only: []string{"year_format"}}, nil, nil))
	assert.Empty(t, res.Issues)
	assert.Len(t, s.ignores, 1, "suppression for the skipped check must remain")
	assert.False(t, s.dirty)
}
