package collectioncheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomenlabs/nomen/internal/model"
	"github.com/nomenlabs/nomen/pkg/lint"
)

func TestCheckLabelFormat(t *testing.T) {
	lc := lint.NewContext(lint.Config{}, nil, nil)

	tests := []struct {
		label string
		ok    bool
	}{
		{"", true},
		{"BMNH", true},
		{"USNM", true},
		{"MNHN.F", true},
		{"lowercase", false},
		{"TWO WORDS", false},
	}
	for _, tt := range tests {
		issues, err := checkLabelFormat(&model.Collection{Label: tt.label}, lc)
		require.NoError(t, err)
		assert.Equal(t, tt.ok, len(issues) == 0, "label %q", tt.label)
	}
}

func TestCheckLabelFormatAutofixTrims(t *testing.T) {
	c := &model.Collection{Label: " BMNH ", Name: "Natural History Museum"}
	lc := lint.NewContext(lint.Config{Autofix: true}, nil, nil)

	issues, err := checkLabelFormat(c, lc)
	require.NoError(t, err)
	assert.Empty(t, issues)
	assert.Equal(t, "BMNH", c.Label)
	assert.True(t, c.Dirty())
}

func TestDupeKeyCaseInsensitive(t *testing.T) {
	a, ok := dupeKey(&model.Collection{Label: "Bmnh"})
	require.True(t, ok)
	b, ok := dupeKey(&model.Collection{Label: "BMNH"})
	require.True(t, ok)
	assert.Equal(t, a, b)

	_, ok = dupeKey(&model.Collection{})
	assert.False(t, ok)
}
