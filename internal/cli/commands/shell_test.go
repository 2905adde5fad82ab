package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomenlabs/nomen/internal/model/schema"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want schema.Kind
	}{
		{"name", schema.KindName},
		{"names", schema.KindName},
		{"Taxa", schema.KindTaxon},
		{"citation-group", schema.KindCitationGroup},
		{"classification-entries", schema.KindClassificationEntry},
	}
	for _, tt := range tests {
		kind, err := parseKind(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, kind, tt.in)
	}

	_, err := parseKind("specimens")
	require.Error(t, err)
}

func TestLintScope(t *testing.T) {
	assert.Equal(t, "names", lintScope(schema.KindName))
	assert.Equal(t, "citation-groups", lintScope(schema.KindCitationGroup))
	assert.Equal(t, "all", lintScope(schema.KindRegion))
}
