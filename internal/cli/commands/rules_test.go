package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomenlabs/nomen/pkg/lint"
)

func TestRulesListsEveryKind(t *testing.T) {
	setTestConfig(t)

	out, err := execute(t, NewRulesCommand())
	require.NoError(t, err)

	assert.Contains(t, out, "root_name_format")
	assert.Contains(t, out, "doi_format")
	assert.Contains(t, out, "duplicate_name")
	assert.Contains(t, out, "dupe-finder")
	assert.Contains(t, out, "network")
}

func TestRulesKindFilter(t *testing.T) {
	setTestConfig(t)

	out, err := execute(t, NewRulesCommand(), "--kind", "name")
	require.NoError(t, err)

	assert.Contains(t, out, "root_name_format")
	assert.NotContains(t, out, "doi_format")
}

func TestRulesJSON(t *testing.T) {
	setTestConfig(t)

	out, err := execute(t, NewRulesCommand(), "--format", "json")
	require.NoError(t, err)

	var byKind map[string][]lint.CheckInfo
	require.NoError(t, json.Unmarshal([]byte(out), &byKind))
	require.Contains(t, byKind, "name")
	require.Contains(t, byKind, "article")

	labels := make(map[string]lint.CheckInfo)
	for _, info := range byKind["article"] {
		labels[info.Label] = info
	}
	assert.True(t, labels["duplicate_article"].DupeFinder)
	assert.True(t, labels["bhl_item"].RequiresNetwork)
}
