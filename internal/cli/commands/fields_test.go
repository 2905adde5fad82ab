package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomenlabs/nomen/internal/model"
)

func TestSetFieldScalar(t *testing.T) {
	n := &model.Name{RootName: "major"}

	require.NoError(t, setField(n, "authority", "Smith"))
	assert.Equal(t, "Smith", n.Authority)
	assert.True(t, n.Dirty())
}

func TestSetFieldEnum(t *testing.T) {
	tx := &model.Taxon{}

	require.NoError(t, setField(tx, "rank", "genus"))
	assert.Equal(t, model.RankGenus, tx.Rank)

	err := setField(tx, "rank", "kingdom")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown rank")
}

func TestSetFieldForeignKey(t *testing.T) {
	n := &model.Name{}

	require.NoError(t, setField(n, "taxon", "42"))
	assert.Equal(t, int64(42), n.TaxonID)

	require.NoError(t, setField(n, "taxon", ""))
	assert.Zero(t, n.TaxonID)

	require.Error(t, setField(n, "taxon", "forty-two"))
}

func TestSetFieldAgeBounds(t *testing.T) {
	p := &model.Period{Name: "Cretaceous"}

	require.NoError(t, setField(p, "min_age", "66"))
	require.NotNil(t, p.MinAge)
	assert.InDelta(t, 66.0, *p.MinAge, 0.001)

	require.NoError(t, setField(p, "min_age", ""))
	assert.Nil(t, p.MinAge)
}

func TestSetFieldUnknown(t *testing.T) {
	err := setField(&model.Collection{}, "latitude", "12")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no editable field")
}

func TestFieldValue(t *testing.T) {
	a := &model.Article{
		Name: "Smith 1900",
		Kind: model.ArticleJournal,
		DOI:  "10.1234/abc",
	}

	assert.Equal(t, "Smith 1900", fieldValue(a, "name"))
	assert.Equal(t, "10.1234/abc", fieldValue(a, "doi"))
	assert.Equal(t, model.ArticleJournal.String(), fieldValue(a, "kind"))
	assert.Empty(t, fieldValue(a, "volume"))
}
