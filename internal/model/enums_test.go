package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumStringParseRoundTrip(t *testing.T) {
	for g := GroupSpecies; g <= GroupHigh; g++ {
		parsed, err := ParseGroup(g.String())
		require.NoError(t, err)
		assert.Equal(t, g, parsed)
	}
	for s := StatusValid; s <= StatusRemoved; s++ {
		parsed, err := ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
	for s := NSAvailable; s <= NSVariant; s++ {
		parsed, err := ParseNomenclatureStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
	for r := range rankNames {
		parsed, err := ParseRank(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, parsed)
	}
	for a := AgeExtant; a <= AgeFossil; a++ {
		parsed, err := ParseAgeClass(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, parsed)
	}
	for k := ArticleJournal; k <= ArticleRemoved; k++ {
		parsed, err := ParseArticleKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}
	for c := CGJournal; c <= CGDeleted; c++ {
		parsed, err := ParseCitationGroupType(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}
	for p := SystemGTS; p <= SystemBiozone; p++ {
		parsed, err := ParsePeriodSystem(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, parsed)
	}
	for k := RegionContinent; k <= RegionSubnational; k++ {
		parsed, err := ParseRegionKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}
}

func TestParseRejectsUnknown(t *testing.T) {
	_, err := ParseGroup("tribe")
	assert.Error(t, err)
	_, err = ParseRank("cohort")
	assert.Error(t, err)
	_, err = ParseStatus("")
	assert.Error(t, err)
}

func TestUnknownEnumValues(t *testing.T) {
	assert.False(t, Group(42).Known())
	assert.Equal(t, "unknown(42)", Group(42).String())
	assert.False(t, Rank(7).Known())
	assert.True(t, RankSubfamily.Known())
}

func TestRankGroupMapping(t *testing.T) {
	tests := []struct {
		rank Rank
		want Group
	}{
		{RankSubspecies, GroupSpecies},
		{RankSpecies, GroupSpecies},
		{RankSubgenus, GroupGenus},
		{RankGenus, GroupGenus},
		{RankSubtribe, GroupFamily},
		{RankTribe, GroupFamily},
		{RankFamily, GroupFamily},
		{RankSuperfamily, GroupFamily},
		{RankInfraorder, GroupHigh},
		{RankOrder, GroupHigh},
		{RankClass, GroupHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.rank.Group(), "rank %s", tt.rank)
	}
}

func TestRankOrdering(t *testing.T) {
	assert.Less(t, RankSpecies, RankGenus)
	assert.Less(t, RankGenus, RankFamily)
	assert.Less(t, RankFamily, RankOrder)
}

func TestRequiresNameTag(t *testing.T) {
	tag, ok := NSPreoccupied.RequiresNameTag()
	require.True(t, ok)
	assert.Equal(t, "PreoccupiedBy", tag)

	tag, ok = NSVariant.RequiresNameTag()
	require.True(t, ok)
	assert.Equal(t, "VariantOf", tag)

	_, ok = NSAvailable.RequiresNameTag()
	assert.False(t, ok)
	_, ok = NSNomenNudum.RequiresNameTag()
	assert.False(t, ok)
}

func TestValidityHelpers(t *testing.T) {
	assert.True(t, StatusRemoved.Invalid())
	assert.True(t, StatusSpurious.Invalid())
	assert.False(t, StatusSynonym.Invalid())

	assert.True(t, ArticleRedirect.Invalid())
	assert.True(t, ArticleRemoved.Invalid())
	assert.False(t, ArticleJournal.Invalid())

	assert.True(t, CGRedirect.Invalid())
	assert.True(t, CGDeleted.Invalid())
	assert.False(t, CGBook.Invalid())
}
