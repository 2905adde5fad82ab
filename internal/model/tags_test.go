package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomenlabs/nomen/pkg/adt"
)

func TestNameTagRoundTrip(t *testing.T) {
	tags := []NameTag{
		PreoccupiedBy{NameID: 12, Comment: "Gray, 1825"},
		UnjustifiedEmendationOf{NameID: 13},
		JustifiedEmendationOf{NameID: 14, Comment: "inadvertent error"},
		IncorrectSubsequentSpellingOf{NameID: 15},
		NomenNovumFor{NameID: 16},
		VariantOf{NameID: 17},
		MandatoryChangeOf{NameID: 18},
		Condition{Status: NSNomenNudum, Comment: "no description"},
		Conserved{Opinion: "Opinion 417"},
		IgnoreLint{Label: "year_matches_citation", Comment: "checked against scan"},
	}

	column, err := adt.EncodeList(tags, EncodeNameTag)
	require.NoError(t, err)

	decoded, err := adt.DecodeList(column, DecodeNameTag)
	require.NoError(t, err)
	assert.Equal(t, tags, decoded)
}

func TestTypeTagRoundTrip(t *testing.T) {
	tags := []TypeTag{
		Date{Date: "23 March 1901"},
		Age{Age: "adult"},
		Organ{Organ: "skull", Comment: "damaged"},
		Altitude{Altitude: "1200 m"},
		Coordinates{Latitude: "12.5S", Longitude: "131.2E"},
		CollectionDetail{Text: "two skins", SourceID: 41},
		ProbableRepository{CollectionID: 7, Comment: "per original description"},
		IgnoreLint{Label: "specimen_number_format"},
	}

	column, err := adt.EncodeList(tags, EncodeTypeTag)
	require.NoError(t, err)

	decoded, err := adt.DecodeList(column, DecodeTypeTag)
	require.NoError(t, err)
	assert.Equal(t, tags, decoded)
}

func TestArticleTagRoundTrip(t *testing.T) {
	tags := []ArticleTag{
		HDL{Text: "2246/4921"},
		JSTOR{Text: "1378947"},
		ISBN{Text: "978-0-8018-8221-0"},
		AlternativeURL{URL: "https://example.org/mirror.pdf"},
		PartLocation{ParentArticleID: 9, StartPage: 55, EndPage: 81, Comment: "part 2"},
		NonOriginal{Comment: "1969 facsimile"},
		BHLItem{ItemID: 103532},
		IgnoreLint{Label: "page_range"},
	}

	column, err := adt.EncodeList(tags, EncodeArticleTag)
	require.NoError(t, err)

	decoded, err := adt.DecodeList(column, DecodeArticleTag)
	require.NoError(t, err)
	assert.Equal(t, tags, decoded)
}

func TestCitationGroupTagRoundTrip(t *testing.T) {
	tags := []CitationGroupTag{
		ISSN{Text: "0022-2372"},
		ISSNOnline{Text: "1545-1542"},
		BHLBibliography{TitleID: 7414},
		YearRange{Start: "1919", End: "2010"},
		Predecessor{CitationGroupID: 3, Comment: "renamed in 1919"},
		MustHaveSeries{},
		OnlineRepository{URL: "https://www.jstor.org/journal/jmamm"},
		IgnoreLint{Label: "issn_format"},
	}

	column, err := adt.EncodeList(tags, EncodeCitationGroupTag)
	require.NoError(t, err)

	decoded, err := adt.DecodeList(column, DecodeCitationGroupTag)
	require.NoError(t, err)
	assert.Equal(t, tags, decoded)
}

func TestCollectionAndTaxonTagRoundTrip(t *testing.T) {
	collTags := []CollectionTag{
		CollectionDatabase{URL: "https://collections.nmnh.si.edu"},
		TypeCatalog{ArticleID: 15, Comment: "fishes excluded"},
		IgnoreLint{Label: "label_format"},
	}
	column, err := adt.EncodeList(collTags, EncodeCollectionTag)
	require.NoError(t, err)
	decodedColl, err := adt.DecodeList(column, DecodeCollectionTag)
	require.NoError(t, err)
	assert.Equal(t, collTags, decodedColl)

	taxonTags := []TaxonTag{
		EnglishCommonName{Name: "House Mouse"},
		IncertaeSedis{Comment: "placement disputed"},
		IgnoreLint{Label: "parent_rank"},
	}
	column, err = adt.EncodeList(taxonTags, EncodeTaxonTag)
	require.NoError(t, err)
	decodedTaxon, err := adt.DecodeList(column, DecodeTaxonTag)
	require.NoError(t, err)
	assert.Equal(t, taxonTags, decodedTaxon)
}

func TestDecodeUnknownNameTag(t *testing.T) {
	_, err := DecodeNameTag(200, nil)
	assert.ErrorIs(t, err, adt.ErrUnknownDiscriminant)

	_, err = adt.DecodeList(`[[200,1,null]]`, DecodeNameTag)
	assert.ErrorIs(t, err, adt.ErrUnknownDiscriminant)
}

func TestEncodeForeignTagRejected(t *testing.T) {
	// IgnoreLint belongs to every union, so a tag list built for the
	// wrong union is still caught by the marker interfaces at compile
	// time; the encoder rejects nothing else at runtime except a truly
	// foreign implementation.
	_, _, err := EncodeNameTag(nil)
	assert.ErrorIs(t, err, adt.ErrUnknownDiscriminant)
}

func TestCompareNameTags(t *testing.T) {
	tests := []struct {
		name string
		a, b NameTag
		want int
	}{
		{
			"equal",
			PreoccupiedBy{NameID: 5},
			PreoccupiedBy{NameID: 5},
			0,
		},
		{
			"same variant by attribute",
			PreoccupiedBy{NameID: 5},
			PreoccupiedBy{NameID: 9},
			-1,
		},
		{
			"missing comment sorts before present",
			PreoccupiedBy{NameID: 5},
			PreoccupiedBy{NameID: 5, Comment: "x"},
			-1,
		},
		{
			"different variants by name",
			Conserved{Opinion: "Opinion 1"},
			PreoccupiedBy{NameID: 1},
			-1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareNameTags(tt.a, tt.b))
			assert.Equal(t, -tt.want, CompareNameTags(tt.b, tt.a))
		})
	}
}

func TestSortNameTags(t *testing.T) {
	tags := []NameTag{
		IgnoreLint{Label: "z"},
		PreoccupiedBy{NameID: 9},
		Condition{Status: NSNomenNudum},
		PreoccupiedBy{NameID: 2},
	}
	SortNameTags(tags)
	assert.Equal(t, []NameTag{
		Condition{Status: NSNomenNudum},
		IgnoreLint{Label: "z"},
		PreoccupiedBy{NameID: 2},
		PreoccupiedBy{NameID: 9},
	}, tags)
}

func TestTagRefs(t *testing.T) {
	assert.Len(t, NameTagRefs(PreoccupiedBy{NameID: 4}), 1)
	assert.Empty(t, NameTagRefs(Conserved{Opinion: "Opinion 3"}))
	assert.Empty(t, NameTagRefs(IgnoreLint{Label: "x"}))

	refs := TypeTagRefs(CollectionDetail{Text: "skin", SourceID: 8})
	require.Len(t, refs, 1)
	assert.EqualValues(t, 8, refs[0].ID)

	assert.Len(t, ArticleTagRefs(PartLocation{ParentArticleID: 3}), 1)
	assert.Len(t, CitationGroupTagRefs(Predecessor{CitationGroupID: 2}), 1)
	assert.Len(t, CollectionTagRefs(TypeCatalog{ArticleID: 11}), 1)
}
