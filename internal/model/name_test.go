package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomenlabs/nomen/internal/model/schema"
	"github.com/nomenlabs/nomen/pkg/adt"
	"github.com/nomenlabs/nomen/pkg/lint"
)

func TestNameString(t *testing.T) {
	n := &Name{
		Base:         Base{ID: 12},
		RootName:     "musculus",
		OriginalName: "Mus musculus",
		Authority:    "Linnaeus",
		Year:         "1758",
	}
	assert.Equal(t, "Name #12 (Mus musculus Linnaeus, 1758)", n.String())

	bare := &Name{Base: Base{ID: 3}, RootName: "Mus"}
	assert.Equal(t, "Name #3 (Mus)", bare.String())
}

func TestNameValidity(t *testing.T) {
	assert.False(t, (&Name{Status: StatusValid}).IsInvalid())
	assert.False(t, (&Name{Status: StatusSynonym}).IsInvalid())
	assert.True(t, (&Name{Status: StatusRemoved}).IsInvalid())
	assert.True(t, (&Name{Status: StatusSpurious}).IsInvalid())
}

func TestNameIgnoredLintsSpanBothTagLists(t *testing.T) {
	n := &Name{Base: Base{ID: 1}}
	require.NoError(t, n.SetTags([]NameTag{
		PreoccupiedBy{NameID: 2},
		IgnoreLint{Label: "year_format", Comment: "as published"},
	}))
	require.NoError(t, n.SetTypeTags([]TypeTag{
		IgnoreLint{Label: "specimen_number_format"},
	}))

	assert.Equal(t, []lint.Ignore{
		{Label: "year_format", Comment: "as published"},
		{Label: "specimen_number_format"},
	}, n.IgnoredLints())

	n.ClearDirty()
	n.RemoveIgnoredLint("specimen_number_format")
	assert.True(t, n.Dirty())
	assert.Equal(t, []lint.Ignore{
		{Label: "year_format", Comment: "as published"},
	}, n.IgnoredLints())

	tags, err := n.Tags()
	require.NoError(t, err)
	assert.Contains(t, tags, NameTag(PreoccupiedBy{NameID: 2}))

	n.ClearDirty()
	n.RemoveIgnoredLint("no_such_label")
	assert.False(t, n.Dirty())
}

func TestNameCheckRender(t *testing.T) {
	n := &Name{Base: Base{ID: 1}}
	require.NoError(t, n.CheckRender())

	n.RawTags = `[[200,"x"]]`
	err := n.CheckRender()
	require.Error(t, err)
	assert.ErrorIs(t, err, adt.ErrUnknownDiscriminant)

	n.RawTags = ""
	n.Group = Group(99)
	assert.Error(t, n.CheckRender())
}

func TestNameRequiredFields(t *testing.T) {
	n := &Name{Group: GroupHigh}
	assert.Equal(t, []string{"root_name", "taxon", "authority", "year"}, n.RequiredFields())

	n = &Name{Group: GroupSpecies, OriginalName: "Mus musculus", OriginalCitationID: 5}
	assert.Equal(t, []string{
		"root_name", "taxon", "authority", "year",
		"original_name", "corrected_original_name", "page_described",
	}, n.RequiredFields())

	n = &Name{Group: GroupFamily, NomenclatureStatus: NSAvailable}
	assert.Contains(t, n.RequiredFields(), "type")

	n = &Name{Group: GroupFamily, NomenclatureStatus: NSNomenNudum}
	assert.NotContains(t, n.RequiredFields(), "type")
}

func TestNameFieldDefs(t *testing.T) {
	n := &Name{
		Base:    Base{ID: 1},
		TaxonID: 4,
	}
	require.NoError(t, n.SetTags([]NameTag{PreoccupiedBy{NameID: 9}}))

	defs := n.FieldDefs()
	byName := make(map[string]schema.Field, len(defs))
	for _, f := range defs {
		byName[f.Name] = f
	}

	taxon := byName["taxon"]
	assert.Equal(t, schema.ForeignKey, taxon.Kind)
	assert.False(t, taxon.Empty)
	require.Len(t, taxon.Refs, 1)
	assert.Equal(t, schema.Ref{Kind: schema.KindTaxon, ID: 4}, taxon.Refs[0])

	coll := byName["collection"]
	assert.True(t, coll.Empty)
	assert.Empty(t, coll.Refs)

	tags := byName["tags"]
	assert.Equal(t, schema.TagList, tags.Kind)
	assert.False(t, tags.Empty)
	require.Len(t, tags.Refs, 1)
	assert.Equal(t, schema.Ref{Kind: schema.KindName, ID: 9}, tags.Refs[0])
}

func TestEffectiveName(t *testing.T) {
	n := &Name{RootName: "musculus"}
	assert.Equal(t, "musculus", n.EffectiveName())
	n.OriginalName = "Mus Musculus"
	assert.Equal(t, "Mus Musculus", n.EffectiveName())
	n.CorrectedOriginalName = "Mus musculus"
	assert.Equal(t, "Mus musculus", n.EffectiveName())
}

func TestDirtyTracking(t *testing.T) {
	n := &Name{}
	assert.False(t, n.Dirty())
	n.Year = "1758"
	n.MarkDirty()
	assert.True(t, n.Dirty())
	n.ClearDirty()
	assert.False(t, n.Dirty())

	require.NoError(t, n.SetTags([]NameTag{Conserved{Opinion: "Opinion 75"}}))
	assert.True(t, n.Dirty())
}
