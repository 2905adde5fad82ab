package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The lint driver decides whether to commit a record by reading
// dirtiness through the Record interface alone.
func TestRecordExposesDirtiness(t *testing.T) {
	records := []Record{
		&Name{}, &Taxon{}, &Article{}, &CitationGroup{}, &Collection{},
		&ClassificationEntry{}, &Location{}, &Period{}, &Region{},
	}
	for _, rec := range records {
		assert.False(t, rec.Dirty(), "%T starts clean", rec)
		rec.(interface{ MarkDirty() }).MarkDirty()
		assert.True(t, rec.Dirty(), "%T after MarkDirty", rec)
		rec.(interface{ ClearDirty() }).ClearDirty()
		assert.False(t, rec.Dirty(), "%T after ClearDirty", rec)
	}
}
