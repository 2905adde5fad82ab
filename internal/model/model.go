// Package model defines the persistent record types, their enums, and
// the tagged-union annotations ("tags") stored inside them.
//
// Records are plain structs loaded and saved by the store. Mutations
// happen in memory: callers assign fields, call MarkDirty, and commit
// through the store at an explicit boundary (end of a lint pass, end of
// an edit session). Nothing saves as a side effect of assignment.
package model

import (
	"github.com/nomenlabs/nomen/internal/model/schema"
	"github.com/nomenlabs/nomen/pkg/lint"
)

// Record is the surface every persistent record type presents to the
// generic lint path: the check registry contract plus the field schema
// walked by the reference and required-field passes.
type Record interface {
	lint.Object

	// Dirty reports whether the record carries unsaved mutations. The
	// lint driver commits dirty records at the end of each pass.
	Dirty() bool

	// RecordKind returns the record's kind.
	RecordKind() schema.Kind

	// FieldDefs describes every field as of the current in-memory
	// state, including the outbound references embedded in tags.
	FieldDefs() []schema.Field

	// RequiredFields names the fields that must be non-empty given the
	// record's current state.
	RequiredFields() []string

	// CheckRender verifies the record can be displayed: enums are in
	// range and every tag column decodes. A non-nil error short-circuits
	// linting for the record.
	CheckRender() error
}

// Base carries the identity and dirtiness shared by every record.
type Base struct {
	ID int64

	dirty bool
}

// GetID returns the record's stable integer identity.
func (b *Base) GetID() int64 { return b.ID }

// MarkDirty flags unsaved mutations.
func (b *Base) MarkDirty() { b.dirty = true }

// Dirty reports whether the record has unsaved mutations.
func (b *Base) Dirty() bool { return b.dirty }

// ClearDirty resets the flag after a save.
func (b *Base) ClearDirty() { b.dirty = false }

var (
	_ Record = (*Name)(nil)
	_ Record = (*Taxon)(nil)
	_ Record = (*Article)(nil)
	_ Record = (*CitationGroup)(nil)
	_ Record = (*Collection)(nil)
	_ Record = (*ClassificationEntry)(nil)
	_ Record = (*Location)(nil)
	_ Record = (*Period)(nil)
	_ Record = (*Region)(nil)
)
