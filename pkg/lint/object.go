// Package lint implements the per-record-type check registry: named,
// ordered check functions that inspect one record at a time and yield
// human-readable issue strings, with optional autofix side effects.
//
// A registry is a plain value constructed at startup and passed by
// reference; there is no package-level registry state. Suppressions
// ("ignore" tags stored on the record itself) silence a named check
// without skipping it, and the registry reconciles suppressions that no
// longer match a failing check.
package lint

import "fmt"

// Object is the record surface the registry needs: identity, display
// form, validity, and access to the suppression tags stored on the
// record.
type Object interface {
	fmt.Stringer

	// GetID returns the record's stable integer identity.
	GetID() int64

	// IsInvalid reports whether the record is soft-deleted or redirected.
	IsInvalid() bool

	// IgnoredLints returns the suppressions currently declared on the
	// record, in storage order.
	IgnoredLints() []Ignore

	// RemoveIgnoredLint deletes the suppression for label from the
	// record's tags and marks the record dirty. Unknown labels are a
	// no-op.
	RemoveIgnoredLint(label string)
}

// Ignore is one suppression: the label of the check it silences and an
// optional curator comment.
type Ignore struct {
	Label   string
	Comment string
}
