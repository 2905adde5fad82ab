package model

import "github.com/nomenlabs/nomen/pkg/lint"

// IgnoreLint suppresses the named check on the record carrying it. The
// same value is a member of every tag union, so any record type with a
// tag list can silence a check.
type IgnoreLint struct {
	Label   string
	Comment string
}

func (IgnoreLint) nameTag()          {}
func (IgnoreLint) typeTag()          {}
func (IgnoreLint) taxonTag()         {}
func (IgnoreLint) articleTag()       {}
func (IgnoreLint) citationGroupTag() {}
func (IgnoreLint) collectionTag()    {}

// ignoresIn collects the suppressions from a decoded tag list.
func ignoresIn[T any](tags []T) []lint.Ignore {
	var out []lint.Ignore
	for _, t := range tags {
		if ig, ok := any(t).(IgnoreLint); ok {
			out = append(out, lint.Ignore{Label: ig.Label, Comment: ig.Comment})
		}
	}
	return out
}

// AddIgnoredLint appends a suppression for label to the record's main
// tag list, reporting whether the record can carry one. Records without
// a tag list report false.
func AddIgnoredLint(rec Record, label, comment string) (bool, error) {
	ig := IgnoreLint{Label: label, Comment: comment}
	switch r := rec.(type) {
	case *Name:
		tags, err := r.Tags()
		if err != nil {
			return false, err
		}
		return true, r.SetTags(append(tags, ig))
	case *Taxon:
		tags, err := r.Tags()
		if err != nil {
			return false, err
		}
		return true, r.SetTags(append(tags, ig))
	case *Article:
		tags, err := r.Tags()
		if err != nil {
			return false, err
		}
		return true, r.SetTags(append(tags, ig))
	case *CitationGroup:
		tags, err := r.Tags()
		if err != nil {
			return false, err
		}
		return true, r.SetTags(append(tags, ig))
	case *Collection:
		tags, err := r.Tags()
		if err != nil {
			return false, err
		}
		return true, r.SetTags(append(tags, ig))
	}
	return false, nil
}

// withoutIgnore filters the suppression for label out of a tag list,
// reporting whether anything was dropped.
func withoutIgnore[T any](tags []T, label string) ([]T, bool) {
	removed := false
	var kept []T
	for _, t := range tags {
		if ig, ok := any(t).(IgnoreLint); ok && ig.Label == label {
			removed = true
			continue
		}
		kept = append(kept, t)
	}
	return kept, removed
}
