package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nomenlabs/nomen/internal/model/schema"
	"github.com/nomenlabs/nomen/pkg/adt"
)

// CitationGroupTag is one annotation on a CitationGroup.
type CitationGroupTag interface{ citationGroupTag() }

// ISSN is the group's print serial number. A journal may carry several
// across its history.
type ISSN struct {
	Text string
}

// ISSNOnline is the group's electronic serial number.
type ISSNOnline struct {
	Text string
}

// BHLBibliography links the group to a Biodiversity Heritage Library
// title.
type BHLBibliography struct {
	TitleID int64
}

// YearRange bounds the years the group published, as written.
type YearRange struct {
	Start string
	End   string
}

// Predecessor records the group this one continues.
type Predecessor struct {
	CitationGroupID int64
	Comment         string
}

// MustHaveSeries requires articles in this group to carry a series.
type MustHaveSeries struct {
	Comment string
}

// OnlineRepository records where the group's full texts live.
type OnlineRepository struct {
	URL     string
	Comment string
}

func (ISSN) citationGroupTag()             {}
func (ISSNOnline) citationGroupTag()       {}
func (BHLBibliography) citationGroupTag()  {}
func (YearRange) citationGroupTag()        {}
func (Predecessor) citationGroupTag()      {}
func (MustHaveSeries) citationGroupTag()   {}
func (OnlineRepository) citationGroupTag() {}

// Discriminants are storage values; never renumber.
const (
	discISSN uint8 = iota + 1
	discISSNOnline
	discBHLBibliography
	discYearRange
	discPredecessor
	discMustHaveSeries
	discOnlineRepository
	discCGIgnoreLint
)

// EncodeCitationGroupTag serializes one tag into discriminant plus
// attributes.
func EncodeCitationGroupTag(t CitationGroupTag) (uint8, []any, error) {
	switch v := t.(type) {
	case ISSN:
		return discISSN, []any{v.Text}, nil
	case ISSNOnline:
		return discISSNOnline, []any{v.Text}, nil
	case BHLBibliography:
		return discBHLBibliography, []any{v.TitleID}, nil
	case YearRange:
		return discYearRange, []any{v.Start, adt.OptAttr(v.End)}, nil
	case Predecessor:
		return discPredecessor, []any{adt.RefAttr(v.CitationGroupID), adt.OptAttr(v.Comment)}, nil
	case MustHaveSeries:
		return discMustHaveSeries, []any{adt.OptAttr(v.Comment)}, nil
	case OnlineRepository:
		return discOnlineRepository, []any{v.URL, adt.OptAttr(v.Comment)}, nil
	case IgnoreLint:
		return discCGIgnoreLint, []any{v.Label, adt.OptAttr(v.Comment)}, nil
	}
	return 0, nil, fmt.Errorf("%w: %T is not a citation group tag", adt.ErrUnknownDiscriminant, t)
}

// DecodeCitationGroupTag reconstructs one tag from its serialized form.
func DecodeCitationGroupTag(disc uint8, raw []json.RawMessage) (CitationGroupTag, error) {
	switch disc {
	case discISSN:
		if err := adt.Arity(disc, raw, 1); err != nil {
			return nil, err
		}
		text, err := adt.Str(raw[0])
		if err != nil {
			return nil, err
		}
		return ISSN{Text: text}, nil
	case discISSNOnline:
		if err := adt.Arity(disc, raw, 1); err != nil {
			return nil, err
		}
		text, err := adt.Str(raw[0])
		if err != nil {
			return nil, err
		}
		return ISSNOnline{Text: text}, nil
	case discBHLBibliography:
		if err := adt.Arity(disc, raw, 1); err != nil {
			return nil, err
		}
		id, err := adt.Int(raw[0])
		if err != nil {
			return nil, err
		}
		return BHLBibliography{TitleID: id}, nil
	case discYearRange:
		if err := adt.Arity(disc, raw, 2); err != nil {
			return nil, err
		}
		start, err := adt.Str(raw[0])
		if err != nil {
			return nil, err
		}
		end, err := adt.OptStr(raw[1])
		if err != nil {
			return nil, err
		}
		return YearRange{Start: start, End: end}, nil
	case discPredecessor:
		if err := adt.Arity(disc, raw, 2); err != nil {
			return nil, err
		}
		id, err := adt.Ref(raw[0])
		if err != nil {
			return nil, err
		}
		comment, err := adt.OptStr(raw[1])
		if err != nil {
			return nil, err
		}
		return Predecessor{CitationGroupID: id, Comment: comment}, nil
	case discMustHaveSeries:
		if err := adt.Arity(disc, raw, 1); err != nil {
			return nil, err
		}
		comment, err := adt.OptStr(raw[0])
		if err != nil {
			return nil, err
		}
		return MustHaveSeries{Comment: comment}, nil
	case discOnlineRepository:
		if err := adt.Arity(disc, raw, 2); err != nil {
			return nil, err
		}
		url, err := adt.Str(raw[0])
		if err != nil {
			return nil, err
		}
		comment, err := adt.OptStr(raw[1])
		if err != nil {
			return nil, err
		}
		return OnlineRepository{URL: url, Comment: comment}, nil
	case discCGIgnoreLint:
		if err := adt.Arity(disc, raw, 2); err != nil {
			return nil, err
		}
		label, err := adt.Str(raw[0])
		if err != nil {
			return nil, err
		}
		comment, err := adt.OptStr(raw[1])
		if err != nil {
			return nil, err
		}
		return IgnoreLint{Label: label, Comment: comment}, nil
	}
	return nil, fmt.Errorf("%w: citation group tag %d", adt.ErrUnknownDiscriminant, disc)
}

// CitationGroupTagVariant returns the tag's variant name.
func CitationGroupTagVariant(t CitationGroupTag) string {
	switch t.(type) {
	case ISSN:
		return "ISSN"
	case ISSNOnline:
		return "ISSNOnline"
	case BHLBibliography:
		return "BHLBibliography"
	case YearRange:
		return "YearRange"
	case Predecessor:
		return "Predecessor"
	case MustHaveSeries:
		return "MustHaveSeries"
	case OnlineRepository:
		return "OnlineRepository"
	case IgnoreLint:
		return "IgnoreLint"
	}
	return fmt.Sprintf("%T", t)
}

// CitationGroupTagRefs returns the record references embedded in one
// tag.
func CitationGroupTagRefs(t CitationGroupTag) []schema.Ref {
	if v, ok := t.(Predecessor); ok && v.CitationGroupID != 0 {
		return []schema.Ref{{Kind: schema.KindCitationGroup, ID: v.CitationGroupID}}
	}
	return nil
}

// CompareCitationGroupTags orders two tags: attribute-wise within a
// variant, by variant name across variants.
func CompareCitationGroupTags(a, b CitationGroupTag) int {
	va, vb := CitationGroupTagVariant(a), CitationGroupTagVariant(b)
	if va != vb {
		return strings.Compare(va, vb)
	}
	_, aa, _ := EncodeCitationGroupTag(a)
	_, ab, _ := EncodeCitationGroupTag(b)
	return adt.CompareAttrs(aa, ab)
}
