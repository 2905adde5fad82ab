package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/nomenlabs/nomen/internal/model/schema"
	"github.com/nomenlabs/nomen/pkg/adt"
)

// NameTag is one annotation on a Name's tags list: mostly relationship
// tags pointing at the name that caused a nomenclatural status, plus a
// few free-standing markers.
type NameTag interface{ nameTag() }

// PreoccupiedBy records the earlier name this name is a junior homonym
// of.
type PreoccupiedBy struct {
	NameID  int64
	Comment string
}

// UnjustifiedEmendationOf records the name this spelling emends without
// justification under the Code.
type UnjustifiedEmendationOf struct {
	NameID  int64
	Comment string
}

// JustifiedEmendationOf records the name this spelling validly emends.
type JustifiedEmendationOf struct {
	NameID  int64
	Comment string
}

// IncorrectSubsequentSpellingOf records the name this spelling
// misquotes.
type IncorrectSubsequentSpellingOf struct {
	NameID  int64
	Comment string
}

// NomenNovumFor records the preoccupied name this name replaces.
type NomenNovumFor struct {
	NameID  int64
	Comment string
}

// VariantOf records the name this name is an alternative original
// spelling of.
type VariantOf struct {
	NameID  int64
	Comment string
}

// MandatoryChangeOf records the name this spelling is a mandatory
// gender or rank agreement change of.
type MandatoryChangeOf struct {
	NameID  int64
	Comment string
}

// Condition qualifies the name's availability with a further status,
// for names affected by more than one provision of the Code.
type Condition struct {
	Status  NomenclatureStatus
	Comment string
}

// Conserved records a Commission opinion conserving the name.
type Conserved struct {
	Opinion string
	Comment string
}

func (PreoccupiedBy) nameTag()                 {}
func (UnjustifiedEmendationOf) nameTag()       {}
func (JustifiedEmendationOf) nameTag()         {}
func (IncorrectSubsequentSpellingOf) nameTag() {}
func (NomenNovumFor) nameTag()                 {}
func (VariantOf) nameTag()                     {}
func (MandatoryChangeOf) nameTag()             {}
func (Condition) nameTag()                     {}
func (Conserved) nameTag()                     {}

// Discriminants are storage values; never renumber.
const (
	discPreoccupiedBy uint8 = iota + 1
	discUnjustifiedEmendationOf
	discJustifiedEmendationOf
	discIncorrectSubsequentSpellingOf
	discNomenNovumFor
	discVariantOf
	discMandatoryChangeOf
	discCondition
	discConserved
	discNameIgnoreLint
)

// EncodeNameTag serializes one tag into discriminant plus attributes.
func EncodeNameTag(t NameTag) (uint8, []any, error) {
	switch v := t.(type) {
	case PreoccupiedBy:
		return discPreoccupiedBy, []any{adt.RefAttr(v.NameID), adt.OptAttr(v.Comment)}, nil
	case UnjustifiedEmendationOf:
		return discUnjustifiedEmendationOf, []any{adt.RefAttr(v.NameID), adt.OptAttr(v.Comment)}, nil
	case JustifiedEmendationOf:
		return discJustifiedEmendationOf, []any{adt.RefAttr(v.NameID), adt.OptAttr(v.Comment)}, nil
	case IncorrectSubsequentSpellingOf:
		return discIncorrectSubsequentSpellingOf, []any{adt.RefAttr(v.NameID), adt.OptAttr(v.Comment)}, nil
	case NomenNovumFor:
		return discNomenNovumFor, []any{adt.RefAttr(v.NameID), adt.OptAttr(v.Comment)}, nil
	case VariantOf:
		return discVariantOf, []any{adt.RefAttr(v.NameID), adt.OptAttr(v.Comment)}, nil
	case MandatoryChangeOf:
		return discMandatoryChangeOf, []any{adt.RefAttr(v.NameID), adt.OptAttr(v.Comment)}, nil
	case Condition:
		return discCondition, []any{int64(v.Status), adt.OptAttr(v.Comment)}, nil
	case Conserved:
		return discConserved, []any{v.Opinion, adt.OptAttr(v.Comment)}, nil
	case IgnoreLint:
		return discNameIgnoreLint, []any{v.Label, adt.OptAttr(v.Comment)}, nil
	}
	return 0, nil, fmt.Errorf("%w: %T is not a name tag", adt.ErrUnknownDiscriminant, t)
}

// DecodeNameTag reconstructs one tag from its serialized form.
func DecodeNameTag(disc uint8, raw []json.RawMessage) (NameTag, error) {
	switch disc {
	case discPreoccupiedBy, discUnjustifiedEmendationOf, discJustifiedEmendationOf,
		discIncorrectSubsequentSpellingOf, discNomenNovumFor, discVariantOf,
		discMandatoryChangeOf:
		if err := adt.Arity(disc, raw, 2); err != nil {
			return nil, err
		}
		nameID, err := adt.Ref(raw[0])
		if err != nil {
			return nil, err
		}
		comment, err := adt.OptStr(raw[1])
		if err != nil {
			return nil, err
		}
		switch disc {
		case discPreoccupiedBy:
			return PreoccupiedBy{NameID: nameID, Comment: comment}, nil
		case discUnjustifiedEmendationOf:
			return UnjustifiedEmendationOf{NameID: nameID, Comment: comment}, nil
		case discJustifiedEmendationOf:
			return JustifiedEmendationOf{NameID: nameID, Comment: comment}, nil
		case discIncorrectSubsequentSpellingOf:
			return IncorrectSubsequentSpellingOf{NameID: nameID, Comment: comment}, nil
		case discNomenNovumFor:
			return NomenNovumFor{NameID: nameID, Comment: comment}, nil
		case discVariantOf:
			return VariantOf{NameID: nameID, Comment: comment}, nil
		default:
			return MandatoryChangeOf{NameID: nameID, Comment: comment}, nil
		}
	case discCondition:
		if err := adt.Arity(disc, raw, 2); err != nil {
			return nil, err
		}
		status, err := adt.Enum[NomenclatureStatus](raw[0])
		if err != nil {
			return nil, err
		}
		comment, err := adt.OptStr(raw[1])
		if err != nil {
			return nil, err
		}
		return Condition{Status: status, Comment: comment}, nil
	case discConserved:
		if err := adt.Arity(disc, raw, 2); err != nil {
			return nil, err
		}
		opinion, err := adt.Str(raw[0])
		if err != nil {
			return nil, err
		}
		comment, err := adt.OptStr(raw[1])
		if err != nil {
			return nil, err
		}
		return Conserved{Opinion: opinion, Comment: comment}, nil
	case discNameIgnoreLint:
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
	return nil, fmt.Errorf("%w: name tag %d", adt.ErrUnknownDiscriminant, disc)
}

// NameTagVariant returns the tag's variant name.
func NameTagVariant(t NameTag) string {
	switch t.(type) {
	case PreoccupiedBy:
		return "PreoccupiedBy"
	case UnjustifiedEmendationOf:
		return "UnjustifiedEmendationOf"
	case JustifiedEmendationOf:
		return "JustifiedEmendationOf"
	case IncorrectSubsequentSpellingOf:
		return "IncorrectSubsequentSpellingOf"
	case NomenNovumFor:
		return "NomenNovumFor"
	case VariantOf:
		return "VariantOf"
	case MandatoryChangeOf:
		return "MandatoryChangeOf"
	case Condition:
		return "Condition"
	case Conserved:
		return "Conserved"
	case IgnoreLint:
		return "IgnoreLint"
	}
	return fmt.Sprintf("%T", t)
}

// NameTagTarget returns the name id a relationship tag points at, or
// false for tags that carry none.
func NameTagTarget(t NameTag) (int64, bool) {
	switch v := t.(type) {
	case PreoccupiedBy:
		return v.NameID, true
	case UnjustifiedEmendationOf:
		return v.NameID, true
	case JustifiedEmendationOf:
		return v.NameID, true
	case IncorrectSubsequentSpellingOf:
		return v.NameID, true
	case NomenNovumFor:
		return v.NameID, true
	case VariantOf:
		return v.NameID, true
	case MandatoryChangeOf:
		return v.NameID, true
	}
	return 0, false
}

// NameTagRefs returns the record references embedded in one tag.
func NameTagRefs(t NameTag) []schema.Ref {
	if id, ok := NameTagTarget(t); ok && id != 0 {
		return []schema.Ref{{Kind: schema.KindName, ID: id}}
	}
	return nil
}

// CompareNameTags orders two tags: attribute-wise within a variant,
// by variant name across variants.
func CompareNameTags(a, b NameTag) int {
	va, vb := NameTagVariant(a), NameTagVariant(b)
	if va != vb {
		return strings.Compare(va, vb)
	}
	_, aa, _ := EncodeNameTag(a)
	_, ab, _ := EncodeNameTag(b)
	return adt.CompareAttrs(aa, ab)
}

// SortNameTags sorts a tag list in place into canonical order.
func SortNameTags(tags []NameTag) {
	sort.SliceStable(tags, func(i, j int) bool {
		return CompareNameTags(tags[i], tags[j]) < 0
	})
}
