package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nomenlabs/nomen/internal/model/schema"
	"github.com/nomenlabs/nomen/pkg/adt"
)

// TypeTag is one annotation on a Name's type_tags list: structured
// detail about the type specimen and its collection circumstances.
type TypeTag interface{ typeTag() }

// Date is the collection date of the type specimen, as written.
type Date struct {
	Date string
}

// Age is the life stage of the type specimen.
type Age struct {
	Age string
}

// Organ records a preserved part of the type specimen.
type Organ struct {
	Organ   string
	Comment string
}

// Altitude is the collection altitude of the type locality.
type Altitude struct {
	Altitude string
	Comment  string
}

// Coordinates records the type locality's position as published.
type Coordinates struct {
	Latitude  string
	Longitude string
}

// CollectionDetail quotes a source describing the type material.
type CollectionDetail struct {
	Text     string
	SourceID int64
}

// ProbableRepository marks an unconfirmed type repository.
type ProbableRepository struct {
	CollectionID int64
	Comment      string
}

func (Date) typeTag()               {}
func (Age) typeTag()                {}
func (Organ) typeTag()              {}
func (Altitude) typeTag()           {}
func (Coordinates) typeTag()        {}
func (CollectionDetail) typeTag()   {}
func (ProbableRepository) typeTag() {}

// Discriminants are storage values; never renumber.
const (
	discDate uint8 = iota + 1
	discAge
	discOrgan
	discAltitude
	discCoordinates
	discCollectionDetail
	discProbableRepository
	discTypeIgnoreLint
)

// EncodeTypeTag serializes one tag into discriminant plus attributes.
func EncodeTypeTag(t TypeTag) (uint8, []any, error) {
	switch v := t.(type) {
	case Date:
		return discDate, []any{v.Date}, nil
	case Age:
		return discAge, []any{v.Age}, nil
	case Organ:
		return discOrgan, []any{v.Organ, adt.OptAttr(v.Comment)}, nil
	case Altitude:
		return discAltitude, []any{v.Altitude, adt.OptAttr(v.Comment)}, nil
	case Coordinates:
		return discCoordinates, []any{v.Latitude, v.Longitude}, nil
	case CollectionDetail:
		return discCollectionDetail, []any{v.Text, adt.RefAttr(v.SourceID)}, nil
	case ProbableRepository:
		return discProbableRepository, []any{adt.RefAttr(v.CollectionID), adt.OptAttr(v.Comment)}, nil
	case IgnoreLint:
		return discTypeIgnoreLint, []any{v.Label, adt.OptAttr(v.Comment)}, nil
	}
	return 0, nil, fmt.Errorf("%w: %T is not a type tag", adt.ErrUnknownDiscriminant, t)
}

// DecodeTypeTag reconstructs one tag from its serialized form.
func DecodeTypeTag(disc uint8, raw []json.RawMessage) (TypeTag, error) {
	switch disc {
	case discDate:
		if err := adt.Arity(disc, raw, 1); err != nil {
			return nil, err
		}
		date, err := adt.Str(raw[0])
		if err != nil {
			return nil, err
		}
		return Date{Date: date}, nil
	case discAge:
		if err := adt.Arity(disc, raw, 1); err != nil {
			return nil, err
		}
		age, err := adt.Str(raw[0])
		if err != nil {
			return nil, err
		}
		return Age{Age: age}, nil
	case discOrgan:
		if err := adt.Arity(disc, raw, 2); err != nil {
			return nil, err
		}
		organ, err := adt.Str(raw[0])
		if err != nil {
			return nil, err
		}
		comment, err := adt.OptStr(raw[1])
		if err != nil {
			return nil, err
		}
		return Organ{Organ: organ, Comment: comment}, nil
	case discAltitude:
		if err := adt.Arity(disc, raw, 2); err != nil {
			return nil, err
		}
		alt, err := adt.Str(raw[0])
		if err != nil {
			return nil, err
		}
		comment, err := adt.OptStr(raw[1])
		if err != nil {
			return nil, err
		}
		return Altitude{Altitude: alt, Comment: comment}, nil
	case discCoordinates:
		if err := adt.Arity(disc, raw, 2); err != nil {
			return nil, err
		}
		lat, err := adt.Str(raw[0])
		if err != nil {
			return nil, err
		}
		lon, err := adt.Str(raw[1])
		if err != nil {
			return nil, err
		}
		return Coordinates{Latitude: lat, Longitude: lon}, nil
	case discCollectionDetail:
		if err := adt.Arity(disc, raw, 2); err != nil {
			return nil, err
		}
		text, err := adt.Str(raw[0])
		if err != nil {
			return nil, err
		}
		source, err := adt.Ref(raw[1])
		if err != nil {
			return nil, err
		}
		return CollectionDetail{Text: text, SourceID: source}, nil
	case discProbableRepository:
		if err := adt.Arity(disc, raw, 2); err != nil {
			return nil, err
		}
		coll, err := adt.Ref(raw[0])
		if err != nil {
			return nil, err
		}
		comment, err := adt.OptStr(raw[1])
		if err != nil {
			return nil, err
		}
		return ProbableRepository{CollectionID: coll, Comment: comment}, nil
	case discTypeIgnoreLint:
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
	return nil, fmt.Errorf("%w: type tag %d", adt.ErrUnknownDiscriminant, disc)
}

// TypeTagVariant returns the tag's variant name.
func TypeTagVariant(t TypeTag) string {
	switch t.(type) {
	case Date:
		return "Date"
	case Age:
		return "Age"
	case Organ:
		return "Organ"
	case Altitude:
		return "Altitude"
	case Coordinates:
		return "Coordinates"
	case CollectionDetail:
		return "CollectionDetail"
	case ProbableRepository:
		return "ProbableRepository"
	case IgnoreLint:
		return "IgnoreLint"
	}
	return fmt.Sprintf("%T", t)
}

// TypeTagRefs returns the record references embedded in one tag.
func TypeTagRefs(t TypeTag) []schema.Ref {
	switch v := t.(type) {
	case CollectionDetail:
		if v.SourceID != 0 {
			return []schema.Ref{{Kind: schema.KindArticle, ID: v.SourceID}}
		}
	case ProbableRepository:
		if v.CollectionID != 0 {
			return []schema.Ref{{Kind: schema.KindCollection, ID: v.CollectionID}}
		}
	}
	return nil
}

// CompareTypeTags orders two tags: attribute-wise within a variant, by
// variant name across variants.
func CompareTypeTags(a, b TypeTag) int {
	va, vb := TypeTagVariant(a), TypeTagVariant(b)
	if va != vb {
		return strings.Compare(va, vb)
	}
	_, aa, _ := EncodeTypeTag(a)
	_, ab, _ := EncodeTypeTag(b)
	return adt.CompareAttrs(aa, ab)
}
