package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nomenlabs/nomen/internal/model/schema"
	"github.com/nomenlabs/nomen/pkg/adt"
)

// ArticleTag is one annotation on an Article: external identifiers and
// structural notes that have no column of their own.
type ArticleTag interface{ articleTag() }

// HDL is a Handle System identifier for the article.
type HDL struct {
	Text string
}

// JSTOR is the article's JSTOR identifier.
type JSTOR struct {
	Text string
}

// ISBN is the book's ISBN.
type ISBN struct {
	Text string
}

// AlternativeURL records a mirror location of the full text.
type AlternativeURL struct {
	URL string
}

// PartLocation places a chapter or part inside its container article.
type PartLocation struct {
	ParentArticleID int64
	StartPage       int64
	EndPage         int64
	Comment         string
}

// NonOriginal marks the article as a reprint or facsimile.
type NonOriginal struct {
	Comment string
}

// BHLItem links the article to a Biodiversity Heritage Library item.
type BHLItem struct {
	ItemID int64
}

func (HDL) articleTag()            {}
func (JSTOR) articleTag()          {}
func (ISBN) articleTag()           {}
func (AlternativeURL) articleTag() {}
func (PartLocation) articleTag()   {}
func (NonOriginal) articleTag()    {}
func (BHLItem) articleTag()        {}

// Discriminants are storage values; never renumber.
const (
	discHDL uint8 = iota + 1
	discJSTOR
	discISBN
	discAlternativeURL
	discPartLocation
	discNonOriginal
	discBHLItem
	discArticleIgnoreLint
)

// EncodeArticleTag serializes one tag into discriminant plus attributes.
func EncodeArticleTag(t ArticleTag) (uint8, []any, error) {
	switch v := t.(type) {
	case HDL:
		return discHDL, []any{v.Text}, nil
	case JSTOR:
		return discJSTOR, []any{v.Text}, nil
	case ISBN:
		return discISBN, []any{v.Text}, nil
	case AlternativeURL:
		return discAlternativeURL, []any{v.URL}, nil
	case PartLocation:
		return discPartLocation, []any{adt.RefAttr(v.ParentArticleID), v.StartPage, v.EndPage, adt.OptAttr(v.Comment)}, nil
	case NonOriginal:
		return discNonOriginal, []any{adt.OptAttr(v.Comment)}, nil
	case BHLItem:
		return discBHLItem, []any{v.ItemID}, nil
	case IgnoreLint:
		return discArticleIgnoreLint, []any{v.Label, adt.OptAttr(v.Comment)}, nil
	}
	return 0, nil, fmt.Errorf("%w: %T is not an article tag", adt.ErrUnknownDiscriminant, t)
}

// DecodeArticleTag reconstructs one tag from its serialized form.
func DecodeArticleTag(disc uint8, raw []json.RawMessage) (ArticleTag, error) {
	str1 := func() (string, error) {
		if err := adt.Arity(disc, raw, 1); err != nil {
			return "", err
		}
		return adt.Str(raw[0])
	}
	switch disc {
	case discHDL:
		text, err := str1()
		if err != nil {
			return nil, err
		}
		return HDL{Text: text}, nil
	case discJSTOR:
		text, err := str1()
		if err != nil {
			return nil, err
		}
		return JSTOR{Text: text}, nil
	case discISBN:
		text, err := str1()
		if err != nil {
			return nil, err
		}
		return ISBN{Text: text}, nil
	case discAlternativeURL:
		url, err := str1()
		if err != nil {
			return nil, err
		}
		return AlternativeURL{URL: url}, nil
	case discPartLocation:
		if err := adt.Arity(disc, raw, 4); err != nil {
			return nil, err
		}
		parent, err := adt.Ref(raw[0])
		if err != nil {
			return nil, err
		}
		start, err := adt.Int(raw[1])
		if err != nil {
			return nil, err
		}
		end, err := adt.Int(raw[2])
		if err != nil {
			return nil, err
		}
		comment, err := adt.OptStr(raw[3])
		if err != nil {
			return nil, err
		}
		return PartLocation{ParentArticleID: parent, StartPage: start, EndPage: end, Comment: comment}, nil
	case discNonOriginal:
		if err := adt.Arity(disc, raw, 1); err != nil {
			return nil, err
		}
		comment, err := adt.OptStr(raw[0])
		if err != nil {
			return nil, err
		}
		return NonOriginal{Comment: comment}, nil
	case discBHLItem:
		if err := adt.Arity(disc, raw, 1); err != nil {
			return nil, err
		}
		id, err := adt.Int(raw[0])
		if err != nil {
			return nil, err
		}
		return BHLItem{ItemID: id}, nil
	case discArticleIgnoreLint:
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
	return nil, fmt.Errorf("%w: article tag %d", adt.ErrUnknownDiscriminant, disc)
}

// ArticleTagVariant returns the tag's variant name.
func ArticleTagVariant(t ArticleTag) string {
	switch t.(type) {
	case HDL:
		return "HDL"
	case JSTOR:
		return "JSTOR"
	case ISBN:
		return "ISBN"
	case AlternativeURL:
		return "AlternativeURL"
	case PartLocation:
		return "PartLocation"
	case NonOriginal:
		return "NonOriginal"
	case BHLItem:
		return "BHLItem"
	case IgnoreLint:
		return "IgnoreLint"
	}
	return fmt.Sprintf("%T", t)
}

// ArticleTagRefs returns the record references embedded in one tag.
func ArticleTagRefs(t ArticleTag) []schema.Ref {
	if v, ok := t.(PartLocation); ok && v.ParentArticleID != 0 {
		return []schema.Ref{{Kind: schema.KindArticle, ID: v.ParentArticleID}}
	}
	return nil
}

// CompareArticleTags orders two tags: attribute-wise within a variant,
// by variant name across variants.
func CompareArticleTags(a, b ArticleTag) int {
	va, vb := ArticleTagVariant(a), ArticleTagVariant(b)
	if va != vb {
		return strings.Compare(va, vb)
	}
	_, aa, _ := EncodeArticleTag(a)
	_, ab, _ := EncodeArticleTag(b)
	return adt.CompareAttrs(aa, ab)
}
