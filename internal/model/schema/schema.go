// Package schema declares the record kinds and the closed set of field
// shapes the generic lint path walks. Field descriptors are produced by
// each record type at schema-definition time; nothing here inspects
// types at runtime.
package schema

// Kind identifies one record type across the system.
type Kind string

const (
	KindName                Kind = "name"
	KindTaxon               Kind = "taxon"
	KindArticle             Kind = "article"
	KindCitationGroup       Kind = "citation-group"
	KindCollection          Kind = "collection"
	KindClassificationEntry Kind = "classification-entry"
	KindLocation            Kind = "location"
	KindPeriod              Kind = "period"
	KindRegion              Kind = "region"
)

// Kinds lists every record kind in canonical order.
func Kinds() []Kind {
	return []Kind{
		KindName,
		KindTaxon,
		KindArticle,
		KindCitationGroup,
		KindCollection,
		KindClassificationEntry,
		KindLocation,
		KindPeriod,
		KindRegion,
	}
}

// Ref points at one record.
type Ref struct {
	Kind Kind
	ID   int64
}

// FieldKind is the closed set of field shapes.
type FieldKind int

const (
	// Scalar is a plain string or numeric field.
	Scalar FieldKind = iota
	// Enum is a closed integer-backed enumeration.
	Enum
	// ForeignKey references another record by id.
	ForeignKey
	// TagList is a serialized list of tagged-union values.
	TagList
)

// String returns the field kind's display name.
func (k FieldKind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case Enum:
		return "enum"
	case ForeignKey:
		return "foreign-key"
	case TagList:
		return "tag-list"
	}
	return "unknown"
}

// Field describes one field of a record as of the moment the record
// produced it: its declared shape, whether it currently holds a value,
// and the outbound references it currently embeds. A ForeignKey field
// carries zero or one Ref; a TagList field carries every reference its
// tags embed.
type Field struct {
	Name  string
	Kind  FieldKind
	Empty bool
	Refs  []Ref
}

// FKField builds the descriptor for a foreign-key field; a zero id
// means unset.
func FKField(name string, kind Kind, id int64) Field {
	f := Field{Name: name, Kind: ForeignKey, Empty: id == 0}
	if id != 0 {
		f.Refs = []Ref{{Kind: kind, ID: id}}
	}
	return f
}

// StrField builds the descriptor for a scalar string field.
func StrField(name, value string) Field {
	return Field{Name: name, Kind: Scalar, Empty: value == ""}
}

// EnumField builds the descriptor for an enum field. Enums always hold
// a value; range errors are caught by the render check, not emptiness.
func EnumField(name string) Field {
	return Field{Name: name, Kind: Enum}
}

// TagsField builds the descriptor for a tag-list field.
func TagsField(name string, raw string, refs []Ref) Field {
	return Field{Name: name, Kind: TagList, Empty: raw == "", Refs: refs}
}
