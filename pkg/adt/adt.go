// Package adt implements the wire format shared by the tagged-union values
// ("tags") that records attach to their tag-list fields.
//
// A tag value is one variant of a closed union. On the wire it is a JSON
// array whose first element is the variant's small-integer discriminant and
// whose remaining elements are the variant's attributes in declared order.
// Attribute kinds form a closed set: strings, integers, enums (encoded as
// their underlying integer), record references (encoded as the record id),
// and nested tag values (encoded as their own array). Unions hand-write
// their encode/decode switches on top of the helpers here; there is no
// reflection in the codec path.
//
// Decoding is strict: an unrecognized discriminant or a wrong-arity array is
// a hard error, because it means the stored column is corrupt rather than
// merely inconsistent.
package adt

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownDiscriminant reports a serialized tag whose discriminant is not
// declared by the union being decoded.
var ErrUnknownDiscriminant = errors.New("unknown tag discriminant")

// ErrBadShape reports a serialized tag whose array form does not match the
// variant's declared attributes.
var ErrBadShape = errors.New("malformed tag value")

// Split parses one serialized tag into its discriminant and raw attributes.
func Split(data []byte) (uint8, []json.RawMessage, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return 0, nil, fmt.Errorf("%w: not an array: %v", ErrBadShape, err)
	}
	if len(elems) == 0 {
		return 0, nil, fmt.Errorf("%w: empty array", ErrBadShape)
	}
	var disc uint8
	if err := json.Unmarshal(elems[0], &disc); err != nil {
		return 0, nil, fmt.Errorf("%w: bad discriminant: %v", ErrBadShape, err)
	}
	return disc, elems[1:], nil
}

// Join serializes a discriminant plus encoded attributes into array form.
func Join(disc uint8, attrs []any) ([]byte, error) {
	arr := make([]any, 0, len(attrs)+1)
	arr = append(arr, disc)
	arr = append(arr, attrs...)
	data, err := json.Marshal(arr)
	if err != nil {
		return nil, fmt.Errorf("encode tag %d: %w", disc, err)
	}
	return data, nil
}

// Arity checks that a variant received the attribute count it declares.
func Arity(disc uint8, raw []json.RawMessage, want int) error {
	if len(raw) != want {
		return fmt.Errorf("%w: discriminant %d wants %d attributes, got %d", ErrBadShape, disc, want, len(raw))
	}
	return nil
}

// Str decodes a required string attribute.
func Str(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%w: want string: %v", ErrBadShape, err)
	}
	return s, nil
}

// OptStr decodes an optional string attribute; JSON null means absent.
func OptStr(raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return "", nil
	}
	return Str(raw)
}

// Int decodes a required integer attribute.
func Int(raw json.RawMessage) (int64, error) {
	var n int64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, fmt.Errorf("%w: want integer: %v", ErrBadShape, err)
	}
	return n, nil
}

// Ref decodes a record-reference attribute. JSON null means "no reference";
// the zero id is reserved for that case.
func Ref(raw json.RawMessage) (int64, error) {
	if isNull(raw) {
		return 0, nil
	}
	return Int(raw)
}

// Enum decodes an enum attribute into its typed form.
func Enum[E ~int](raw json.RawMessage) (E, error) {
	n, err := Int(raw)
	if err != nil {
		return 0, err
	}
	return E(n), nil
}

// OptAttr encodes an optional string for the attribute list: empty encodes
// as JSON null so that absence survives a round trip.
func OptAttr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// RefAttr encodes a record reference; the zero id encodes as JSON null.
func RefAttr(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
