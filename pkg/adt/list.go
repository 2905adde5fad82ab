package adt

import (
	"encoding/json"
	"fmt"
)

// EncodeList serializes a tag list into the TEXT column form: a JSON array
// of per-tag arrays. An empty list encodes as the empty string so that an
// unset column and an empty list are indistinguishable, matching how the
// store treats them.
func EncodeList[T any](tags []T, enc func(T) (uint8, []any, error)) (string, error) {
	if len(tags) == 0 {
		return "", nil
	}
	arrs := make([]json.RawMessage, 0, len(tags))
	for _, t := range tags {
		disc, attrs, err := enc(t)
		if err != nil {
			return "", err
		}
		data, err := Join(disc, attrs)
		if err != nil {
			return "", err
		}
		arrs = append(arrs, data)
	}
	data, err := json.Marshal(arrs)
	if err != nil {
		return "", fmt.Errorf("encode tag list: %w", err)
	}
	return string(data), nil
}

// DecodeList parses the TEXT column form back into a tag list. The empty
// string decodes to nil. Any malformed element aborts the whole decode;
// partial tag lists are worse than loud failures.
func DecodeList[T any](column string, dec func(uint8, []json.RawMessage) (T, error)) ([]T, error) {
	if column == "" {
		return nil, nil
	}
	var arrs []json.RawMessage
	if err := json.Unmarshal([]byte(column), &arrs); err != nil {
		return nil, fmt.Errorf("%w: tag column is not an array: %v", ErrBadShape, err)
	}
	tags := make([]T, 0, len(arrs))
	for i, data := range arrs {
		disc, raw, err := Split(data)
		if err != nil {
			return nil, fmt.Errorf("tag %d: %w", i, err)
		}
		t, err := dec(disc, raw)
		if err != nil {
			return nil, fmt.Errorf("tag %d: %w", i, err)
		}
		tags = append(tags, t)
	}
	return tags, nil
}
