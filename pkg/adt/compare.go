package adt

import "strings"

// CompareAttrs orders two attribute lists of the same variant. Attributes
// compare element-wise: nil (absent) sorts before any present value, numbers
// compare numerically, strings lexicographically, and nested tag arrays by
// their own encoded elements. Shorter lists sort first when one is a prefix
// of the other.
//
// The attribute values must come from a codec's encode path, so the closed
// set handled here (nil, int64, uint8, string, []any) is exhaustive by
// construction.
func CompareAttrs(a, b []any) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if c := compareAttr(a[i], b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

func compareAttr(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	switch av := a.(type) {
	case int64:
		return compareInt(av, toInt(b))
	case uint8:
		return compareInt(int64(av), toInt(b))
	case int:
		return compareInt(int64(av), toInt(b))
	case string:
		bv, ok := b.(string)
		if !ok {
			return strings.Compare(av, "")
		}
		return strings.Compare(av, bv)
	case []any:
		bv, ok := b.([]any)
		if !ok {
			return 1
		}
		return CompareAttrs(av, bv)
	}
	return 0
}

func toInt(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case uint8:
		return int64(n)
	case int:
		return int64(n)
	}
	return 0
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
