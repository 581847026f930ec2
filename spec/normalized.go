package spec

import (
	"cmp"
	"strings"
)

// NormalizedPath is a sequence of path components — each a string member
// name or an int array index — that uniquely identifies one location in a
// JSON document, as defined by [RFC 9535 Section 2.7].
//
// [RFC 9535 Section 2.7]: https://www.rfc-editor.org/rfc/rfc9535#name-normalized-paths
type NormalizedPath []any

// newNormalizedPath builds a NormalizedPath from loc.
func newNormalizedPath(loc *Location) NormalizedPath {
	keys := loc.Keys()
	return NormalizedPath(keys)
}

// String returns np formatted per [RFC 9535 Section 2.7]: "$" followed by
// "[<integer>]" for each index component and "['<canonical-string>']" for
// each name component.
//
// [RFC 9535 Section 2.7]: https://www.rfc-editor.org/rfc/rfc9535#name-normalized-paths
func (np NormalizedPath) String() string {
	buf := new(strings.Builder)
	buf.WriteRune('$')
	for _, c := range np {
		switch c := c.(type) {
		case string:
			writeCanonicalString(buf, c)
		case int:
			writeIndexComponent(buf, c)
		}
	}
	return buf.String()
}

// MarshalText marshals np into text. It implements encoding.TextMarshaler.
func (np NormalizedPath) MarshalText() ([]byte, error) {
	return []byte(np.String()), nil
}

// Compare compares np to np2 and returns -1 if np sorts before np2, 1 if it
// sorts after, and 0 if they're equal. An index component always sorts
// before a name component at the same position.
func (np NormalizedPath) Compare(np2 NormalizedPath) int {
	for i := range np {
		if i >= len(np2) {
			return 1
		}
		if x := compareComponent(np[i], np2[i]); x != 0 {
			return x
		}
	}
	if len(np2) > len(np) {
		return -1
	}
	return 0
}

func compareComponent(a, b any) int {
	switch a := a.(type) {
	case string:
		switch b := b.(type) {
		case string:
			return cmp.Compare(a, b)
		case int:
			return 1
		}
	case int:
		switch b := b.(type) {
		case int:
			return cmp.Compare(a, b)
		case string:
			return -1
		}
	}
	return 0
}
