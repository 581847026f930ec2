package spec

// nothingType is the type of the [Nothing] sentinel. It exists as its own
// type, rather than a nil pointer or Go nil, so that Nothing can never be
// confused with JSON null or with the absence of a value returned by a
// function extension.
type nothingType struct{}

// Nothing is the sentinel filter-expression value produced when a singular
// path query selects no node, as defined by [RFC 9535 Section 2.3.5.2.3]. It
// compares equal only to itself, and every ordering comparison against it
// (<, <=, >, >=) is false, including against itself.
//
// [RFC 9535 Section 2.3.5.2.3]: https://www.rfc-editor.org/rfc/rfc9535.html#name-comparisons
var Nothing = nothingType{} //nolint:gochecknoglobals

// IsNothing returns true if v is the [Nothing] sentinel.
func IsNothing(v any) bool {
	_, ok := v.(nothingType)
	return ok
}
