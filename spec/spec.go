// Package spec provides the [RFC 9535 JSONPath] AST and evaluation engine
// for [github.com/arborio/jsonpath]: locations, nodes, selectors, segments,
// filter expressions, and the ExpressionType/FuncType discipline that
// function extensions must satisfy. It will mainly be of interest to those
// implementing their own parsers or registering functions with
// [github.com/arborio/jsonpath/registry].
//
// # Stability
//
// The following types and constructors are considered stable:
//
//   - [Index], [Name], [SliceSelector], [WildcardSelector], [FilterSelector]
//   - [Segment], [Child], [Descendant]
//   - [PathQuery] and [NewQuery]
//   - [Node], [NodeList], [Location]
//   - [NormalizedPath]
//   - [Nothing]
//
// The rest of the structs, constructors, and methods in this package remain
// subject to change, although we anticipate no significant revisions.
//
// [RFC 9535 JSONPath]: https://www.rfc-editor.org/rfc/rfc9535.html
package spec
