package registry

import (
	"errors"
	"fmt"
	"regexp"
	"regexp/syntax"
	"sync"
	"unicode/utf8"

	"github.com/arborio/jsonpath/spec"
)

// checkLengthArgs checks that length() is called with exactly one
// ValueExpr-compatible argument.
func checkLengthArgs(args []spec.FunctionExprArg) error {
	if len(args) != 1 {
		return fmt.Errorf("expected 1 argument but found %v", len(args))
	}
	if !args[0].ResultType().ConvertsTo(spec.ValueExpr) {
		return errors.New("cannot convert argument to ValueType")
	}
	return nil
}

// lengthFunc implements the RFC 9535 length() function:
//
//   - for a string, the number of Unicode scalar values it contains
//   - for an array, its element count
//   - for an object, its member count
//   - for any other value, [spec.Nothing]
func lengthFunc(args []spec.PathValue) spec.PathValue {
	v := spec.ValueFrom(args[0])
	switch val := v.Value().(type) {
	case string:
		return spec.Value(utf8.RuneCountInString(val))
	case []any:
		return spec.Value(len(val))
	case *spec.Object:
		return spec.Value(val.Len())
	default:
		return spec.Value(spec.Nothing)
	}
}

// checkCountArgs checks that count() is called with exactly one
// NodesExpr-compatible argument.
func checkCountArgs(args []spec.FunctionExprArg) error {
	if len(args) != 1 {
		return fmt.Errorf("expected 1 argument but found %v", len(args))
	}
	if !args[0].ResultType().ConvertsTo(spec.NodesExpr) {
		return errors.New("cannot convert argument to NodesType")
	}
	return nil
}

// countFunc implements the RFC 9535 count() function: the number of nodes
// selected by its argument query.
func countFunc(args []spec.PathValue) spec.PathValue {
	return spec.Value(len(spec.NodesFrom(args[0])))
}

// checkValueArgs checks that value() is called with exactly one
// NodesExpr-compatible argument.
func checkValueArgs(args []spec.FunctionExprArg) error {
	if len(args) != 1 {
		return fmt.Errorf("expected 1 argument but found %v", len(args))
	}
	if !args[0].ResultType().ConvertsTo(spec.NodesExpr) {
		return errors.New("cannot convert argument to NodesType")
	}
	return nil
}

// valueFunc implements the RFC 9535 value() function: the value of its
// argument's single selected node, or [spec.Nothing] if it selected zero or
// more than one node.
func valueFunc(args []spec.PathValue) spec.PathValue {
	nodes := spec.NodesFrom(args[0])
	if len(nodes) == 1 {
		return spec.Value(nodes[0])
	}
	return spec.Value(spec.Nothing)
}

// checkMatchArgs checks that match() is called with exactly two
// ValueExpr-compatible arguments.
func checkMatchArgs(args []spec.FunctionExprArg) error {
	const n = 2
	if len(args) != n {
		return fmt.Errorf("expected 2 arguments but found %v", len(args))
	}
	for i, a := range args {
		if !a.ResultType().ConvertsTo(spec.ValueExpr) {
			return fmt.Errorf("cannot convert argument %d to ValueType", i+1)
		}
	}
	return nil
}

// matchFunc implements the RFC 9535 match() function: anchors its second,
// regular-expression argument at both ends and reports whether it matches
// the first argument in full. Returns LogicalFalse if either argument isn't
// a string or the pattern fails to compile.
func matchFunc(args []spec.PathValue) spec.PathValue {
	if s, ok := spec.ValueFrom(args[0]).Value().(string); ok {
		if pat, ok := spec.ValueFrom(args[1]).Value().(string); ok {
			if re := compileRegex(`\A(?:` + pat + `)\z`); re != nil {
				return spec.LogicalFrom(re.MatchString(s))
			}
		}
	}
	return spec.LogicalFalse
}

// checkSearchArgs checks that search() is called with exactly two
// ValueExpr-compatible arguments.
func checkSearchArgs(args []spec.FunctionExprArg) error {
	const n = 2
	if len(args) != n {
		return fmt.Errorf("expected 2 arguments but found %v", len(args))
	}
	for i, a := range args {
		if !a.ResultType().ConvertsTo(spec.ValueExpr) {
			return fmt.Errorf("cannot convert argument %d to ValueType", i+1)
		}
	}
	return nil
}

// searchFunc implements the RFC 9535 search() function: reports whether the
// second, regular-expression argument matches anywhere within the first.
// Returns LogicalFalse if either argument isn't a string or the pattern
// fails to compile.
func searchFunc(args []spec.PathValue) spec.PathValue {
	if s, ok := spec.ValueFrom(args[0]).Value().(string); ok {
		if pat, ok := spec.ValueFrom(args[1]).Value().(string); ok {
			if re := compileRegex(pat); re != nil {
				return spec.LogicalFrom(re.MatchString(s))
			}
		}
	}
	return spec.LogicalFalse
}

// regexCache memoizes compiled patterns across repeated match()/search()
// calls in the same query evaluation, since a filter expression is
// typically re-evaluated once per candidate node.
var regexCache sync.Map // map[string]*regexp.Regexp, nil value for a pattern known to fail

// compileRegex compiles pattern under RFC 9485 I-Regexp semantics, where "."
// never matches line terminators, and caches the result. Returns nil if
// pattern fails to compile either as an I-Regexp AST or as a Go regexp.
func compileRegex(pattern string) *regexp.Regexp {
	if cached, ok := regexCache.Load(pattern); ok {
		re, _ := cached.(*regexp.Regexp)
		return re
	}

	re := buildRegex(pattern)
	regexCache.Store(pattern, re)
	return re
}

// buildRegex parses pattern to a syntax tree, rewrites every "." node to
// the RFC 9485 equivalent "[^\n\r]", and recompiles the rewritten pattern.
// This requires compiling twice: once to obtain the AST to rewrite, and
// again for the final, rewritten expression.
//
// https://www.rfc-editor.org/rfc/rfc9485.html#name-pcre-re2-and-ruby-regexps
func buildRegex(pattern string) *regexp.Regexp {
	tree, err := syntax.Parse(pattern, syntax.Perl|syntax.DotNL)
	if err != nil {
		return nil
	}
	replaceAnyChar(tree)
	re, err := regexp.Compile(tree.String())
	if err != nil {
		return nil
	}
	return re
}

var notNewline, _ = syntax.Parse(`[^\n\r]`, syntax.Perl)

// replaceAnyChar recursively rewrites every OpAnyChar node of re (matching
// "." under syntax.DotNL) to the parsed form of "[^\n\r]".
func replaceAnyChar(re *syntax.Regexp) {
	if re.Op == syntax.OpAnyChar {
		*re = *notNewline
		return
	}
	for _, sub := range re.Sub {
		replaceAnyChar(sub)
	}
}
