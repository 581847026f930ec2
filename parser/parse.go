// Package parser parses RFC 9535 JSONPath queries into a [spec.PathQuery]
// parse tree. Most callers should use
// [github.com/arborio/jsonpath.Environment.Compile] instead of this package
// directly.
package parser

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/arborio/jsonpath/registry"
	"github.com/arborio/jsonpath/spec"
)

// ErrPathParse is wrapped by every error Parse returns.
var ErrPathParse = errors.New("jsonpath")

func makeError(tok token, msg string) error {
	return fmt.Errorf("%w: %v at position %v", ErrPathParse, msg, tok.pos+1)
}

// unexpected builds an error for an unexpected token. For invalid tokens,
// the lexer's own error message is used.
func unexpected(tok token) error {
	if tok.tok == invalid {
		return makeError(tok, tok.val)
	}
	return makeError(tok, "unexpected "+tok.name())
}

type parser struct {
	lex *lexer
	reg *registry.Registry
}

// Parse parses path, a JSONPath query string, against the function
// extensions registered on reg, and returns the resulting [spec.PathQuery].
// Returns an error wrapping [ErrPathParse] on any parse failure.
func Parse(reg *registry.Registry, path string) (*spec.PathQuery, error) {
	lex := newLexer(path)
	tok := lex.scan()
	p := parser{lex, reg}

	switch tok.tok {
	case '$':
		q, err := p.parseQuery(true)
		if err != nil {
			return nil, err
		}
		if lex.r != eof {
			return nil, unexpected(lex.scan())
		}
		return q, nil
	case eof:
		return nil, fmt.Errorf("%w: unexpected end of input", ErrPathParse)
	default:
		return nil, unexpected(tok)
	}
}

// parseQuery parses a query expression. lex.r must be '$' or '@' before
// calling.
func (p *parser) parseQuery(root bool) (*spec.PathQuery, error) {
	segs := []*spec.Segment{}
	lex := p.lex
	for {
		switch {
		case lex.r == '[':
			lex.scan()
			selectors, err := p.parseSelectors()
			if err != nil {
				return nil, err
			}
			segs = append(segs, spec.Child(selectors...))
		case lex.r == '.':
			lex.scan()
			if lex.r == '.' {
				lex.scan()
				seg, err := p.parseDescendant()
				if err != nil {
					return nil, err
				}
				segs = append(segs, seg)
				continue
			}
			sel, err := parseNameOrWildcard(lex)
			if err != nil {
				return nil, err
			}
			segs = append(segs, spec.Child(sel))
		case lex.isBlankSpace(lex.r):
			switch lex.peekPastBlankSpace() {
			case '.', '[':
				lex.scanBlankSpace()
				continue
			}
			fallthrough
		default:
			return spec.NewQuery(root, segs), nil
		}
	}
}

// parseNameOrWildcard parses a name or '*' wildcard selector.
func parseNameOrWildcard(lex *lexer) (spec.Selector, error) {
	switch tok := lex.scan(); tok.tok {
	case identifier:
		return spec.Name(tok.val), nil
	case '*':
		return spec.Wildcard(), nil
	default:
		return nil, unexpected(tok)
	}
}

// parseDescendant parses a ".." descendant segment.
func (p *parser) parseDescendant() (*spec.Segment, error) {
	switch tok := p.lex.scan(); tok.tok {
	case '[':
		selectors, err := p.parseSelectors()
		if err != nil {
			return nil, err
		}
		return spec.Descendant(selectors...), nil
	case identifier:
		return spec.Descendant(spec.Name(tok.val)), nil
	case '*':
		return spec.Descendant(spec.Wildcard()), nil
	default:
		return nil, unexpected(tok)
	}
}

// makeNumErr converts a strconv.NumError into a parse error.
func makeNumErr(tok token, err error) error {
	var numError *strconv.NumError
	if errors.As(err, &numError) {
		return makeError(tok, fmt.Sprintf("cannot parse %q, %v", numError.Num, numError.Err.Error()))
	}
	return makeError(tok, err.Error())
}

// minInt and maxInt are the bounds RFC 9535 places on index and step
// values: ±(2^53-1).
const (
	minInt = -1<<53 + 1
	maxInt = 1<<53 - 1
)

// parseSelectors parses the comma-separated selectors of a bracketed
// segment. lex.r must be '[' before calling.
func (p *parser) parseSelectors() ([]spec.Selector, error) {
	selectors := []spec.Selector{}
	lex := p.lex
	for {
		switch tok := lex.scan(); tok.tok {
		case '?':
			filter, err := p.parseFilter()
			if err != nil {
				return nil, err
			}
			selectors = append(selectors, filter)
		case '*':
			selectors = append(selectors, spec.Wildcard())
		case goString:
			selectors = append(selectors, spec.Name(tok.val))
		case integer:
			if lex.skipBlankSpace() == ':' {
				slice, err := parseSlice(lex, tok)
				if err != nil {
					return nil, err
				}
				selectors = append(selectors, slice)
			} else {
				idx, err := parsePathInt(tok)
				if err != nil {
					return nil, err
				}
				selectors = append(selectors, spec.Index(idx))
			}
		case ':':
			slice, err := parseSlice(lex, tok)
			if err != nil {
				return nil, err
			}
			selectors = append(selectors, slice)
		case blankSpace:
			continue
		default:
			return nil, unexpected(tok)
		}

		switch lex.skipBlankSpace() {
		case ',':
			lex.scan()
		case ']':
			lex.scan()
			return selectors, nil
		default:
			return nil, unexpected(lex.scan())
		}
	}
}

// parsePathInt parses an integer index or step value, which must fall
// within [-(2^53-1), 2^53-1].
func parsePathInt(tok token) (int, error) {
	if tok.val == "-0" {
		return 0, makeError(tok, fmt.Sprintf("invalid integer path value %q", tok.val))
	}
	idx, err := strconv.ParseInt(tok.val, 10, 64)
	if err != nil {
		return 0, makeNumErr(tok, err)
	}
	if idx > maxInt || idx < minInt {
		return 0, makeError(tok, fmt.Sprintf("cannot parse %q, value out of range", tok.val))
	}
	return int(idx), nil
}

// parseSlice parses a slice selector, start:end:step.
func parseSlice(lex *lexer, tok token) (spec.SliceSelector, error) {
	var args [3]*int

	i := 0
	for i < 3 {
		switch tok.tok {
		case ':':
			i++
		case integer:
			num, err := parsePathInt(tok)
			if err != nil {
				return spec.SliceSelector{}, err
			}
			args[i] = &num
		default:
			return spec.SliceSelector{}, unexpected(tok)
		}

		next := lex.skipBlankSpace()
		if next == ']' || next == ',' {
			return spec.Slice(args[0], args[1], args[2]), nil
		}
		tok = lex.scan()
	}

	return spec.SliceSelector{}, unexpected(tok)
}

// parseFilter parses a filter selector's logical-or-expr.
func (p *parser) parseFilter() (*spec.FilterSelector, error) {
	lor, err := p.parseLogicalOrExpr()
	if err != nil {
		return nil, err
	}
	return spec.Filter(lor...), nil
}

// parseLogicalOrExpr parses one or more logical-and-exprs separated by "||".
func (p *parser) parseLogicalOrExpr() (spec.LogicalOr, error) {
	lex := p.lex
	ands := []spec.LogicalAnd{}
	land, err := p.parseLogicalAndExpr()
	if err != nil {
		return nil, err
	}
	ands = append(ands, land)

	lex.scanBlankSpace()
	for lex.r == '|' {
		lex.scan()
		next := lex.scan()
		if next.tok != '|' {
			return nil, makeError(next, fmt.Sprintf("expected '|' but found %v", next.name()))
		}
		land, err := p.parseLogicalAndExpr()
		if err != nil {
			return nil, err
		}
		ands = append(ands, land)
		lex.scanBlankSpace()
	}

	return spec.LogicalOr(ands), nil
}

// parseLogicalAndExpr parses one or more basic-exprs separated by "&&".
func (p *parser) parseLogicalAndExpr() (spec.LogicalAnd, error) {
	expr, err := p.parseBasicExpr()
	if err != nil {
		return nil, err
	}

	exprs := []spec.BasicExpr{expr}
	lex := p.lex
	lex.scanBlankSpace()
	for lex.r == '&' {
		lex.scan()
		next := lex.scan()
		if next.tok != '&' {
			return nil, makeError(next, fmt.Sprintf("expected '&' but found %v", next.name()))
		}
		expr, err := p.parseBasicExpr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
		lex.scanBlankSpace()
	}

	return spec.LogicalAnd(exprs), nil
}

// parseBasicExpr parses a paren-expr, comparison-expr, test-expr, or
// function-expr.
func (p *parser) parseBasicExpr() (spec.BasicExpr, error) {
	lex := p.lex
	lex.skipBlankSpace()

	tok := lex.scan()
	switch tok.tok {
	case '!':
		if lex.skipBlankSpace() == '(' {
			lex.scan()
			return p.parseNotParenExpr()
		}
		next := lex.scan()
		if next.tok == identifier {
			f, err := p.parseFunction(next)
			if err != nil {
				return nil, err
			}
			return spec.NotFuncExpr{FunctionExpr: f}, nil
		}
		return p.parseNotTestExpr(next)
	case '(':
		return p.parseParenExpr()
	case goString, integer, number, boolFalse, boolTrue, jsonNull:
		left, err := parseLiteral(tok)
		if err != nil {
			return nil, err
		}
		return p.parseComparableExpr(left)
	case identifier:
		if lex.r == '(' {
			return p.parseFunctionFilterExpr(tok)
		}
	case '@', '$':
		q, err := p.parseFilterQuery(tok)
		if err != nil {
			return nil, err
		}
		if sing := q.Singular(); sing != nil {
			switch lex.skipBlankSpace() {
			case '=', '!', '<', '>':
				return p.parseComparableExpr(sing)
			}
		}
		return spec.Test(q), nil
	}

	return nil, unexpected(tok)
}

// parseFunctionFilterExpr parses a basic-expr that starts with ident, an
// identifier naming a function. Returns the bare [spec.FunctionExpr] if it's
// logical-typed, otherwise requires it to be the left side of a
// comparison-expr.
func (p *parser) parseFunctionFilterExpr(ident token) (spec.BasicExpr, error) {
	f, err := p.parseFunction(ident)
	if err != nil {
		return nil, err
	}

	if f.ResultType() == spec.FuncLogical {
		return f, nil
	}

	switch p.lex.skipBlankSpace() {
	case '=', '!', '<', '>':
		return p.parseComparableExpr(f)
	}

	return nil, makeError(p.lex.scan(), "missing comparison to function result")
}

// parseNotTestExpr parses a negated test-expr ("!" already consumed).
func (p *parser) parseNotTestExpr(tok token) (*spec.NotTestExpr, error) {
	q, err := p.parseFilterQuery(tok)
	if err != nil {
		return nil, err
	}
	return spec.NotTest(q), nil
}

// parseFilterQuery parses a rel-query or jsonpath-query.
func (p *parser) parseFilterQuery(tok token) (*spec.PathQuery, error) {
	return p.parseQuery(tok.tok == '$')
}

// parseInnerParenExpr parses a logical-or-expr expected to be followed by a
// closing ')'.
func (p *parser) parseInnerParenExpr() (spec.LogicalOr, error) {
	expr, err := p.parseLogicalOrExpr()
	if err != nil {
		return nil, err
	}
	next := p.lex.scan()
	if next.tok != ')' {
		return nil, makeError(next, fmt.Sprintf("expected ')' but found %v", next.name()))
	}
	return expr, nil
}

// parseParenExpr parses a parenthesized expression. lex must be positioned
// just after the opening '('.
func (p *parser) parseParenExpr() (*spec.ParenExpr, error) {
	expr, err := p.parseInnerParenExpr()
	if err != nil {
		return nil, err
	}
	return spec.Paren(expr...), nil
}

// parseNotParenExpr parses a negated parenthesized expression. lex must be
// positioned just after the opening '('.
func (p *parser) parseNotParenExpr() (*spec.NotParenExpr, error) {
	expr, err := p.parseInnerParenExpr()
	if err != nil {
		return nil, err
	}
	return spec.NotParen(expr...), nil
}

// parseFunction parses a function call named tok.val. tok must be the
// identifier token naming the function.
func (p *parser) parseFunction(tok token) (*spec.FunctionExpr, error) {
	paren := p.lex.scan() // consume '('
	args, err := p.parseFunctionArgs()
	if err != nil {
		return nil, err
	}

	fe, err := spec.NewFunctionExpr(p.reg, tok.val, args)
	if err != nil {
		return nil, fmt.Errorf("%w: %w at position %v", ErrPathParse, err, paren.pos+1)
	}
	return fe, nil
}

// parseFunctionArgs parses a function call's comma-delimited arguments,
// each one of: literal, filter-query (including singular-query), logical
// expression, or nested function-expr.
func (p *parser) parseFunctionArgs() ([]spec.FunctionExprArg, error) {
	res := []spec.FunctionExprArg{}
	lex := p.lex
	for {
		// A '!' or '(' is left unconsumed so that parseLogicalOrExpr parses
		// the whole negated or parenthesized expression.
		tok := token{tok: lex.skipBlankSpace(), pos: lex.rPos}
		if tok.tok != '!' && tok.tok != '(' {
			tok = lex.scan()
		}
		switch tok.tok {
		case goString, integer, number, boolFalse, boolTrue, jsonNull:
			val, err := parseLiteral(tok)
			if err != nil {
				return nil, err
			}
			res = append(res, val)
		case '@', '$':
			q, err := p.parseFilterQuery(tok)
			if err != nil {
				return nil, err
			}
			res = append(res, q.Expression())
		case identifier:
			if p.lex.skipBlankSpace() != '(' {
				return nil, unexpected(tok)
			}
			f, err := p.parseFunction(tok)
			if err != nil {
				return nil, err
			}
			res = append(res, f)
		case blankSpace:
			continue
		case ')':
			return res, nil
		case '!', '(':
			ors, err := p.parseLogicalOrExpr()
			if err != nil {
				return nil, err
			}
			res = append(res, ors)
		default:
			return nil, unexpected(tok)
		}

		switch lex.skipBlankSpace() {
		case ',':
			lex.scan()
		case ')':
			lex.scan()
			return res, nil
		default:
			return nil, unexpected(lex.scan())
		}
	}
}

// parseLiteral converts tok into a [spec.LiteralArg]. tok.tok must be one of
// goString, integer, number, boolFalse, boolTrue, or jsonNull.
func parseLiteral(tok token) (*spec.LiteralArg, error) {
	switch tok.tok {
	case goString:
		return spec.Literal(tok.val), nil
	case integer:
		i, err := strconv.ParseInt(tok.val, 10, 64)
		if err != nil {
			return nil, makeNumErr(tok, err)
		}
		return spec.Literal(i), nil
	case number:
		n, err := strconv.ParseFloat(tok.val, 64)
		if err != nil {
			return nil, makeNumErr(tok, err)
		}
		return spec.Literal(n), nil
	case boolTrue:
		return spec.Literal(true), nil
	case boolFalse:
		return spec.Literal(false), nil
	case jsonNull:
		return spec.Literal(nil), nil
	default:
		return nil, unexpected(tok)
	}
}

// parseComparableExpr parses a comparison-expr given its already-parsed left
// operand.
func (p *parser) parseComparableExpr(left spec.CompVal) (*spec.ComparisonExpr, error) {
	lex := p.lex
	lex.skipBlankSpace()

	op, err := parseCompOp(lex)
	if err != nil {
		return nil, err
	}

	lex.skipBlankSpace()
	right, err := p.parseComparableVal(lex.scan())
	if err != nil {
		return nil, err
	}

	return spec.Comparison(left, op, right), nil
}

// parseComparableVal parses a comparable operand: a literal, singular
// query, or logical-returning-excluded function call.
func (p *parser) parseComparableVal(tok token) (spec.CompVal, error) {
	switch tok.tok {
	case goString, integer, number, boolFalse, boolTrue, jsonNull:
		return parseLiteral(tok)
	case '@', '$':
		return parseSingularQuery(tok, p.lex)
	case identifier:
		if p.lex.r != '(' {
			return nil, unexpected(tok)
		}
		f, err := p.parseFunction(tok)
		if err != nil {
			return nil, err
		}
		if f.ResultType() == spec.FuncLogical {
			return nil, makeError(tok, "cannot compare result of logical function")
		}
		return f, nil
	default:
		return nil, unexpected(tok)
	}
}

// parseCompOp parses a comparison operator.
func parseCompOp(lex *lexer) (spec.CompOp, error) {
	tok := lex.scan()
	switch tok.tok {
	case '=':
		if lex.r == '=' {
			lex.scan()
			return spec.EqualTo, nil
		}
	case '!':
		if lex.r == '=' {
			lex.scan()
			return spec.NotEqualTo, nil
		}
	case '<':
		if lex.r == '=' {
			lex.scan()
			return spec.LessThanEqualTo, nil
		}
		return spec.LessThan, nil
	case '>':
		if lex.r == '=' {
			lex.scan()
			return spec.GreaterThanEqualTo, nil
		}
		return spec.GreaterThan, nil
	}
	return 0, makeError(tok, "invalid comparison operator")
}

// parseSingularQuery parses a singular-query: a chain of single-selector
// name or index accesses.
func parseSingularQuery(startToken token, lex *lexer) (*spec.SingularQueryExpr, error) {
	selectors := []spec.Selector{}
	for {
		switch lex.r {
		case '[':
			lex.skipBlankSpace()
			lex.scan()
			switch tok := lex.scan(); tok.tok {
			case goString:
				selectors = append(selectors, spec.Name(tok.val))
			case integer:
				idx, err := parsePathInt(tok)
				if err != nil {
					return nil, err
				}
				selectors = append(selectors, spec.Index(idx))
			default:
				return nil, unexpected(tok)
			}
			lex.skipBlankSpace()
			tok := lex.scan()
			if tok.tok != ']' {
				return nil, unexpected(tok)
			}
		case '.':
			lex.scan()
			tok := lex.scan()
			if tok.tok != identifier {
				return nil, unexpected(tok)
			}
			selectors = append(selectors, spec.Name(tok.val))
		default:
			return spec.SingularQuery(startToken.tok == '$', selectors), nil
		}
	}
}
