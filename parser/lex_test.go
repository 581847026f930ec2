package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func scanAll(src string) []token {
	lex := newLexer(src)
	var toks []token
	for {
		tok := lex.scan()
		toks = append(toks, tok)
		if tok.tok == eof || tok.tok == invalid {
			break
		}
	}
	return toks
}

func TestScanPunctuation(t *testing.T) {
	t.Parallel()

	toks := scanAll("$.a[0]")
	var kinds []rune
	for _, tok := range toks {
		kinds = append(kinds, tok.tok)
	}
	assert.Equal(t, []rune{'$', '.', identifier, '[', integer, ']', eof}, kinds)
}

func TestScanIdentifier(t *testing.T) {
	t.Parallel()

	lex := newLexer("hello")
	tok := lex.scan()
	assert.Equal(t, rune(identifier), tok.tok)
	assert.Equal(t, "hello", tok.val)
}

func TestScanKeywords(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		src  string
		want rune
	}{
		{"true", boolTrue},
		{"false", boolFalse},
		{"null", jsonNull},
	} {
		lex := newLexer(tc.src)
		tok := lex.scan()
		assert.Equal(t, tc.want, tok.tok)
	}
}

func TestScanEscapedIdentifierIsNotKeyword(t *testing.T) {
	t.Parallel()

	// The same text as the "true" keyword, but with its first letter
	// written as a \u escape, so it must lex as a plain identifier.
	lex := newLexer("\\u0074rue")
	tok := lex.scan()
	assert.Equal(t, rune(identifier), tok.tok)
	assert.Equal(t, "true", tok.val)
}

func TestScanNumbers(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		src  string
		kind rune
		val  string
	}{
		{"0", integer, "0"},
		{"42", integer, "42"},
		{"-17", integer, "-17"},
		{"3.14", number, "3.14"},
		{"1e10", number, "1e10"},
		{"1.5e-3", number, "1.5e-3"},
		{"-0.0", number, "-0.0"},
	} {
		t.Run(tc.src, func(t *testing.T) {
			t.Parallel()
			lex := newLexer(tc.src)
			tok := lex.scan()
			assert.Equal(t, tc.kind, tok.tok)
			assert.Equal(t, tc.val, tok.val)
		})
	}
}

func TestScanInvalidNumbers(t *testing.T) {
	t.Parallel()

	for _, src := range []string{"01", "-01", "1."} {
		lex := newLexer(src)
		tok := lex.scan()
		assert.Equal(t, rune(invalid), tok.tok, "source %q", src)
	}
}

func TestScanString(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		src  string
		want string
	}{
		{`"hello"`, "hello"},
		{`'hello'`, "hello"},
		{`"with \"quote\""`, `with "quote"`},
		{`"tab\tnewline\n"`, "tab\tnewline\n"},
		{`"unicode é"`, "unicode é"},
		{`"emoji 😀"`, "emoji \U0001F600"},
	} {
		t.Run(tc.src, func(t *testing.T) {
			t.Parallel()
			lex := newLexer(tc.src)
			tok := lex.scan()
			assert.Equal(t, rune(goString), tok.tok)
			assert.Equal(t, tc.want, tok.val)
		})
	}
}

func TestScanUnterminatedString(t *testing.T) {
	t.Parallel()

	lex := newLexer(`"no end`)
	tok := lex.scan()
	assert.Equal(t, rune(invalid), tok.tok)
}

func TestScanBlankSpace(t *testing.T) {
	t.Parallel()

	lex := newLexer("  \t\n $")
	tok := lex.scan()
	assert.Equal(t, rune(blankSpace), tok.tok)
	tok = lex.scan()
	assert.Equal(t, rune('$'), tok.tok)
}

func TestSkipAndPeekPastBlankSpace(t *testing.T) {
	t.Parallel()

	lex := newLexer("   [")
	assert.Equal(t, rune('['), lex.peekPastBlankSpace())
	assert.Equal(t, rune('['), lex.skipBlankSpace())
}

func TestTokenName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "eof", token{tok: eof}.name())
	assert.Equal(t, "identifier", token{tok: identifier}.name())
	assert.Equal(t, `'$'`, token{tok: '$'}.name())
}
