package jsonpath

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arborio/jsonpath/parser"
	"github.com/arborio/jsonpath/spec"
)

func TestNewCompileErrorClassification(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name string
		err  error
		kind error
	}{
		{"unregistered", spec.ErrUnregistered, ErrName},
		{"invalid_args", spec.ErrInvalidArgs, ErrType},
		{"parse", parser.ErrPathParse, ErrSyntax},
		{"other", errors.New("boom"), ErrSyntax},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ce := newCompileError(tc.err)
			assert.ErrorIs(t, ce, tc.kind)
		})
	}
}

func TestCompileErrorError(t *testing.T) {
	t.Parallel()

	underlying := errors.New("bad query")
	ce := newCompileError(underlying)
	assert.Contains(t, ce.Error(), "bad query")
}
