package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpErrorWrapUnwrap(t *testing.T) {
	root := errors.New("root")
	err := &OpError{
		Op:   "schemastore.load",
		Kind: KindNotFound,
		Path: "schemas/x.json",
		Err:  root,
	}

	require.ErrorIs(t, err, root)

	var got *OpError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, KindNotFound, got.Kind)
	assert.Equal(t, "schemastore.load: not_found (path=schemas/x.json): root", err.Error())
}

func TestOpErrorNil(t *testing.T) {
	var err *OpError
	assert.Equal(t, "<nil>", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &OpError{Op: "x", Kind: KindInvalidConfig})

	assert.True(t, IsKind(err, KindInvalidConfig))
	assert.False(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(errors.New("plain"), KindInvalidConfig))
}

func TestCause(t *testing.T) {
	inner := errors.New("Invalid JSON: unexpected end of JSON input")
	err := &OpError{Op: "infer.parse", Kind: KindInvalidInput, Err: inner}

	assert.Equal(t, inner.Error(), Cause(err))
	assert.Equal(t, "plain", Cause(errors.New("plain")))
	assert.Equal(t, "", Cause(nil))

	nested := &OpError{Op: "outer", Kind: KindExecution, Err: err}
	assert.Equal(t, inner.Error(), Cause(nested))
}
