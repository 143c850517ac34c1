package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeErrorMatchesByCode(t *testing.T) {
	err := ErrTokenExpired.WrapMsg("exp claim in the past")
	assert.True(t, errors.Is(err, ErrTokenExpired))
	assert.False(t, errors.Is(err, ErrTokenInvalid))
}

func TestWithDetailKeepsOriginal(t *testing.T) {
	d := ErrBadRequest.WithDetail("missing field")
	assert.Equal(t, ErrBadRequest.Code, d.Code)
	assert.Contains(t, d.Error(), "missing field")
	assert.Empty(t, ErrBadRequest.Detail, "predefined error must stay clean")
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "context"))
}

func TestWrapAddsContext(t *testing.T) {
	err := Wrap(errors.New("boom"), "insert user")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert user")
	assert.Contains(t, err.Error(), "boom")
}
