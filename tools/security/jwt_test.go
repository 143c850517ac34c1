package security

import (
	"errors"
	"testing"
	"time"

	"ChatGo/tools/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateVerifyRoundtrip(t *testing.T) {
	opts := DefaultOptions([]byte("secret"))

	token, expireAt, err := Generate(opts, "u42")
	require.NoError(t, err)
	assert.True(t, expireAt.After(time.Now()))

	sub, err := Verify(opts, token)
	require.NoError(t, err)
	assert.Equal(t, "u42", sub)
}

func TestVerifyMissingToken(t *testing.T) {
	_, err := Verify(DefaultOptions([]byte("secret")), "  ")
	assert.True(t, errors.Is(err, errs.ErrTokenMissing), "got %v", err)
}

func TestVerifyTamperedToken(t *testing.T) {
	opts := DefaultOptions([]byte("secret"))
	token, _, err := Generate(opts, "u1")
	require.NoError(t, err)

	_, err = Verify(opts, token+"x")
	assert.True(t, errors.Is(err, errs.ErrTokenInvalid), "got %v", err)
}

func TestGenerateRejectsUnknownAlg(t *testing.T) {
	opts := Options{Secret: []byte("secret"), Alg: "RS256"}
	_, _, err := Generate(opts, "u1")
	assert.Error(t, err)
}

func TestHashPasswordRoundtrip(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, CheckPassword(hash, "hunter22"))
	assert.False(t, CheckPassword(hash, "hunter23"))
}
