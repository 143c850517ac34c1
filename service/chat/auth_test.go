package chat

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ChatGo/global"
	usermodel "ChatGo/module/user/model"
	"ChatGo/tools/errs"
	"ChatGo/tools/security"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers map[string]*usermodel.User

func (f fakeUsers) FindByID(_ context.Context, userID string) (*usermodel.User, error) {
	if u, ok := f[userID]; ok {
		return u, nil
	}
	return nil, errs.ErrUserNotFound.Wrap()
}

func testOpts() security.Options {
	return security.DefaultOptions([]byte("test-secret"))
}

func wsRequest(token string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/ws", nil)
	if token != "" {
		r.AddCookie(&http.Cookie{Name: global.TokenKey, Value: token})
	}
	return r
}

func TestAuthenticateSuccess(t *testing.T) {
	users := fakeUsers{"u1": {UserID: "u1", Name: "Alice"}}
	a := NewAuthenticator(testOpts(), users)

	token, _, err := security.Generate(testOpts(), "u1")
	require.NoError(t, err)

	ident, err := a.Authenticate(context.Background(), wsRequest(token))
	require.NoError(t, err)
	assert.Equal(t, "u1", ident.ID)
	assert.Equal(t, "Alice", ident.Name)
}

func TestAuthenticateMissingCookie(t *testing.T) {
	a := NewAuthenticator(testOpts(), fakeUsers{})

	_, err := a.Authenticate(context.Background(), wsRequest(""))
	assert.True(t, errors.Is(err, errs.ErrTokenMissing), "got %v", err)
}

func TestAuthenticateGarbageToken(t *testing.T) {
	a := NewAuthenticator(testOpts(), fakeUsers{})

	_, err := a.Authenticate(context.Background(), wsRequest("definitely.not.a.jwt"))
	assert.True(t, errors.Is(err, errs.ErrTokenInvalid), "got %v", err)
}

func TestAuthenticateWrongSecret(t *testing.T) {
	a := NewAuthenticator(testOpts(), fakeUsers{"u1": {UserID: "u1"}})

	token, _, err := security.Generate(security.DefaultOptions([]byte("other-secret")), "u1")
	require.NoError(t, err)

	_, err = a.Authenticate(context.Background(), wsRequest(token))
	assert.True(t, errors.Is(err, errs.ErrTokenInvalid), "got %v", err)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	a := NewAuthenticator(testOpts(), fakeUsers{"u1": {UserID: "u1"}})

	claims := jwtlib.MapClaims{
		"sub": "u1",
		"iat": time.Now().Add(-2 * time.Hour).Unix(),
		"exp": time.Now().Add(-time.Hour).Unix(),
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = a.Authenticate(context.Background(), wsRequest(token))
	assert.True(t, errors.Is(err, errs.ErrTokenExpired), "got %v", err)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	a := NewAuthenticator(testOpts(), fakeUsers{})

	token, _, err := security.Generate(testOpts(), "deleted-user")
	require.NoError(t, err)

	_, err = a.Authenticate(context.Background(), wsRequest(token))
	assert.True(t, errors.Is(err, errs.ErrUserNotFound), "got %v", err)
}
