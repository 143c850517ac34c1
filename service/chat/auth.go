package chat

import (
	"context"
	"net/http"

	"ChatGo/global"
	usermodel "ChatGo/module/user/model"
	"ChatGo/tools/errs"
	"ChatGo/tools/security"
)

// Identity is the authenticated user bound to a connection for its whole
// lifetime. The display name is snapshotted here so NEW_MESSAGE never needs
// a per-message lookup.
type Identity struct {
	ID   string
	Name string
}

// UserLoader resolves a verified user id to the full user record.
type UserLoader interface {
	FindByID(ctx context.Context, userID string) (*usermodel.User, error)
}

// Authenticator verifies the session cookie shared with the HTTP layer and
// loads the user record before a connection is admitted. Any failure is
// fatal to connection setup; the gateway never admits an unauthenticated
// socket.
type Authenticator struct {
	Opts  security.Options
	Users UserLoader
}

func NewAuthenticator(opts security.Options, users UserLoader) *Authenticator {
	return &Authenticator{Opts: opts, Users: users}
}

func (a *Authenticator) Authenticate(ctx context.Context, r *http.Request) (*Identity, error) {
	ck, err := r.Cookie(global.TokenKey)
	if err != nil || ck.Value == "" {
		return nil, errs.ErrTokenMissing.Wrap()
	}
	userID, err := security.Verify(a.Opts, ck.Value)
	if err != nil {
		return nil, err
	}
	u, err := a.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, errs.ErrUserNotFound.WrapMsg(err.Error())
	}
	return &Identity{ID: u.UserID, Name: u.Name}, nil
}
