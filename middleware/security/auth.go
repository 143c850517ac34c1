package security

import (
	"errors"
	"net/http"

	"ChatGo/global"
	"ChatGo/tools/errs"
	"ChatGo/tools/security"

	"github.com/gin-gonic/gin"
)

type Options struct {
	// Cookie carrying the session token. Defaults to the shared token key.
	CookieName string
	JWT        security.Options
}

func DefaultOptions() *Options {
	return &Options{
		CookieName: global.TokenKey,
		JWT:        security.DefaultOptions(global.GetJwtSecret()),
	}
}

// Middleware verifies the session cookie and puts the user id into the gin
// context under global.CtxUserIDKey. Requests without a valid token never
// reach the handler.
func Middleware(opts *Options) gin.HandlerFunc {
	if opts == nil {
		opts = DefaultOptions()
	}
	return func(c *gin.Context) {
		ck, err := c.Request.Cookie(opts.CookieName)
		if err != nil || ck.Value == "" {
			abortUnauthorized(c, errs.ErrTokenMissing)
			return
		}
		userID, err := security.Verify(opts.JWT, ck.Value)
		if err != nil {
			code := errs.ErrTokenInvalid
			if errors.Is(err, errs.ErrTokenExpired) {
				code = errs.ErrTokenExpired
			}
			abortUnauthorized(c, code)
			return
		}
		c.Set(global.CtxUserIDKey, userID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, ce *errs.CodeError) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"code":    ce.Code,
		"message": "please login to access this route",
	})
}
