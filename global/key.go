package global

// TokenKey is the session cookie name. The HTTP middleware and the websocket
// authenticator both read it; existing web clients send this exact name.
const TokenKey = "chatgo-token"

// Gin context keys set by the auth middleware.
const (
	CtxUserIDKey = "userId"
)
