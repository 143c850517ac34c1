package errs

// Auth errors are fatal to the request or the connection handshake and are
// never retried here. Persistence errors are logged and swallowed by the
// realtime path (fail-soft).
var (
	ErrTokenMissing = NewCodeError(1101, "token missing")
	ErrTokenInvalid = NewCodeError(1102, "token invalid")
	ErrTokenExpired = NewCodeError(1103, "token expired")

	ErrUserNotFound   = NewCodeError(1201, "user not found")
	ErrUserExists     = NewCodeError(1202, "username already taken")
	ErrBadCredentials = NewCodeError(1203, "wrong username or password")

	ErrRecordNotFound = NewCodeError(1301, "record not found")
	ErrPersistence    = NewCodeError(1302, "persistence failed")

	ErrBadRequest = NewCodeError(1400, "bad request")
	ErrForbidden  = NewCodeError(1403, "forbidden")
)
