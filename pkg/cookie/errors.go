package cookie

import "errors"

var (
	ErrCookieNotFound  = errors.New("cookie: not found")
	ErrInvalidSameSite = errors.New("cookie: invalid same-site mode")
)
