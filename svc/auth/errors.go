package auth

import "errors"

var (
	ErrInvalidToken    = errors.New("auth: invalid token")
	ErrInvalidSession  = errors.New("auth: invalid session")
	ErrSessionNotFound = errors.New("auth: session not found")
	ErrInvalidRole     = errors.New("auth: invalid role")
	ErrTokenConfig     = errors.New("auth: invalid token configuration")
)
