package account

import "errors"

var (
	ErrAccountNotFound      = errors.New("account: not found")
	ErrEmailTaken           = errors.New("account: email already registered")
	ErrInstitutionalIDTaken = errors.New("account: institutional id already registered")
	ErrInvalidCredentials   = errors.New("account: invalid email or password")
	ErrAccountNotActive     = errors.New("account: not active")
	ErrAlreadyActivated     = errors.New("account: already activated")
	ErrPasswordMismatch     = errors.New("account: passwords do not match")
	ErrRoleNotHeld          = errors.New("account: role not held")
	ErrInvalidStatus        = errors.New("account: invalid status")
	ErrStatusConflict       = errors.New("account: status changed concurrently")
)
