package account

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/campusnet/accounts/handler"
	"github.com/campusnet/accounts/pkg/validator"
	"github.com/campusnet/accounts/svc/account"
	"github.com/campusnet/accounts/svc/auth"
)

var (
	errInvalidCredentials = handler.ErrUnauthorized.WithMessage("invalid email or password")
	errInvalidToken       = handler.ErrUnauthorized.WithMessage("invalid or expired token")
	errInactive           = handler.NewHTTPError(http.StatusForbidden, "account_inactive", "account is not active")
	errAccountNotFound    = handler.ErrNotFound.WithMessage("account not found")
	errMissingSelection   = handler.ErrBadRequest.WithMessage("role selection is not pending")
	errBadSelection       = handler.ErrBadRequest.WithMessage("invalid or expired role selection")
	errMissingRefresh     = handler.ErrBadRequest.WithMessage("refresh token is missing")
	errBadActivation      = handler.ErrBadRequest.WithMessage("invalid or expired activation token")
	errBadRefresh         = handler.ErrBadRequest.WithMessage("invalid refresh token")
)

// httpError classifies a service error. The cause stays in the chain for
// logging; unknown errors pass through and render as a generic 500.
func httpError(err error) error {
	if ve := validator.ExtractValidationErrors(err); ve != nil {
		fields := handler.ValidationError{}
		for _, e := range ve {
			fields.Add(e.Field, e.Message)
		}
		return fmt.Errorf("%w: %w", fields, err)
	}

	var mapped error
	switch {
	case errors.Is(err, account.ErrPasswordMismatch):
		mapped = handler.ValidationError{"confirmPassword": {"passwords do not match"}}
	case errors.Is(err, auth.ErrInvalidRole):
		mapped = handler.NewHTTPError(http.StatusBadRequest, "invalid_role", "invalid role")
	case errors.Is(err, account.ErrInvalidStatus):
		mapped = handler.NewHTTPError(http.StatusBadRequest, "invalid_status", "status must be active or inactive")
	case errors.Is(err, account.ErrRoleNotHeld):
		mapped = handler.NewHTTPError(http.StatusBadRequest, "role_not_held", "role is not held by this account")
	case errors.Is(err, account.ErrAlreadyActivated):
		mapped = handler.NewHTTPError(http.StatusBadRequest, "already_activated", "account is already activated")
	case errors.Is(err, account.ErrEmailTaken):
		mapped = handler.NewHTTPError(http.StatusBadRequest, "email_taken", "email is already registered")
	case errors.Is(err, account.ErrInstitutionalIDTaken):
		mapped = handler.NewHTTPError(http.StatusBadRequest, "institutional_id_taken", "institutional id is already registered")
	case errors.Is(err, account.ErrInvalidCredentials):
		mapped = errInvalidCredentials
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrInvalidSession):
		mapped = errInvalidToken
	case errors.Is(err, account.ErrAccountNotActive):
		mapped = errInactive
	case errors.Is(err, account.ErrAccountNotFound):
		mapped = errAccountNotFound
	default:
		return err
	}
	return fmt.Errorf("%w: %w", mapped, err)
}

// failure is a Response whose rendering hands err to the error handler.
type failure struct{ err error }

func (f failure) Render(http.ResponseWriter, *http.Request) error { return f.err }

func fail(err error) handler.Response {
	return failure{err: httpError(err)}
}

// failToken reports token and session failures as 400, the status the
// activation, refresh and role-selection endpoints answer with.
func failToken(err error, tokenErr handler.HTTPError) handler.Response {
	if errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, auth.ErrInvalidSession) {
		return failure{err: fmt.Errorf("%w: %w", tokenErr, err)}
	}
	return fail(err)
}
