package account

import (
	"github.com/campusnet/accounts/svc/account"
	"github.com/campusnet/accounts/svc/auth"
)

type SignUpRequest struct {
	InstitutionalID string `json:"institutional_id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Program         string `json:"program"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type ActivationRequest struct {
	ActivationToken string `json:"activation_token"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SelectRoleRequest struct {
	UserID       string    `json:"userId"`
	SelectedRole auth.Role `json:"selectedRole"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// UpdateUserRequest is a partial update: absent fields are left as they are.
type UpdateUserRequest struct {
	Name      *string `json:"name"`
	Program   *string `json:"program"`
	Address   *string `json:"address"`
	Phone     *string `json:"phone"`
	Bio       *string `json:"bio"`
	Avatar    *string `json:"avatar"`
	Youtube   *string `json:"youtube"`
	Instagram *string `json:"instagram"`
	Facebook  *string `json:"facebook"`
	Twitter   *string `json:"twitter"`
	Github    *string `json:"github"`
	Website   *string `json:"website"`

	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`

	// ConfirmPasswordAlias accepts the camel case name used by signup and reset.
	ConfirmPasswordAlias string `json:"confirmPassword"`
}

func (r UpdateUserRequest) confirmation() string {
	if r.ConfirmPassword != "" {
		return r.ConfirmPassword
	}
	return r.ConfirmPasswordAlias
}

func (r UpdateUserRequest) input() account.ProfileInput {
	return account.ProfileInput{
		Name:            r.Name,
		Program:         r.Program,
		Address:         r.Address,
		Phone:           r.Phone,
		Bio:             r.Bio,
		Avatar:          r.Avatar,
		Youtube:         r.Youtube,
		Instagram:       r.Instagram,
		Facebook:        r.Facebook,
		Twitter:         r.Twitter,
		Github:          r.Github,
		Website:         r.Website,
		Password:        r.Password,
		ConfirmPassword: r.confirmation(),
	}
}

type AccountIDRequest struct {
	ID string `path:"id" json:"-"`
}

type UpdateRoleRequest struct {
	ID    string       `path:"id" json:"-"`
	Roles auth.RoleSet `json:"role"`
}

type UpdateStatusRequest struct {
	ID     string         `path:"id" json:"-"`
	Status account.Status `json:"status"`
}

type ListAccountsRequest struct {
	Role   auth.Role `query:"role"`
	Status string    `query:"status"`
	Limit  int       `query:"limit"`
	Offset int       `query:"offset"`
}

type emptyRequest struct{}

type messageResponse struct {
	Message string `json:"message"`
}

type sessionResponse struct {
	User            account.View `json:"user"`
	ActiveRole      auth.Role    `json:"active_role"`
	AccessExpiresAt int64        `json:"access_expires_at"`
}

type roleSelectionResponse struct {
	RequireRoleSelection bool         `json:"require_role_selection"`
	UserID               string       `json:"user_id"`
	Roles                auth.RoleSet `json:"roles"`
}

type accessTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}
