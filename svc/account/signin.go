package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/campusnet/accounts/pkg/logger"
	"github.com/campusnet/accounts/pkg/sanitizer"
	"github.com/campusnet/accounts/pkg/validator"
	"github.com/campusnet/accounts/svc/auth"
)

// TokenPair is the credential set of an established session.
type TokenPair struct {
	Role             auth.Role
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// SignInResult carries either Tokens (single role) or a SelectionToken that
// must be redeemed through SelectRole (several roles).
type SignInResult struct {
	Account        *Account
	Tokens         *TokenPair
	SelectionToken string
}

func (r *SignInResult) RequiresRoleSelection() bool {
	return r.Tokens == nil
}

// AccessToken is a freshly minted access credential.
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}

// SignIn checks the password before the status so inactive accounts are
// only disclosed to callers who know the password.
func (s *Service) SignIn(ctx context.Context, emailAddr, password string) (*SignInResult, error) {
	emailAddr = sanitizer.NormalizeEmail(emailAddr)
	if err := validator.Apply(
		validator.Required("email", emailAddr),
		validator.Required("password", password),
	); err != nil {
		return nil, err
	}

	a, err := s.store.ByEmail(ctx, emailAddr)
	if err != nil {
		if !errors.Is(err, ErrAccountNotFound) {
			return nil, err
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if a.Status != StatusActive {
		return nil, ErrAccountNotActive
	}

	id := a.ID.Hex()
	if role, ok := a.Roles.Single(); ok {
		pair, err := s.openSession(ctx, id, role)
		if err != nil {
			return nil, err
		}
		s.log.InfoContext(ctx, "signed in", logger.AccountID(id), logger.Role(role), logger.Event("signin"))
		return &SignInResult{Account: a, Tokens: pair}, nil
	}
	if len(a.Roles) == 0 {
		return nil, ErrRoleNotHeld
	}

	selection, err := s.tokens.IssueSelectionToken(id)
	if err != nil {
		return nil, fmt.Errorf("account: issue selection token: %w", err)
	}
	s.log.InfoContext(ctx, "role selection required", logger.AccountID(id), logger.Event("signin"))
	return &SignInResult{Account: a, SelectionToken: selection}, nil
}

// SelectRole completes a multi-role sign-in. The selection token must have
// been issued to accountID.
func (s *Service) SelectRole(ctx context.Context, selectionToken, accountID string, role auth.Role) (*Account, *TokenPair, error) {
	claims, err := s.tokens.Verify(selectionToken, auth.KindSelection)
	if err != nil {
		return nil, nil, err
	}
	if claims.AccountID() != accountID {
		return nil, nil, auth.ErrInvalidToken
	}
	if !role.Valid() {
		return nil, nil, auth.ErrInvalidRole
	}

	a, err := s.store.ByID(ctx, accountID)
	if err != nil {
		return nil, nil, err
	}
	if a.Status != StatusActive {
		return nil, nil, ErrAccountNotActive
	}
	if !a.Roles.Has(role) {
		return nil, nil, ErrRoleNotHeld
	}

	pair, err := s.openSession(ctx, accountID, role)
	if err != nil {
		return nil, nil, err
	}
	s.log.InfoContext(ctx, "role selected", logger.AccountID(accountID), logger.Role(role), logger.Event("select_role"))
	return a, pair, nil
}

// openSession issues an access/refresh pair and records the refresh token,
// replacing any previous session of the account.
func (s *Service) openSession(ctx context.Context, accountID string, role auth.Role) (*TokenPair, error) {
	access, accessExp, err := s.tokens.IssueAccessToken(accountID, role)
	if err != nil {
		return nil, fmt.Errorf("account: issue access token: %w", err)
	}
	refresh, refreshExp, err := s.tokens.IssueRefreshToken(accountID)
	if err != nil {
		return nil, fmt.Errorf("account: issue refresh token: %w", err)
	}
	if err := s.sessions.Put(ctx, accountID, refresh, role); err != nil {
		return nil, err
	}
	return &TokenPair{
		Role:             role,
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// RefreshAccessToken exchanges a registered refresh token for a new access
// token carrying the session's role.
func (s *Service) RefreshAccessToken(ctx context.Context, refreshToken string) (AccessToken, error) {
	claims, err := s.tokens.Verify(refreshToken, auth.KindRefresh)
	if err != nil {
		return AccessToken{}, err
	}
	sess, err := s.sessions.Match(ctx, claims.AccountID(), refreshToken)
	if err != nil {
		return AccessToken{}, err
	}

	token, exp, err := s.tokens.IssueAccessToken(sess.AccountID, sess.Role)
	if err != nil {
		return AccessToken{}, fmt.Errorf("account: issue access token: %w", err)
	}
	return AccessToken{Token: token, ExpiresAt: exp}, nil
}

// Logout clears the session the refresh token belongs to. Missing, invalid
// or superseded tokens are ignored.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	claims, err := s.tokens.Verify(refreshToken, auth.KindRefresh)
	if err != nil {
		return nil
	}
	if _, err := s.sessions.Match(ctx, claims.AccountID(), refreshToken); err != nil {
		if errors.Is(err, auth.ErrInvalidSession) {
			return nil
		}
		return err
	}
	if err := s.sessions.Clear(ctx, claims.AccountID()); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "signed out", logger.AccountID(claims.AccountID()), logger.Event("logout"))
	return nil
}
