package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/campusnet/accounts/pkg/logger"
	"github.com/campusnet/accounts/pkg/sanitizer"
	"github.com/campusnet/accounts/pkg/validator"
	"github.com/campusnet/accounts/svc/auth"
)

const (
	MinPasswordLength = 6
	// bcrypt ignores input beyond 72 bytes.
	MaxPasswordBytes = 72
)

type SignUpInput struct {
	InstitutionalID string
	Name            string
	Email           string
	Program         string
	Password        string
	ConfirmPassword string
}

func passwordRules(password string) []validator.Rule {
	return []validator.Rule{
		validator.Required("password", password),
		validator.MinLen("password", password, MinPasswordLength),
		validator.MaxBytes("password", password, MaxPasswordBytes),
	}
}

// SignUp creates a pending account and mails its activation link. If the
// mail cannot be delivered the pending record is removed again.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (*Account, error) {
	in.InstitutionalID = sanitizer.SingleLine(in.InstitutionalID)
	in.Name = sanitizer.SingleLine(in.Name)
	in.Email = sanitizer.NormalizeEmail(in.Email)
	in.Program = sanitizer.SingleLine(in.Program)

	rules := []validator.Rule{
		validator.Required("institutional_id", in.InstitutionalID),
		validator.MaxLen("institutional_id", in.InstitutionalID, 64),
		validator.Required("name", in.Name),
		validator.MaxLen("name", in.Name, 100),
		validator.Required("email", in.Email),
		validator.ValidEmail("email", in.Email),
		validator.Required("program", in.Program),
		validator.MaxLen("program", in.Program, 100),
	}
	if err := validator.Apply(append(rules, passwordRules(in.Password)...)...); err != nil {
		return nil, err
	}
	if in.Password != in.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	if err := s.ensureUnique(ctx, in.Email, in.InstitutionalID); err != nil {
		return nil, err
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := s.timestamp()
	a := &Account{
		InstitutionalID: in.InstitutionalID,
		Email:           in.Email,
		PasswordHash:    hash,
		Roles:           auth.MustRoleSet(auth.RoleStudent),
		Status:          StatusPending,
		Profile:         Profile{Name: in.Name, Program: in.Program},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.store.Create(ctx, a); err != nil {
		return nil, err
	}

	if err := s.deliverActivation(ctx, a); err != nil {
		if delErr := s.store.Delete(ctx, a.ID.Hex()); delErr != nil {
			s.log.ErrorContext(ctx, "failed to remove pending account after activation mail failure",
				logger.AccountID(a.ID.Hex()),
				logger.Error(delErr),
			)
		}
		return nil, err
	}

	s.log.InfoContext(ctx, "account registered", logger.AccountID(a.ID.Hex()), logger.Event("signup"))
	return a, nil
}

func (s *Service) ensureUnique(ctx context.Context, email, institutionalID string) error {
	if _, err := s.store.ByEmail(ctx, email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, ErrAccountNotFound) {
		return fmt.Errorf("account: check email: %w", err)
	}
	if _, err := s.store.ByInstitutionalID(ctx, institutionalID); err == nil {
		return ErrInstitutionalIDTaken
	} else if !errors.Is(err, ErrAccountNotFound) {
		return fmt.Errorf("account: check institutional id: %w", err)
	}
	return nil
}

func (s *Service) deliverActivation(ctx context.Context, a *Account) error {
	token, err := s.tokens.IssueActivationToken(a.ID.Hex())
	if err != nil {
		return fmt.Errorf("account: issue activation token: %w", err)
	}
	if err := s.sendActivation(ctx, a, token); err != nil {
		return fmt.Errorf("account: send activation email: %w", err)
	}
	return nil
}

// Activate redeems an activation token. Replaying a token for an active
// account returns ErrAlreadyActivated; an account an admin deactivated
// before activation returns ErrAccountNotActive.
func (s *Service) Activate(ctx context.Context, token string) (*Account, error) {
	claims, err := s.tokens.Verify(token, auth.KindActivation)
	if err != nil {
		return nil, err
	}

	a, err := s.store.Transition(ctx, claims.AccountID(), StatusPending, StatusActive, s.timestamp())
	switch {
	case errors.Is(err, ErrStatusConflict):
		current, lookupErr := s.store.ByID(ctx, claims.AccountID())
		if lookupErr == nil && current.Status == StatusInactive {
			return nil, ErrAccountNotActive
		}
		return nil, ErrAlreadyActivated
	case errors.Is(err, ErrAccountNotFound):
		// The pending record was removed after a failed signup.
		return nil, auth.ErrInvalidToken
	case err != nil:
		return nil, err
	}

	s.log.InfoContext(ctx, "account activated", logger.AccountID(a.ID.Hex()), logger.Event("activate"))
	return a, nil
}
