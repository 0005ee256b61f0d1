package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/campusnet/accounts/pkg/logger"
	"github.com/campusnet/accounts/pkg/sanitizer"
	"github.com/campusnet/accounts/pkg/validator"
)

// ForgotPassword mails a reset link to an active account. Unknown or
// inactive addresses get the same nil result.
func (s *Service) ForgotPassword(ctx context.Context, emailAddr string) error {
	emailAddr = sanitizer.NormalizeEmail(emailAddr)
	if err := validator.Apply(
		validator.Required("email", emailAddr),
		validator.ValidEmail("email", emailAddr),
	); err != nil {
		return err
	}

	a, err := s.store.ByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			s.log.DebugContext(ctx, "password reset for unknown email", logger.Event("forgot_password"))
			return nil
		}
		return err
	}
	if a.Status != StatusActive {
		s.log.DebugContext(ctx, "password reset for inactive account",
			logger.AccountID(a.ID.Hex()), logger.Event("forgot_password"))
		return nil
	}

	token, err := s.tokens.IssueResetToken(a.ID.Hex())
	if err != nil {
		return fmt.Errorf("account: issue reset token: %w", err)
	}
	if err := s.sendReset(ctx, a, token); err != nil {
		return fmt.Errorf("account: send reset email: %w", err)
	}

	s.log.InfoContext(ctx, "password reset requested", logger.AccountID(a.ID.Hex()), logger.Event("forgot_password"))
	return nil
}

// ResetPassword sets a new password for the authenticated account and
// clears its session so every device has to sign in again.
func (s *Service) ResetPassword(ctx context.Context, accountID, password, confirm string) error {
	if err := s.checkNewPassword(password, confirm); err != nil {
		return err
	}
	if err := s.setPassword(ctx, accountID, password); err != nil {
		return err
	}
	if err := s.sessions.Clear(ctx, accountID); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "password reset", logger.AccountID(accountID), logger.Event("reset_password"))
	return nil
}

func (s *Service) checkNewPassword(password, confirm string) error {
	if err := validator.Apply(passwordRules(password)...); err != nil {
		return err
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	return nil
}

func (s *Service) setPassword(ctx context.Context, accountID, password string) error {
	hash, err := s.hashPassword(password)
	if err != nil {
		return err
	}
	return s.store.UpdatePassword(ctx, accountID, hash, s.timestamp())
}
