package account

import (
	"context"
	"errors"
	"log/slog"

	"github.com/campusnet/accounts/pkg/logger"
	"github.com/campusnet/accounts/svc/auth"
)

// UpdateRoles replaces the roles of an account. A session opened under a
// role the account no longer holds is cleared.
func (s *Service) UpdateRoles(ctx context.Context, accountID string, roles ...auth.Role) (*Account, error) {
	set, err := auth.NewRoleSet(roles...)
	if err != nil {
		return nil, err
	}
	if len(set) == 0 {
		return nil, auth.ErrInvalidRole
	}

	a, err := s.store.UpdateRoles(ctx, accountID, set, s.timestamp())
	if err != nil {
		return nil, err
	}

	sess, err := s.sessions.Get(ctx, accountID)
	switch {
	case errors.Is(err, auth.ErrSessionNotFound):
	case err != nil:
		return nil, err
	case !set.Has(sess.Role):
		if err := s.sessions.Clear(ctx, accountID); err != nil {
			return nil, err
		}
	}

	s.log.InfoContext(ctx, "roles updated",
		logger.AccountID(accountID),
		slog.Any("roles", set),
		logger.Event("update_roles"),
	)
	return a, nil
}

// UpdateStatus sets an account active or inactive. Deactivation clears
// the session. Returning an account to pending is rejected.
func (s *Service) UpdateStatus(ctx context.Context, accountID string, status Status) (*Account, error) {
	if status != StatusActive && status != StatusInactive {
		return nil, ErrInvalidStatus
	}

	a, err := s.store.ByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if a.Status != status {
		a, err = s.store.Transition(ctx, accountID, a.Status, status, s.timestamp())
		if err != nil {
			return nil, err
		}
	}

	if status == StatusInactive {
		if err := s.sessions.Clear(ctx, accountID); err != nil {
			return nil, err
		}
	}

	s.log.InfoContext(ctx, "status updated",
		logger.AccountID(accountID),
		slog.String("status", string(status)),
		logger.Event("update_status"),
	)
	return a, nil
}
