package account

import (
	"context"
	"time"

	"github.com/campusnet/accounts/svc/auth"
)

// ListFilter narrows ListAccounts. Zero values match everything.
type ListFilter struct {
	Role   auth.Role
	Status Status
	Limit  int
	Offset int
}

const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

func (f ListFilter) limit() int {
	switch {
	case f.Limit <= 0:
		return DefaultListLimit
	case f.Limit > MaxListLimit:
		return MaxListLimit
	}
	return f.Limit
}

// Store persists accounts. Every mutation is a single-record operation.
// Lookups of unknown or malformed ids return ErrAccountNotFound.
type Store interface {
	// Create assigns the ID and inserts the account. Unique violations
	// return ErrEmailTaken or ErrInstitutionalIDTaken.
	Create(ctx context.Context, a *Account) error
	ByID(ctx context.Context, id string) (*Account, error)
	ByEmail(ctx context.Context, email string) (*Account, error)
	ByInstitutionalID(ctx context.Context, institutionalID string) (*Account, error)
	// List returns accounts ordered by creation time.
	List(ctx context.Context, f ListFilter) ([]*Account, error)
	// UpdateProfile replaces the profile and, when passwordHash is not
	// empty, the password hash in the same write.
	UpdateProfile(ctx context.Context, id string, p Profile, passwordHash string, at time.Time) (*Account, error)
	UpdatePassword(ctx context.Context, id, hash string, at time.Time) error
	UpdateRoles(ctx context.Context, id string, roles auth.RoleSet, at time.Time) (*Account, error)
	// Transition moves the account from status from to status to and
	// returns ErrStatusConflict if its status is no longer from. Leaving
	// Activation stamps ActivatedAt.
	Transition(ctx context.Context, id string, from, to Status, at time.Time) (*Account, error)
	Delete(ctx context.Context, id string) error
}
