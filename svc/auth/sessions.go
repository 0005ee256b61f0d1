package auth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

// Session is the server-side record of an account's current refresh token.
// Only the SHA-256 of the token is stored.
type Session struct {
	AccountID string    `bson:"_id"`
	TokenHash string    `bson:"token_hash"`
	Role      Role      `bson:"role"`
	CreatedAt time.Time `bson:"created_at"`
	ExpiresAt time.Time `bson:"expires_at"`
}

// SessionStore persists at most one session per account.
type SessionStore interface {
	Upsert(ctx context.Context, s Session) error
	// Find returns ErrSessionNotFound when the account has no session.
	Find(ctx context.Context, accountID string) (Session, error)
	Delete(ctx context.Context, accountID string) error
}

// SessionRegistry makes refresh tokens revocable: a refresh token is only
// honored while it matches the registry entry for its account.
type SessionRegistry struct {
	store SessionStore
	ttl   time.Duration
	now   func() time.Time
}

func NewSessionRegistry(store SessionStore, ttl time.Duration) *SessionRegistry {
	return &SessionRegistry{store: store, ttl: ttl, now: time.Now}
}

// Put replaces any previous session of the account.
func (r *SessionRegistry) Put(ctx context.Context, accountID, refreshToken string, role Role) error {
	now := r.now()
	err := r.store.Upsert(ctx, Session{
		AccountID: accountID,
		TokenHash: HashToken(refreshToken),
		Role:      role,
		CreatedAt: now,
		ExpiresAt: now.Add(r.ttl),
	})
	if err != nil {
		return fmt.Errorf("auth: put session: %w", err)
	}
	return nil
}

func (r *SessionRegistry) Get(ctx context.Context, accountID string) (Session, error) {
	s, err := r.store.Find(ctx, accountID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return Session{}, ErrSessionNotFound
		}
		return Session{}, fmt.Errorf("auth: get session: %w", err)
	}
	return s, nil
}

// Clear removes the session. Clearing an absent session is not an error.
func (r *SessionRegistry) Clear(ctx context.Context, accountID string) error {
	if err := r.store.Delete(ctx, accountID); err != nil {
		return fmt.Errorf("auth: clear session: %w", err)
	}
	return nil
}

// Match returns the session when refreshToken is the account's current,
// unexpired refresh token and ErrInvalidSession otherwise.
func (r *SessionRegistry) Match(ctx context.Context, accountID, refreshToken string) (Session, error) {
	s, err := r.Get(ctx, accountID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return Session{}, ErrInvalidSession
		}
		return Session{}, err
	}
	if !r.now().Before(s.ExpiresAt) {
		return Session{}, ErrInvalidSession
	}
	if subtle.ConstantTimeCompare([]byte(s.TokenHash), []byte(HashToken(refreshToken))) != 1 {
		return Session{}, ErrInvalidSession
	}
	return s, nil
}

// HashToken returns the hex SHA-256 of token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
