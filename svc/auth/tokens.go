package auth

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/campusnet/accounts/pkg/jwt"
)

// Kind names the purpose of a token.
type Kind string

const (
	KindAccess     Kind = "access"
	KindRefresh    Kind = "refresh"
	KindActivation Kind = "activation"
	KindReset      Kind = "reset"
	KindSelection  Kind = "selection"
)

var allKinds = []Kind{KindAccess, KindRefresh, KindActivation, KindReset, KindSelection}

// Claims is the payload of every token. Subject holds the account id.
type Claims struct {
	jwt.RegisteredClaims
	Kind Kind `json:"kind"`
	Role Role `json:"role,omitempty"`
}

func (c *Claims) AccountID() string {
	return c.Subject
}

// TokenConfig holds one secret and lifetime per kind.
type TokenConfig struct {
	Issuer           string        `env:"AUTH_ISSUER" envDefault:"campus-accounts"`
	AccessSecret     string        `env:"AUTH_ACCESS_SECRET,required"`
	RefreshSecret    string        `env:"AUTH_REFRESH_SECRET,required"`
	ActivationSecret string        `env:"AUTH_ACTIVATION_SECRET,required"`
	ResetSecret      string        `env:"AUTH_RESET_SECRET,required"`
	SelectionSecret  string        `env:"AUTH_SELECTION_SECRET,required"`
	AccessTTL        time.Duration `env:"AUTH_ACCESS_TTL" envDefault:"15m"`
	RefreshTTL       time.Duration `env:"AUTH_REFRESH_TTL" envDefault:"168h"`
	ActivationTTL    time.Duration `env:"AUTH_ACTIVATION_TTL" envDefault:"24h"`
	ResetTTL         time.Duration `env:"AUTH_RESET_TTL" envDefault:"15m"`
	SelectionTTL     time.Duration `env:"AUTH_SELECTION_TTL" envDefault:"5m"`
}

func (c TokenConfig) secret(k Kind) string {
	switch k {
	case KindAccess:
		return c.AccessSecret
	case KindRefresh:
		return c.RefreshSecret
	case KindActivation:
		return c.ActivationSecret
	case KindReset:
		return c.ResetSecret
	case KindSelection:
		return c.SelectionSecret
	}
	return ""
}

func (c TokenConfig) ttl(k Kind) time.Duration {
	switch k {
	case KindAccess:
		return c.AccessTTL
	case KindRefresh:
		return c.RefreshTTL
	case KindActivation:
		return c.ActivationTTL
	case KindReset:
		return c.ResetTTL
	case KindSelection:
		return c.SelectionTTL
	}
	return 0
}

// TokenService issues and verifies every token kind.
type TokenService struct {
	issuer  string
	signers map[Kind]*jwt.Service
	ttls    map[Kind]time.Duration
	now     func() time.Time
}

type TokenOption func(*TokenService)

// WithClock replaces time.Now for issuing and verifying.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.now = now }
}

// NewTokenService fails on an empty secret or a non-positive lifetime.
func NewTokenService(cfg TokenConfig, opts ...TokenOption) (*TokenService, error) {
	s := &TokenService{
		issuer:  cfg.Issuer,
		signers: make(map[Kind]*jwt.Service, len(allKinds)),
		ttls:    make(map[Kind]time.Duration, len(allKinds)),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, k := range allKinds {
		if cfg.ttl(k) <= 0 {
			return nil, fmt.Errorf("%w: %s lifetime must be positive", ErrTokenConfig, k)
		}
		signer, err := jwt.NewFromString(cfg.secret(k), jwt.WithIssuer(cfg.Issuer), jwt.WithTimeFunc(s.now))
		if err != nil {
			return nil, fmt.Errorf("%w: %s secret: %v", ErrTokenConfig, k, err)
		}
		s.signers[k] = signer
		s.ttls[k] = cfg.ttl(k)
	}
	return s, nil
}

// TTL returns the lifetime of tokens of kind k.
func (s *TokenService) TTL(k Kind) time.Duration {
	return s.ttls[k]
}

func (s *TokenService) IssueAccessToken(accountID string, role Role) (string, time.Time, error) {
	if !role.Valid() {
		return "", time.Time{}, fmt.Errorf("%w: %d", ErrInvalidRole, int(role))
	}
	return s.issue(KindAccess, accountID, role)
}

func (s *TokenService) IssueRefreshToken(accountID string) (string, time.Time, error) {
	return s.issue(KindRefresh, accountID, 0)
}

func (s *TokenService) IssueActivationToken(accountID string) (string, error) {
	token, _, err := s.issue(KindActivation, accountID, 0)
	return token, err
}

func (s *TokenService) IssueResetToken(accountID string) (string, error) {
	token, _, err := s.issue(KindReset, accountID, 0)
	return token, err
}

// IssueSelectionToken authorizes one role selection for a multi-role account.
func (s *TokenService) IssueSelectionToken(accountID string) (string, error) {
	token, _, err := s.issue(KindSelection, accountID, 0)
	return token, err
}

func (s *TokenService) issue(k Kind, accountID string, role Role) (string, time.Time, error) {
	if accountID == "" {
		return "", time.Time{}, fmt.Errorf("auth: issue %s token: empty account id", k)
	}

	now := s.now()
	expiresAt := now.Add(s.ttls[k])
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Kind: k,
		Role: role,
	}

	token, err := s.signers[k].Generate(claims)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("auth: issue %s token: %w", k, err)
	}
	return token, expiresAt.Truncate(time.Second), nil
}

// Verify checks signature, expiry and kind. Every failure is ErrInvalidToken.
func (s *TokenService) Verify(token string, k Kind) (*Claims, error) {
	signer, ok := s.signers[k]
	if !ok || token == "" {
		return nil, ErrInvalidToken
	}

	var claims Claims
	if err := signer.Parse(token, &claims); err != nil {
		return nil, ErrInvalidToken
	}
	if claims.Kind != k || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	if k == KindAccess && !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

// VerifyAny accepts a token of any of the given kinds.
func (s *TokenService) VerifyAny(token string, kinds ...Kind) (*Claims, error) {
	for _, k := range kinds {
		if claims, err := s.Verify(token, k); err == nil {
			return claims, nil
		}
	}
	return nil, ErrInvalidToken
}
