package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/campusnet/accounts/pkg/email"
	"github.com/campusnet/accounts/pkg/logger"
	"github.com/campusnet/accounts/svc/auth"
)

type Config struct {
	// ClientURL is the frontend origin used to build activation and reset links.
	ClientURL  string `env:"CLIENT_URL" envDefault:"http://localhost:3000"`
	BcryptCost int    `env:"BCRYPT_COST" envDefault:"10"`
}

// Service runs the account lifecycle.
type Service struct {
	store    Store
	tokens   *auth.TokenService
	sessions *auth.SessionRegistry
	mailer   email.Sender
	cfg      Config

	log          *slog.Logger
	now          func() time.Time
	supportEmail string
	dummyHash    []byte
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.log = l.With(logger.Component("account"))
	}
}

// WithClock sets the time source for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithSupportEmail sets the contact address printed in outgoing emails.
func WithSupportEmail(addr string) Option {
	return func(s *Service) {
		s.supportEmail = addr
	}
}

func NewService(store Store, tokens *auth.TokenService, sessions *auth.SessionRegistry, mailer email.Sender, cfg Config, opts ...Option) (*Service, error) {
	if store == nil || tokens == nil || sessions == nil || mailer == nil {
		return nil, errors.New("account: store, tokens, sessions and mailer are required")
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("account: bcrypt cost %d out of range", cfg.BcryptCost)
	}
	cfg.ClientURL = strings.TrimRight(cfg.ClientURL, "/")

	s := &Service{
		store:    store,
		tokens:   tokens,
		sessions: sessions,
		mailer:   mailer,
		cfg:      cfg,
		log:      logger.Discard(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Compared against on unknown emails so sign-in timing does not reveal
	// whether an address is registered.
	hash, err := bcrypt.GenerateFromPassword([]byte("campus-accounts-dummy"), cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("account: dummy hash: %w", err)
	}
	s.dummyHash = hash

	return s, nil
}

func (s *Service) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("account: hash password: %w", err)
	}
	return string(hash), nil
}

func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// GetAccount returns the account with the given id.
func (s *Service) GetAccount(ctx context.Context, id string) (*Account, error) {
	return s.store.ByID(ctx, id)
}

func (s *Service) ListAccounts(ctx context.Context, f ListFilter) ([]*Account, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if f.Role != 0 && !f.Role.Valid() {
		return nil, auth.ErrInvalidRole
	}
	return s.store.List(ctx, f)
}
