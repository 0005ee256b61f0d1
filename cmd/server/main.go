// Command server runs the campus account service.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	accounthttp "github.com/campusnet/accounts/modules/account"
	"github.com/campusnet/accounts/pkg/clientip"
	"github.com/campusnet/accounts/pkg/config"
	"github.com/campusnet/accounts/pkg/cookie"
	"github.com/campusnet/accounts/pkg/email"
	"github.com/campusnet/accounts/pkg/httpserver"
	"github.com/campusnet/accounts/pkg/logger"
	"github.com/campusnet/accounts/pkg/mongo"
	"github.com/campusnet/accounts/pkg/ratelimiter"
	"github.com/campusnet/accounts/pkg/redis"
	"github.com/campusnet/accounts/pkg/requestid"
	"github.com/campusnet/accounts/svc/account"
	"github.com/campusnet/accounts/svc/auth"
)

const serviceName = "campus-accounts"

type Config struct {
	AppEnv            string        `env:"APP_ENV" envDefault:"development"`
	CORSAllowedOrigin []string      `env:"CORS_ALLOWED_ORIGIN" envDefault:"http://localhost:3000" envSeparator:","`
	HealthTimeout     time.Duration `env:"HEALTH_TIMEOUT" envDefault:"2s"`

	HTTP      httpserver.Config
	Mongo     mongo.Config
	Redis     redis.Config
	RateLimit ratelimiter.Config
	ClientIP  clientip.Config
	Tokens    auth.TokenConfig
	Cookie    cookie.Config
	Mail      email.Config
	Account   account.Config
	API       accounthttp.Config
}

func main() {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(
		logger.WithEnvironment(cfg.AppEnv, serviceName),
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("service stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, log *slog.Logger) error {
	client, db, err := mongo.NewWithDatabase(ctx, cfg.Mongo)
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Error("mongo disconnect failed", logger.Error(err))
		}
	}()

	checks := []httpserver.Check{{Name: "mongo", Check: mongo.Healthcheck(client)}}

	var limitStore ratelimiter.Store
	if cfg.Redis.Enabled() {
		rdb, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer func() { _ = rdb.Close() }()
		limitStore = ratelimiter.NewRedisStore(rdb)
		checks = append(checks, httpserver.Check{Name: "redis", Check: redis.Healthcheck(rdb)})
	} else {
		mem := ratelimiter.NewMemoryStore()
		defer mem.Close()
		limitStore = mem
		log.Info("REDIS_URL not set, rate limits are per instance")
	}
	limiter, err := ratelimiter.NewBucket(limitStore, cfg.RateLimit)
	if err != nil {
		return err
	}

	accounts := account.NewMongoStore(db)
	sessionStore := auth.NewMongoSessions(db)
	if err := errors.Join(accounts.EnsureIndexes(ctx), sessionStore.EnsureIndexes(ctx)); err != nil {
		return err
	}

	tokens, err := auth.NewTokenService(cfg.Tokens)
	if err != nil {
		return err
	}
	sessions := auth.NewSessionRegistry(sessionStore, tokens.TTL(auth.KindRefresh))

	if err := cfg.Mail.Validate(); err != nil {
		return err
	}
	mailer, err := email.NewSender(cfg.Mail)
	if err != nil {
		return err
	}
	if dev, ok := mailer.(*email.DevSender); ok {
		log.Warn("postmark token not set, writing emails to disk", slog.String("dir", dev.Dir()))
	}

	svc, err := account.NewService(accounts, tokens, sessions, mailer, cfg.Account,
		account.WithLogger(log),
		account.WithSupportEmail(cfg.Mail.SupportEmail),
	)
	if err != nil {
		return err
	}

	cookies, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		return err
	}

	prefix := "/" + strings.Trim(cfg.API.Prefix, "/")
	ips := clientip.NewFromConfig(cfg.ClientIP)
	handlers := accounthttp.NewHandlers(svc, tokens, cookies, accounthttp.Config{Prefix: prefix},
		accounthttp.WithLogger(log),
		accounthttp.WithRateLimit(ratelimiter.Middleware(limiter,
			ratelimiter.Composite(ratelimiter.ByIP(clientip.FromRequest), ratelimiter.ByPath),
			ratelimiter.WithLogger(log),
		)),
	)

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(ips.Middleware)
	r.Use(httpserver.RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigin,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", requestid.Header},
		ExposedHeaders:   []string{requestid.Header},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, cfg.HealthTimeout, checks...))
	r.Mount("/", accounthttp.Router(accounthttp.RouterOptions{
		Prefix:   prefix,
		Accounts: handlers,
	}))

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, r)
}
