package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type options struct {
	files    []string
	required bool
	prefix   string
	environ  map[string]string
}

// Option customises Load.
type Option func(*options)

// WithDotEnv loads the given files instead of the default ".env". Missing
// files are an error when files are named explicitly.
func WithDotEnv(files ...string) Option {
	return func(o *options) {
		o.files = files
		o.required = len(files) > 0
	}
}

// WithPrefix requires every variable to carry the prefix, e.g. "ACCOUNTS_".
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithEnvironment replaces the process environment with the given map.
// Tests use it to avoid touching os env.
func WithEnvironment(environ map[string]string) Option {
	return func(o *options) { o.environ = environ }
}

// Load fills v from the environment. A missing default .env file is not an
// error; dotenv never overrides variables that are already set.
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.environ == nil {
		if err := godotenv.Load(o.files...); err != nil && o.required {
			return errors.Join(ErrDotEnv, err)
		}
	}

	parseOpts := env.Options{Prefix: o.prefix}
	if o.environ != nil {
		parseOpts.Environment = o.environ
	}

	if err := env.ParseWithOptions(v, parseOpts); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics on failure. Intended for main.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}
