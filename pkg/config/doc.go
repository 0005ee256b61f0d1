// Package config parses process environment into typed configuration structs.
//
// Load reads optional dotenv files first, then fills the struct from `env`
// tags via caarlos0/env. Nothing is cached at package scope: the caller owns
// the returned value and passes it to the components that need it.
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
package config
