package cookie

import (
	"fmt"
	"net/http"
	"strings"
)

// Config holds the site-wide cookie attributes.
type Config struct {
	Domain   string `env:"COOKIE_DOMAIN" envDefault:""`
	Secure   bool   `env:"COOKIE_SECURE" envDefault:"false"`
	SameSite string `env:"COOKIE_SAME_SITE" envDefault:"lax"` // lax, strict or none
}

// ParseSameSite maps lax/strict/none (case-insensitive) to http.SameSite.
func ParseSameSite(v string) (http.SameSite, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "lax":
		return http.SameSiteLaxMode, nil
	case "strict":
		return http.SameSiteStrictMode, nil
	case "none":
		return http.SameSiteNoneMode, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidSameSite, v)
	}
}

// NewFromConfig creates a Manager from cfg. SameSite=None forces Secure,
// which browsers require for such cookies.
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	sameSite, err := ParseSameSite(cfg.SameSite)
	if err != nil {
		return nil, err
	}

	configOpts := make([]Option, 0, 3+len(opts))
	configOpts = append(configOpts, WithSameSite(sameSite))
	if cfg.Domain != "" {
		configOpts = append(configOpts, WithDomain(cfg.Domain))
	}
	if cfg.Secure || sameSite == http.SameSiteNoneMode {
		configOpts = append(configOpts, WithSecure(true))
	}
	configOpts = append(configOpts, opts...)

	return New(configOpts...), nil
}
