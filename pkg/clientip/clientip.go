package clientip

import (
	"net"
	"net/http"
	"net/textproto"
	"strings"
)

// Config lists the proxy headers that may carry the client address, in
// priority order. Leave it empty when the service is reachable directly,
// otherwise any client can spoof its address.
type Config struct {
	TrustedHeaders []string `env:"TRUSTED_IP_HEADERS" envSeparator:","`
}

// Resolver extracts the originating client address from a request.
type Resolver struct {
	headers []string
}

// NewResolver trusts headers in the given order. X-Forwarded-For is read
// left to right and its first valid entry wins.
func NewResolver(headers ...string) *Resolver {
	r := &Resolver{}
	for _, h := range headers {
		if h = strings.TrimSpace(h); h != "" {
			r.headers = append(r.headers, textproto.CanonicalMIMEHeaderKey(h))
		}
	}
	return r
}

func NewFromConfig(cfg Config) *Resolver {
	return NewResolver(cfg.TrustedHeaders...)
}

// IP returns the normalized client address or "" when none is valid.
func (res *Resolver) IP(r *http.Request) string {
	for _, h := range res.headers {
		v := r.Header.Get(h)
		if v == "" {
			continue
		}
		for candidate := range strings.SplitSeq(v, ",") {
			if ip := parseIP(candidate); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

func parseIP(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	ip := net.ParseIP(s)
	if ip == nil {
		return ""
	}
	return ip.String()
}
