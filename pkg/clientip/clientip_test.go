package clientip_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusnet/accounts/pkg/clientip"
	"github.com/campusnet/accounts/pkg/logger"
)

func TestResolver_IP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		trusted []string
		headers map[string]string
		remote  string
		want    string
	}{
		{
			name:   "remote addr with port",
			remote: "203.0.113.7:51234",
			want:   "203.0.113.7",
		},
		{
			name:   "remote addr without port",
			remote: "203.0.113.7",
			want:   "203.0.113.7",
		},
		{
			name:   "ipv6 remote addr",
			remote: "[2001:db8::1]:443",
			want:   "2001:db8::1",
		},
		{
			name:    "untrusted header ignored",
			headers: map[string]string{"X-Forwarded-For": "198.51.100.1"},
			remote:  "10.0.0.1:80",
			want:    "10.0.0.1",
		},
		{
			name:    "first valid forwarded entry",
			trusted: []string{"x-forwarded-for"},
			headers: map[string]string{"X-Forwarded-For": "garbage, 198.51.100.1, 10.0.0.2"},
			remote:  "10.0.0.1:80",
			want:    "198.51.100.1",
		},
		{
			name:    "priority order",
			trusted: []string{"CF-Connecting-IP", "X-Forwarded-For"},
			headers: map[string]string{"CF-Connecting-IP": "198.51.100.9", "X-Forwarded-For": "198.51.100.1"},
			remote:  "10.0.0.1:80",
			want:    "198.51.100.9",
		},
		{
			name:    "invalid header falls through",
			trusted: []string{"X-Real-IP"},
			headers: map[string]string{"X-Real-IP": "not-an-ip"},
			remote:  "10.0.0.1:80",
			want:    "10.0.0.1",
		},
		{
			name:   "nothing valid",
			remote: "bogus",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientip.NewResolver(tt.trusted...).IP(req))
		})
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	res := clientip.NewFromConfig(clientip.Config{TrustedHeaders: []string{"X-Real-IP"}})

	var seen string
	h := res.Middleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = clientip.FromRequest(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", "198.51.100.4")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "198.51.100.4", seen)

	bare := httptest.NewRequest(http.MethodGet, "/", nil)
	bare.RemoteAddr = "192.0.2.1:1234"
	assert.Equal(t, "192.0.2.1", clientip.FromRequest(bare))
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithFormat(logger.FormatJSON),
		logger.WithContextExtractors(clientip.LoggerExtractor()),
	)

	log.InfoContext(clientip.WithContext(context.Background(), "192.0.2.5"), "hello")
	require.Contains(t, buf.String(), `"client_ip":"192.0.2.5"`)

	buf.Reset()
	log.InfoContext(context.Background(), "hello")
	assert.NotContains(t, buf.String(), "client_ip")
}
