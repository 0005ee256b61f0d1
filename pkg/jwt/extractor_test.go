package jwt_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusnet/accounts/pkg/jwt"
)

func TestBearerTokenExtractor(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc.def.ghi")
	token, err := jwt.BearerTokenExtractor(req)
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	for _, header := range []string{"", "Bearer", "Basic abc", "Bearer "} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		_, err := jwt.BearerTokenExtractor(req)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken, "header %q", header)
	}
}

func TestChainExtractors(t *testing.T) {
	t.Parallel()
	extract := jwt.ChainExtractors(jwt.CookieTokenExtractor("access_token"), jwt.BearerTokenExtractor)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer from-header")
	token, err := extract(req)
	require.NoError(t, err)
	assert.Equal(t, "from-header", token)

	req.AddCookie(&http.Cookie{Name: "access_token", Value: "from-cookie"})
	token, err = extract(req)
	require.NoError(t, err)
	assert.Equal(t, "from-cookie", token)

	_, err = extract(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}
