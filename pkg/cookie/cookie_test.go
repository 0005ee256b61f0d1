package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusnet/accounts/pkg/cookie"
)

func findCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func TestManager_Set(t *testing.T) {
	t.Parallel()
	m := cookie.New(cookie.WithDomain("example.edu"), cookie.WithSecure(true))

	rec := httptest.NewRecorder()
	m.Set(rec, "access_token", "tok", cookie.WithTTL(15*time.Minute))

	c := findCookie(t, rec, "access_token")
	assert.Equal(t, "tok", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, "example.edu", c.Domain)
	assert.Equal(t, 900, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
}

func TestManager_Get(t *testing.T) {
	t.Parallel()
	m := cookie.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := m.Get(req, "refresh_token")
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)

	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "r1"})
	v, err := m.Get(req, "refresh_token")
	require.NoError(t, err)
	assert.Equal(t, "r1", v)
}

func TestManager_Delete(t *testing.T) {
	t.Parallel()
	m := cookie.New()

	rec := httptest.NewRecorder()
	m.Delete(rec, "refresh_token", cookie.WithPath("/api/user"))

	c := findCookie(t, rec, "refresh_token")
	assert.Empty(t, c.Value)
	assert.Equal(t, "/api/user", c.Path)
	assert.Less(t, c.MaxAge, 0)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	m, err := cookie.NewFromConfig(cookie.Config{SameSite: "none"})
	require.NoError(t, err)
	assert.True(t, m.Defaults().Secure)
	assert.Equal(t, http.SameSiteNoneMode, m.Defaults().SameSite)

	m, err = cookie.NewFromConfig(cookie.Config{SameSite: "Strict", Domain: "campus.edu"})
	require.NoError(t, err)
	assert.False(t, m.Defaults().Secure)
	assert.Equal(t, "campus.edu", m.Defaults().Domain)

	_, err = cookie.NewFromConfig(cookie.Config{SameSite: "sideways"})
	assert.ErrorIs(t, err, cookie.ErrInvalidSameSite)
}
