package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusnet/accounts/svc/auth"
)

func protectedRouter(t *testing.T, tokens *auth.TokenService) http.Handler {
	t.Helper()

	echo := func(w http.ResponseWriter, r *http.Request) {
		id, ok := auth.IdentityFromContext(r.Context())
		require.True(t, ok)
		w.Header().Set("X-Account", id.AccountID)
		w.Header().Set("X-Kind", string(id.Kind))
		w.WriteHeader(http.StatusOK)
	}

	r := chi.NewRouter()
	r.With(auth.Authenticate(tokens)).Get("/me", echo)
	r.With(auth.Authenticate(tokens, auth.KindAccess, auth.KindReset)).Post("/reset", echo)
	r.With(auth.Authenticate(tokens), auth.RequireAdmin()).Get("/admin", echo)
	r.With(auth.Authenticate(tokens, auth.KindAccess, auth.KindReset), auth.RequireAdmin()).Get("/admin-or-reset", echo)
	return r
}

func do(h http.Handler, method, path string, setup func(*http.Request)) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, path, nil)
	if setup != nil {
		setup(r)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func bearer(tok string) func(*http.Request) {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+tok) }
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()
	tokens, _ := newTokens(t)
	h := protectedRouter(t, tokens)

	student, _, err := tokens.IssueAccessToken("stu-1", auth.RoleStudent)
	require.NoError(t, err)
	refresh, _, err := tokens.IssueRefreshToken("stu-1")
	require.NoError(t, err)
	reset, err := tokens.IssueResetToken("stu-1")
	require.NoError(t, err)

	t.Run("no token", func(t *testing.T) {
		rec := do(h, http.MethodGet, "/me", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), `"code":"unauthorized"`)
	})

	t.Run("bearer", func(t *testing.T) {
		rec := do(h, http.MethodGet, "/me", bearer(student))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "stu-1", rec.Header().Get("X-Account"))
	})

	t.Run("cookie", func(t *testing.T) {
		rec := do(h, http.MethodGet, "/me", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: auth.AccessCookie, Value: student})
		})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("refresh token is not an access token", func(t *testing.T) {
		rec := do(h, http.MethodGet, "/me", bearer(refresh))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("reset token only where accepted", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do(h, http.MethodGet, "/me", bearer(reset)).Code)

		rec := do(h, http.MethodPost, "/reset", bearer(reset))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "reset", rec.Header().Get("X-Kind"))
	})

	t.Run("failures are indistinguishable", func(t *testing.T) {
		a := do(h, http.MethodGet, "/me", bearer("garbage"))
		b := do(h, http.MethodGet, "/me", bearer(refresh))
		assert.Equal(t, a.Code, b.Code)
		assert.Equal(t, a.Body.String(), b.Body.String())
	})
}

func TestRequireRole(t *testing.T) {
	t.Parallel()
	tokens, _ := newTokens(t)
	h := protectedRouter(t, tokens)

	admin, _, err := tokens.IssueAccessToken("adm-1", auth.RoleAdmin)
	require.NoError(t, err)
	staff, _, err := tokens.IssueAccessToken("stf-1", auth.RoleStaff)
	require.NoError(t, err)
	reset, err := tokens.IssueResetToken("adm-1")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/admin", bearer(admin)).Code)

	rec := do(h, http.MethodGet, "/admin", bearer(staff))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"forbidden"`)

	assert.Equal(t, http.StatusForbidden, do(h, http.MethodGet, "/admin-or-reset", bearer(reset)).Code)
	assert.Equal(t, http.StatusUnauthorized, do(h, http.MethodGet, "/admin", nil).Code)
}

func TestRequireRole_WithoutAuthenticate(t *testing.T) {
	t.Parallel()

	h := auth.RequireAdmin()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rec := do(h, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
