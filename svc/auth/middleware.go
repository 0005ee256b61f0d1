package auth

import (
	"net/http"

	"github.com/campusnet/accounts/handler"
	"github.com/campusnet/accounts/pkg/jwt"
)

// AccessCookie is the cookie carrying the access token.
const AccessCookie = "access_token"

// TokenVerifier is the part of TokenService the middleware needs.
type TokenVerifier interface {
	VerifyAny(token string, kinds ...Kind) (*Claims, error)
}

// ExtractToken reads the bearer header first, then the access cookie.
var ExtractToken = jwt.ChainExtractors(
	jwt.BearerTokenExtractor,
	jwt.CookieTokenExtractor(AccessCookie),
)

// Authenticate verifies the request token against the accepted kinds and
// attaches the Identity to the context. It never reads the account store.
// With no kinds given only access tokens are accepted.
func Authenticate(tokens TokenVerifier, kinds ...Kind) func(http.Handler) http.Handler {
	if len(kinds) == 0 {
		kinds = []Kind{KindAccess}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := ExtractToken(r)
			if err != nil {
				deny(w, r, handler.ErrUnauthorized.WithMessage("authentication required"))
				return
			}
			claims, err := tokens.VerifyAny(raw, kinds...)
			if err != nil {
				deny(w, r, handler.ErrUnauthorized.WithMessage("invalid or expired token"))
				return
			}

			ctx := WithIdentity(r.Context(), Identity{
				AccountID: claims.AccountID(),
				Role:      claims.Role,
				Kind:      claims.Kind,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole admits access-token identities whose session role is one of
// roles. It must run after Authenticate.
func RequireRole(roles ...Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok {
				deny(w, r, handler.ErrUnauthorized.WithMessage("authentication required"))
				return
			}
			if id.Kind != KindAccess || !RoleSet(roles).Has(id.Role) {
				deny(w, r, handler.ErrForbidden.WithMessage("insufficient role"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func RequireAdmin() func(http.Handler) http.Handler {
	return RequireRole(RoleAdmin)
}

func deny(w http.ResponseWriter, r *http.Request, err error) {
	_ = handler.JSONError(err).Render(w, r)
}
