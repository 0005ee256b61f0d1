// Package cookie writes and clears the HTTP-only cookies that carry the
// service's tokens.
//
// A Manager holds the site-wide attributes (domain, secure, same-site) and
// applies per-cookie overrides such as path and max-age. Token cookies are
// already signed JWTs, so values are written as-is.
//
//	m := cookie.NewFromConfig(cfg)
//	m.Set(w, "access_token", token, cookie.WithMaxAge(900))
//	m.Delete(w, "refresh_token", cookie.WithPath("/api/user"))
package cookie
