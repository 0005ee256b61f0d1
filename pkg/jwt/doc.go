// Package jwt signs and verifies HS256 JSON Web Tokens on top of
// github.com/golang-jwt/jwt/v5 and extracts raw tokens from HTTP requests.
//
// A Service is bound to one signing key. Components that need several token
// kinds with separate secrets hold one Service per kind.
//
//	svc, err := jwt.New([]byte(secret), jwt.WithIssuer("accounts"))
//	token, err := svc.Generate(claims)
//	err = svc.Parse(token, &claims)
//
// Parse rejects any algorithm other than HS256, requires an expiry claim and
// validates exp/nbf/iat with a small leeway.
package jwt
