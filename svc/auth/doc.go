// Package auth issues and verifies the service's tokens, keeps the
// server-side session registry that makes refresh tokens revocable, and
// provides the middleware that gates protected routes.
//
// Token kinds are signed with separate secrets and carry a kind claim, so a
// token of one kind never verifies as another. Access tokens embed the
// account id and the role selected for the session; RequireRole trusts that
// role until the token expires.
//
//	r.With(auth.Authenticate(tokens, auth.KindAccess), auth.RequireAdmin()).
//		Get("/all_infor", listAccounts)
package auth
