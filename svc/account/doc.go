// Package account implements the account lifecycle: sign-up with email
// activation, sign-in with role selection, token refresh, password reset,
// profile updates and role/status administration.
//
// Accounts live in a Store (MongoStore in production, MemoryStore in tests).
// Service orchestrates the store, the auth token service, the session
// registry and the mail sender; it never touches HTTP.
package account
