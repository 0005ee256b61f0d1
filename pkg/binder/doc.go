// Package binder populates request structs from an *http.Request.
//
// Each binder has the signature func(*http.Request, any) error so several
// can be chained by the handler package: JSON decodes the body strictly,
// Path reads `path` tagged fields through a router-specific extractor and
// Query reads `query` tagged fields from the URL.
package binder
