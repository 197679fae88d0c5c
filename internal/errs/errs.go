// Package errs defines the error shapes the API sends back to clients.
//
// Every failure, whether it comes from request validation, business rules or
// an unexpected panic, ends up serialized as one HTTPError so callers only
// have to understand a single JSON structure.
package errs
