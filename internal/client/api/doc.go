// Package api contains the request gateway: the single entry point for
// every remote call made by the client core.
//
// # Overview
//
// The package provides:
//  1. Gateway: issues JSON and multipart requests against the backend,
//     attaches the bearer token supplied by a Credentials source, decodes
//     the shared {success, message, data, errors} envelope, and applies
//     the bounded refresh-then-retry policy: on a 401 the credentials are
//     refreshed once (the source coalesces concurrent refreshes) and the
//     original request is re-issued exactly once.
//  2. Sentinel errors callers match with errors.Is: ErrUnavailable,
//     ErrUnauthorized, ErrNoSession, ErrNotFound, ErrValidation.
//  3. StatusError: a non-success status carrying the server message
//     verbatim for the UI.
//
// Network-level failures are wrapped in ErrUnavailable and never
// swallowed. Non-2xx statuses become StatusError values; callers
// distinguish error kinds by sentinel, not by subclassing.
package api
