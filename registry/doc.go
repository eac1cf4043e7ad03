// Package registry provides the Redis-backed session marker store.
//
// The registry holds at most one marker per user: the identifier of the
// currently valid refresh session, stored under refresh_token_<user-id> with a
// TTL equal to the refresh token lifetime. Writing a new marker is what
// invalidates every previously issued refresh token for that user.
//
// # Architecture boundaries
//
// This package owns marker persistence only. It does not parse tokens,
// compare identifiers, or decide validity — the gate does that.
//
// # What this package must NOT do
//
//   - Import adminauth, token, or gate (no upward imports).
//   - Retry failed Redis calls; failures are wrapped and surfaced.
package registry
