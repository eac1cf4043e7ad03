// Package adminauth implements the administrative authentication core: credential
// verification, JWT access/refresh token issuance, refresh rotation, and server-side
// revocation through a Redis session registry.
//
// The package is designed for concurrent server workloads: [Service] methods are safe
// to call from multiple goroutines after initialization through [Builder.Build].
//
// # Session model
//
// Every successful sign-in or refresh mints a fresh token pair and overwrites the
// user's single session marker in the registry. A refresh token is only usable while
// its embedded session identifier matches the stored marker, so at most one refresh
// token per user is live at any time. Sign-out deletes the marker, which orphans any
// outstanding refresh token immediately.
//
// # Architecture boundaries
//
// adminauth is the public surface. It exposes [Service], [Builder], [Config], the
// error taxonomy, and value types ([User], [Profile], [TokenPair]). Token signing
// lives in the token package, marker persistence in the registry package, credential
// lookups behind the [UserStore] interface. HTTP routing, request DTOs, and message
// localization are callers' concerns.
//
// # What this package must NOT do
//
//   - Persist users or mutate credential data — [UserStore] is read-only here.
//   - Retry failed registry or store calls; transient failures surface to the caller.
//   - Resolve locales or render user-facing strings (see the i18n package).
package adminauth
