// Package gate verifies presented bearer tokens before they reach the
// authentication core.
//
// Access verification is stateless: signature, expiry, issuer, audience.
// Refresh verification additionally enforces the registry consistency rule —
// the token's embedded session identifier must equal the marker currently
// stored for that user. A rotated, signed-out, or expired session makes an
// otherwise valid refresh token fail here, which is the entire server-side
// revocation mechanism: one pointer per user, no per-token deny list.
//
// # What this package must NOT do
//
//   - Mint tokens or write the registry — it is strictly a read-side check.
//   - Distinguish a tampered token from a revoked one in its error surface.
package gate
