// Package token signs and verifies the compact JWT bearer tokens issued by the
// authentication core.
//
// A [Codec] is bound to exactly one signing configuration (secret, audience,
// issuer, lifetime). The core holds two codecs — one per token variant — so the
// access and refresh signing paths share no key material.
//
// # Architecture boundaries
//
// This package owns claims layout and HS256 signing/verification only. It does
// not know about users, the session registry, or revocation; whether a verified
// refresh token is still current is the gate's decision.
//
// # What this package must NOT do
//
//   - Accept per-call secrets — key material is fixed at construction.
//   - Import any other adminauth package.
package token
