// Package password implements password verification against salted bcrypt
// hashes.
//
// The [Hasher] supports cost upgrades: if a stored hash was produced with a
// lower cost than currently configured, [Hasher.NeedsRehash] returns true so
// the caller can re-hash on the next successful sign-in.
//
// # Architecture boundaries
//
// This package owns hashing and comparison only. Password policy and the
// decision of when to verify belong to the Service.
//
// # What this package must NOT do
//
//   - Store or retrieve passwords — callers supply plaintext and hashes.
//   - Import any other adminauth package.
//   - Log plaintext passwords.
package password
