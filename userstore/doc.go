// Package userstore provides implementations of the adminauth.UserStore
// credential-store contract: a Postgres-backed store for production and an
// in-memory store for tests and examples.
//
// The storage engine is an implementation detail here; the core only ever
// sees the two-lookup interface. Both lookups load role and permission
// associations eagerly, matching the contract.
package userstore
