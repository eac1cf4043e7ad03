// Package migrations embeds the goose SQL migrations for the credential
// store schema.
package migrations

import "embed"

// Migrations holds the SQL migration files applied by userstore.RunMigrations.
//
//go:embed *.sql
var Migrations embed.FS
