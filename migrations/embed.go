// Package migrations embeds the SQL migration files so the goose programmatic
// API can run them from server bootstrap and from tests without relying on a
// filesystem path at runtime.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
// Pass it to goose.NewProvider together with goose.DialectPostgres.
//
//go:embed *.sql
var FS embed.FS
