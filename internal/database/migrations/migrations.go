// Package migrations embeds the goose migration files so the migrate
// command ships inside the binary.
package migrations

import "embed"

// FS holds the SQL migration files
//
//go:embed *.sql
var FS embed.FS
