// Package migrations embeds the versioned PostgreSQL schema migrations.
package migrations

import "embed"

// FS holds every *.sql migration file in this directory
//
//go:embed *.sql
var FS embed.FS
