// Package migrations holds the schema migration scripts for the local
// SQLite store.
package migrations

import "embed"

// FS exposes the .sql scripts, applied in lexical order.
//
//go:embed *.sql
var FS embed.FS
