// Package migrations embeds the versioned SQL schema for the SQLite store.
package migrations

import "embed"

// FS holds the .up.sql and .down.sql files, applied in version order.
//
//go:embed *.sql
var FS embed.FS
