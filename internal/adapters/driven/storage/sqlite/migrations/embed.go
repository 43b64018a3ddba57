// Package migrations embeds the schema migrations for the omnisync
// state database.
package migrations

import "embed"

// FS holds the versioned .up.sql/.down.sql pairs embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
