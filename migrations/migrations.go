// Package migrations embeds the goose SQL migrations so the server
// binary can apply them without a copy of the source tree on disk.
package migrations

import "embed"

// FS holds the embedded migration files. Pass it to goose.SetBaseFS
// and run commands against the "." directory.
//
//go:embed *.sql
var FS embed.FS
