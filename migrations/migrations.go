// Package migrations embeds the database schema so tooling can apply it
// without shipping loose SQL files alongside the binary.
package migrations

import _ "embed"

//go:embed schema.sql
var Schema string
