// Package migrations holds the embedded SQL files that define the cluedeck
// storage schema.
package migrations

import "embed"

// Files is the compiled-in migration source consumed by golang-migrate.
//
//go:embed *.sql
var Files embed.FS
