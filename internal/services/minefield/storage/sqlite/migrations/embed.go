package migrations

import "embed"

// FS contains embedded SQLite migrations for score storage.
//
//go:embed *.sql
var FS embed.FS
