package migration

import "embed"

// Scripts holds the SQL migrations compiled into the binary.
//
//go:embed scripts/goose/*.sql scripts/versioned/*.sql
var Scripts embed.FS

const (
	gooseDir     = "scripts/goose"
	versionedDir = "scripts/versioned"
)
