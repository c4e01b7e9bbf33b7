package migrations

import "github.com/uptrace/bun/migrate"

// Migrations holds the schema for question packs and high scores.
var Migrations = migrate.NewMigrations()
