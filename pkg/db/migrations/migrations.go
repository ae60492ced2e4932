// Package migrations holds the schema history. Migrations are written with
// bun's query builders so they run on postgres and on the sqlite database
// used in tests.
package migrations

import "github.com/uptrace/bun/migrate"

var Migrations = migrate.NewMigrations()
