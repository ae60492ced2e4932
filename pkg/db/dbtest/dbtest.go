// Package dbtest opens a migrated in-memory sqlite database for tests.
package dbtest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/quatton/metashare/pkg/db"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/extra/bundebug"
	_ "modernc.org/sqlite"
)

// New returns a fresh database with every migration applied. It is closed
// when the test finishes.
func New(t testing.TB) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open("sqlite", "file::memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	// every connection to :memory: is its own database
	sqldb.SetMaxOpenConns(1)

	bdb := bun.NewDB(sqldb, sqlitedialect.New())
	bdb.AddQueryHook(bundebug.NewQueryHook(
		bundebug.WithEnabled(false),
		bundebug.FromEnv("BUNDEBUG"),
	))
	t.Cleanup(func() { _ = bdb.Close() })

	_, err = db.Migrate(context.Background(), bdb)
	require.NoError(t, err)

	return bdb
}
