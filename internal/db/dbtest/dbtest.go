// Package dbtest opens throwaway migrated databases for tests.
package dbtest

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/snapnest/snapnest/internal/db"
	"github.com/stretchr/testify/require"
)

// New returns an isolated in-memory SQLite database with all migrations applied.
func New(t testing.TB) *sqlx.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	database, err := db.Init("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, db.RunMigrations(context.Background(), database.DB, "sqlite"))
	return database
}
