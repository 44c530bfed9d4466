package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/snapnest/snapnest/internal/db"
	"github.com/snapnest/snapnest/internal/db/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countUsers(t *testing.T, database *sqlx.DB) int {
	t.Helper()
	var n int
	require.NoError(t, database.Get(&n, `SELECT COUNT(*) FROM users`))
	return n
}

const insertUser = `INSERT INTO users (id, name, email, password_hash, profile_image_url, created_at, updated_at)
	VALUES ($1, 'Ann', $2, 'x', 'u', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	database := dbtest.New(t)

	err := db.WithTx(context.Background(), database, func(tx *sqlx.Tx) error {
		_, err := tx.Exec(insertUser, "u1", "ann@x.com")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 1, countUsers(t, database))
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	database := dbtest.New(t)
	boom := errors.New("boom")

	err := db.WithTx(context.Background(), database, func(tx *sqlx.Tx) error {
		_, err := tx.Exec(insertUser, "u1", "ann@x.com")
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, countUsers(t, database))
}

func TestWithTx_RollsBackAndRethrowsPanic(t *testing.T) {
	database := dbtest.New(t)

	assert.PanicsWithValue(t, "kaboom", func() {
		_ = db.WithTx(context.Background(), database, func(tx *sqlx.Tx) error {
			_, _ = tx.Exec(insertUser, "u1", "ann@x.com")
			panic("kaboom")
		})
	})
	assert.Equal(t, 0, countUsers(t, database))
}

func TestMigrateDown_DropsSchema(t *testing.T) {
	database := dbtest.New(t)

	require.NoError(t, db.MigrateDown(context.Background(), database.DB, "sqlite"))

	_, err := database.Exec(`SELECT COUNT(*) FROM users`)
	assert.Error(t, err)
}

func TestRunMigrations_UnknownDriver(t *testing.T) {
	database := dbtest.New(t)

	err := db.RunMigrations(context.Background(), database.DB, "mysql")
	assert.ErrorContains(t, err, "unsupported database driver")
}
