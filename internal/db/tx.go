package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// WithTx runs fn inside a transaction. It commits when fn returns nil and
// rolls back on error or panic; panics are re-raised after the rollback.
//
//	err := db.WithTx(ctx, database, func(tx *sqlx.Tx) error {
//	    follows := repository.NewFollowRepository(tx)
//	    return follows.Create(ctx, followerID, followeeID)
//	})
func WithTx(ctx context.Context, database *sqlx.DB, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := database.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(tx)
	return err
}
