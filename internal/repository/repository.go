package repository

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"golang.org/x/text/cases"
)

// Querier is satisfied by both *sqlx.DB and *sqlx.Tx, so every repository
// can be bound to a transaction.
type Querier interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

// isUniqueViolation works for both SQLite and PostgreSQL.
func isUniqueViolation(err error) bool {
	errStr := err.Error()
	return strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "duplicate key value")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// fold applies Unicode case folding. Stored search text and search
// patterns must both go through it; SQL LOWER only folds ASCII on SQLite.
func fold(s string) string {
	return cases.Fold().String(s)
}

// containsPattern builds a case-folded LIKE pattern matching s anywhere.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(fold(s)) + "%"
}

const authorColumns = `u.id AS "author.id", u.name AS "author.name",
	u.profile_image_url AS "author.profile_image_url",
	u.profile_image_storage_id AS "author.profile_image_storage_id"`

const summaryColumns = `u.id, u.name, u.profile_image_url, u.profile_image_storage_id`
