package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/snapnest/snapnest/internal/model"
)

var ErrTokenNotFound = errors.New("token not found")

type TokenRepository interface {
	Create(ctx context.Context, token *model.Token) error
	ConsumeToken(ctx context.Context, token, tokenType string) (*model.Token, error)
	LatestUnused(ctx context.Context, userID, tokenType string) (*model.Token, error)
	MarkUsed(ctx context.Context, id string) error
	DeleteByUserAndType(ctx context.Context, userID, tokenType string) error
	DeleteByUser(ctx context.Context, userID string) error
}

type tokenRepository struct {
	db Querier
}

func NewTokenRepository(db Querier) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(ctx context.Context, token *model.Token) error {
	if token.ID == "" {
		token.ID = uuid.New().String()
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO tokens (id, user_id, type, token, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		token.ID,
		token.UserID,
		token.Type,
		token.Token,
		token.ExpiresAt.UTC(),
		token.CreatedAt,
	)
	return err
}

// ConsumeToken atomically marks an unused, unexpired token as used and returns it.
// Of two concurrent requests only the first succeeds; the second gets ErrTokenNotFound.
func (r *tokenRepository) ConsumeToken(ctx context.Context, token, tokenType string) (*model.Token, error) {
	var t model.Token
	now := time.Now().UTC()

	query := `
		UPDATE tokens
		SET used_at = $1
		WHERE token = $2
		AND type = $3
		AND used_at IS NULL
		AND expires_at > $4
		RETURNING *
	`

	err := r.db.GetContext(ctx, &t, query, now, token, tokenType, now)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// LatestUnused returns the most recent unused token of the type, expired or not.
func (r *tokenRepository) LatestUnused(ctx context.Context, userID, tokenType string) (*model.Token, error) {
	var t model.Token
	query := `
		SELECT * FROM tokens
		WHERE user_id = $1 AND type = $2 AND used_at IS NULL
		ORDER BY created_at DESC
		LIMIT 1
	`

	err := r.db.GetContext(ctx, &t, query, userID, tokenType)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// MarkUsed consumes a token by id; a token already used yields ErrTokenNotFound.
func (r *tokenRepository) MarkUsed(ctx context.Context, id string) error {
	query := `UPDATE tokens SET used_at = $1 WHERE id = $2 AND used_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return expectOne(result, ErrTokenNotFound)
}

func (r *tokenRepository) DeleteByUserAndType(ctx context.Context, userID, tokenType string) error {
	query := `DELETE FROM tokens WHERE user_id = $1 AND type = $2 AND used_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, userID, tokenType)
	return err
}

func (r *tokenRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tokens WHERE user_id = $1`, userID)
	return err
}
