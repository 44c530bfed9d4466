package repository

import (
	"context"
	"time"

	"github.com/snapnest/snapnest/internal/model"
)

// FollowRepository stores directed follow edges. A single row backs both the
// follower's "following" set and the followee's "followers" set.
type FollowRepository interface {
	Create(ctx context.Context, followerID, followeeID string) error
	Delete(ctx context.Context, followerID, followeeID string) (bool, error)
	FollowerIDs(ctx context.Context, userID string) ([]string, error)
	FollowingIDs(ctx context.Context, userID string) ([]string, error)
	Followers(ctx context.Context, userID string, limit, offset int) ([]model.UserSummary, error)
	Following(ctx context.Context, userID string, limit, offset int) ([]model.UserSummary, error)
	CountFollowers(ctx context.Context, userID string) (int, error)
	CountFollowing(ctx context.Context, userID string) (int, error)
	DeleteAllForUser(ctx context.Context, userID string) error
}

type followRepository struct {
	db Querier
}

func NewFollowRepository(db Querier) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(ctx context.Context, followerID, followeeID string) error {
	query := `INSERT INTO follows (follower_id, followee_id, created_at) VALUES ($1, $2, $3)`

	_, err := r.db.ExecContext(ctx, query, followerID, followeeID, time.Now().UTC())
	return err
}

func (r *followRepository) Delete(ctx context.Context, followerID, followeeID string) (bool, error) {
	query := `DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`

	result, err := r.db.ExecContext(ctx, query, followerID, followeeID)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	return rows > 0, err
}

func (r *followRepository) FollowerIDs(ctx context.Context, userID string) ([]string, error) {
	ids := []string{}
	query := `SELECT follower_id FROM follows WHERE followee_id = $1 ORDER BY created_at`

	err := r.db.SelectContext(ctx, &ids, query, userID)
	return ids, err
}

func (r *followRepository) FollowingIDs(ctx context.Context, userID string) ([]string, error) {
	ids := []string{}
	query := `SELECT followee_id FROM follows WHERE follower_id = $1 ORDER BY created_at`

	err := r.db.SelectContext(ctx, &ids, query, userID)
	return ids, err
}

func (r *followRepository) Followers(ctx context.Context, userID string, limit, offset int) ([]model.UserSummary, error) {
	users := []model.UserSummary{}
	query := `
		SELECT ` + summaryColumns + `
		FROM follows f
		JOIN users u ON u.id = f.follower_id
		WHERE f.followee_id = $1
		ORDER BY f.created_at
		LIMIT $2 OFFSET $3
	`

	err := r.db.SelectContext(ctx, &users, query, userID, limit, offset)
	return users, err
}

func (r *followRepository) Following(ctx context.Context, userID string, limit, offset int) ([]model.UserSummary, error) {
	users := []model.UserSummary{}
	query := `
		SELECT ` + summaryColumns + `
		FROM follows f
		JOIN users u ON u.id = f.followee_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at
		LIMIT $2 OFFSET $3
	`

	err := r.db.SelectContext(ctx, &users, query, userID, limit, offset)
	return users, err
}

func (r *followRepository) CountFollowers(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM follows WHERE followee_id = $1`, userID)
	return n, err
}

func (r *followRepository) CountFollowing(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM follows WHERE follower_id = $1`, userID)
	return n, err
}

// DeleteAllForUser removes every edge touching the user, in both directions.
func (r *followRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	query := `DELETE FROM follows WHERE follower_id = $1 OR followee_id = $1`

	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}
