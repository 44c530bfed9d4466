package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/snapnest/snapnest/internal/model"
)

var ErrCommentNotFound = errors.New("comment not found")

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	ByID(ctx context.Context, id string) (*model.Comment, error)
	ByPin(ctx context.Context, pinID string) ([]model.CommentWithAuthor, error)
	Delete(ctx context.Context, id string) error
	DeleteByPin(ctx context.Context, pinID string) error
	DeleteByUser(ctx context.Context, userID string) error
}

type commentRepository struct {
	db Querier
}

func NewCommentRepository(db Querier) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO comments (id, pin_id, user_id, text, created_at) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query,
		comment.ID,
		comment.PinID,
		comment.UserID,
		comment.Text,
		comment.CreatedAt,
	)
	return err
}

func (r *commentRepository) ByID(ctx context.Context, id string) (*model.Comment, error) {
	comment := &model.Comment{}

	err := r.db.GetContext(ctx, comment, `SELECT * FROM comments WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCommentNotFound
	}
	if err != nil {
		return nil, err
	}

	return comment, nil
}

// ByPin returns the pin's comments oldest first, each with its author.
func (r *commentRepository) ByPin(ctx context.Context, pinID string) ([]model.CommentWithAuthor, error) {
	comments := []model.CommentWithAuthor{}
	query := `
		SELECT c.id, c.pin_id, c.user_id, c.text, c.created_at, ` + authorColumns + `
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.pin_id = $1
		ORDER BY c.created_at
	`

	err := r.db.SelectContext(ctx, &comments, query, pinID)
	return comments, err
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOne(result, ErrCommentNotFound)
}

func (r *commentRepository) DeleteByPin(ctx context.Context, pinID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE pin_id = $1`, pinID)
	return err
}

// DeleteByUser removes comments the user wrote and every comment on pins the user owns.
func (r *commentRepository) DeleteByUser(ctx context.Context, userID string) error {
	query := `
		DELETE FROM comments
		WHERE user_id = $1
		   OR pin_id IN (SELECT id FROM pins WHERE created_by = $1)
	`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}
