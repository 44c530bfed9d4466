package repository

import (
	"context"
	"time"

	"github.com/snapnest/snapnest/internal/model"
)

type SavedPinRepository interface {
	Save(ctx context.Context, userID, pinID string) error
	Unsave(ctx context.Context, userID, pinID string) (bool, error)
	PinIDs(ctx context.Context, userID string) ([]string, error)
	ByUser(ctx context.Context, userID string) ([]model.SavedPin, error)
	DeleteByPin(ctx context.Context, pinID string) error
	DeleteByUser(ctx context.Context, userID string) error
}

type savedPinRepository struct {
	db Querier
}

func NewSavedPinRepository(db Querier) SavedPinRepository {
	return &savedPinRepository{db: db}
}

func (r *savedPinRepository) Save(ctx context.Context, userID, pinID string) error {
	query := `INSERT INTO saved_pins (user_id, pin_id, created_at) VALUES ($1, $2, $3)`

	_, err := r.db.ExecContext(ctx, query, userID, pinID, time.Now().UTC())
	return err
}

// Unsave reports whether a bookmark was actually removed.
func (r *savedPinRepository) Unsave(ctx context.Context, userID, pinID string) (bool, error) {
	query := `DELETE FROM saved_pins WHERE user_id = $1 AND pin_id = $2`

	result, err := r.db.ExecContext(ctx, query, userID, pinID)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	return rows > 0, err
}

func (r *savedPinRepository) PinIDs(ctx context.Context, userID string) ([]string, error) {
	ids := []string{}
	query := `SELECT pin_id FROM saved_pins WHERE user_id = $1 ORDER BY created_at`

	err := r.db.SelectContext(ctx, &ids, query, userID)
	return ids, err
}

// ByUser returns the bookmarked pins, most recently saved first.
func (r *savedPinRepository) ByUser(ctx context.Context, userID string) ([]model.SavedPin, error) {
	pins := []model.SavedPin{}
	query := `
		SELECT p.id, p.title, p.category, p.image_url, p.image_storage_id, s.created_at AS saved_at
		FROM saved_pins s
		JOIN pins p ON p.id = s.pin_id
		WHERE s.user_id = $1
		ORDER BY s.created_at DESC
	`

	err := r.db.SelectContext(ctx, &pins, query, userID)
	return pins, err
}

func (r *savedPinRepository) DeleteByPin(ctx context.Context, pinID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM saved_pins WHERE pin_id = $1`, pinID)
	return err
}

// DeleteByUser removes the user's bookmarks and every bookmark of pins the user owns.
func (r *savedPinRepository) DeleteByUser(ctx context.Context, userID string) error {
	query := `
		DELETE FROM saved_pins
		WHERE user_id = $1
		   OR pin_id IN (SELECT id FROM pins WHERE created_by = $1)
	`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}
