package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/snapnest/snapnest/internal/model"
)

var ErrPinNotFound = errors.New("pin not found")

type PinRepository interface {
	Create(ctx context.Context, pin *model.Pin) error
	ByID(ctx context.Context, id string) (*model.Pin, error)
	WithAuthor(ctx context.Context, id string) (*model.PinWithAuthor, error)
	All(ctx context.Context) ([]model.PinWithAuthor, error)
	ByCreator(ctx context.Context, userID string) ([]model.Pin, error)
	Feed(ctx context.Context, userID string) ([]model.PinWithAuthor, error)
	Search(ctx context.Context, query string) ([]model.PinWithAuthor, error)
	Delete(ctx context.Context, id string) error
	DeleteByCreator(ctx context.Context, userID string) error
}

type pinRepository struct {
	db Querier
}

func NewPinRepository(db Querier) PinRepository {
	return &pinRepository{db: db}
}

const pinColumns = `id, title, description, category, image_url, image_storage_id,
	created_by, created_at, updated_at`

// searchText is the folded title, description and category, newline separated.
func searchText(pin *model.Pin) string {
	return fold(pin.Title) + "\n" + fold(pin.Description) + "\n" + fold(pin.Category)
}

const pinWithAuthorSelect = `
	SELECT p.id, p.title, p.description, p.category, p.image_url, p.image_storage_id,
		p.created_by, p.created_at, p.updated_at, ` + authorColumns + `
	FROM pins p
	JOIN users u ON u.id = p.created_by
`

func (r *pinRepository) Create(ctx context.Context, pin *model.Pin) error {
	if pin.CreatedAt.IsZero() {
		pin.CreatedAt = time.Now().UTC()
	}
	pin.UpdatedAt = pin.CreatedAt
	if pin.Category == "" {
		pin.Category = model.DefaultCategory
	}

	query := `
		INSERT INTO pins (id, title, description, category, image_url, image_storage_id, search_text, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		pin.ID,
		pin.Title,
		pin.Description,
		pin.Category,
		pin.ImageURL,
		pin.ImageStorageID,
		searchText(pin),
		pin.CreatedBy,
		pin.CreatedAt,
		pin.UpdatedAt,
	)
	return err
}

func (r *pinRepository) ByID(ctx context.Context, id string) (*model.Pin, error) {
	pin := &model.Pin{}

	err := r.db.GetContext(ctx, pin, `SELECT `+pinColumns+` FROM pins WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPinNotFound
	}
	if err != nil {
		return nil, err
	}

	return pin, nil
}

func (r *pinRepository) WithAuthor(ctx context.Context, id string) (*model.PinWithAuthor, error) {
	pin := &model.PinWithAuthor{}

	err := r.db.GetContext(ctx, pin, pinWithAuthorSelect+`WHERE p.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPinNotFound
	}
	if err != nil {
		return nil, err
	}

	return pin, nil
}

// All returns every pin, newest first.
func (r *pinRepository) All(ctx context.Context) ([]model.PinWithAuthor, error) {
	pins := []model.PinWithAuthor{}

	err := r.db.SelectContext(ctx, &pins, pinWithAuthorSelect+`ORDER BY p.created_at DESC`)
	return pins, err
}

func (r *pinRepository) ByCreator(ctx context.Context, userID string) ([]model.Pin, error) {
	pins := []model.Pin{}
	query := `SELECT ` + pinColumns + ` FROM pins WHERE created_by = $1 ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &pins, query, userID)
	return pins, err
}

// Feed returns pins owned by anyone the user follows.
func (r *pinRepository) Feed(ctx context.Context, userID string) ([]model.PinWithAuthor, error) {
	pins := []model.PinWithAuthor{}
	query := pinWithAuthorSelect + `
		JOIN follows f ON f.followee_id = p.created_by
		WHERE f.follower_id = $1
		ORDER BY p.created_at DESC
	`

	err := r.db.SelectContext(ctx, &pins, query, userID)
	return pins, err
}

// Search matches the query case-insensitively against title, description and category.
func (r *pinRepository) Search(ctx context.Context, q string) ([]model.PinWithAuthor, error) {
	pins := []model.PinWithAuthor{}
	query := pinWithAuthorSelect + `
		WHERE p.search_text LIKE $1 ESCAPE '\'
		ORDER BY p.created_at DESC
	`

	err := r.db.SelectContext(ctx, &pins, query, containsPattern(q))
	return pins, err
}

func (r *pinRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM pins WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOne(result, ErrPinNotFound)
}

func (r *pinRepository) DeleteByCreator(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM pins WHERE created_by = $1`, userID)
	return err
}
