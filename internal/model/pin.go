package model

import (
	"time"
)

const DefaultCategory = "Uncategorized"

type Pin struct {
	ID             string    `db:"id"`
	Title          string    `db:"title"`
	Description    string    `db:"description"`
	Category       string    `db:"category"`
	ImageURL       string    `db:"image_url"`
	ImageStorageID string    `db:"image_storage_id"`
	CreatedBy      string    `db:"created_by"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (p *Pin) Image() Image {
	return Image{URL: p.ImageURL, StorageID: p.ImageStorageID}
}

// PinWithAuthor is a pin joined with its owner's summary.
type PinWithAuthor struct {
	Pin
	Author UserSummary `db:"author"`
}

// PinDetail is a pin with its author and populated comments.
type PinDetail struct {
	PinWithAuthor
	Comments []CommentWithAuthor
}

// SavedPin is the projection returned for a user's bookmarks.
type SavedPin struct {
	ID             string    `db:"id"`
	Title          string    `db:"title"`
	Category       string    `db:"category"`
	ImageURL       string    `db:"image_url"`
	ImageStorageID string    `db:"image_storage_id"`
	SavedAt        time.Time `db:"saved_at"`
}
