package model

import (
	"time"
)

type Comment struct {
	ID        string    `db:"id"`
	PinID     string    `db:"pin_id"`
	UserID    string    `db:"user_id"`
	Text      string    `db:"text"`
	CreatedAt time.Time `db:"created_at"`
}

type CommentWithAuthor struct {
	Comment
	Author UserSummary `db:"author"`
}
