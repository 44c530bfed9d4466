package ctxkeys

import (
	"context"

	"github.com/snapnest/snapnest/internal/model"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	UserKey          contextKey = "user"
	SessionUserIDKey contextKey = "session_user_id"
)

// User returns the authenticated user, or nil.
func User(ctx context.Context) *model.User {
	user, _ := ctx.Value(UserKey).(*model.User)
	return user
}

func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

// SessionUserID returns the user id of a verified session token, set even
// when that user no longer exists.
func SessionUserID(ctx context.Context) string {
	id, _ := ctx.Value(SessionUserIDKey).(string)
	return id
}

func WithSessionUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, SessionUserIDKey, id)
}
