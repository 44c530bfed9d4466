package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/snapnest/snapnest/internal/model"
	"github.com/snapnest/snapnest/internal/repository"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, database *sqlx.DB, name string) *model.User {
	t.Helper()
	u := &model.User{
		ID:              uuid.NewString(),
		Name:            name,
		Email:           name + "@x.com",
		PasswordHash:    "hash",
		ProfileImageURL: model.DefaultProfileImageURL,
	}
	require.NoError(t, repository.NewUserRepository(database).Create(context.Background(), u))
	return u
}

func seedPin(t *testing.T, database *sqlx.DB, owner *model.User, title string, at time.Time) *model.Pin {
	t.Helper()
	p := &model.Pin{
		ID:             uuid.NewString(),
		Title:          title,
		Description:    "about " + title,
		Category:       "Art",
		ImageURL:       "https://img/" + title,
		ImageStorageID: "public/pins/" + title + ".png",
		CreatedBy:      owner.ID,
		CreatedAt:      at.UTC(),
	}
	require.NoError(t, repository.NewPinRepository(database).Create(context.Background(), p))
	return p
}
