package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/snapnest/snapnest/internal/db/dbtest"
	"github.com/snapnest/snapnest/internal/model"
	"github.com/snapnest/snapnest/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndLookup(t *testing.T) {
	database := dbtest.New(t)
	repo := repository.NewUserRepository(database)
	ctx := context.Background()

	ann := seedUser(t, database, "ann")

	byID, err := repo.ByID(ctx, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", byID.Email)
	assert.Equal(t, model.DefaultProfileImageURL, byID.ProfileImageURL)
	assert.False(t, byID.HasHostedImage())

	byEmail, err := repo.ByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, ann.ID, byEmail.ID)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	database := dbtest.New(t)
	repo := repository.NewUserRepository(database)
	seedUser(t, database, "ann")

	err := repo.Create(context.Background(), &model.User{
		ID:              uuid.NewString(),
		Name:            "Other Ann",
		Email:           "ann@x.com",
		PasswordHash:    "h",
		ProfileImageURL: model.DefaultProfileImageURL,
	})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestUserRepository_NotFound(t *testing.T) {
	database := dbtest.New(t)
	repo := repository.NewUserRepository(database)
	ctx := context.Background()

	_, err := repo.ByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	_, err = repo.ByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, "missing"), repository.ErrUserNotFound)
	assert.ErrorIs(t, repo.UpdatePassword(ctx, "missing", "h"), repository.ErrUserNotFound)
}

func TestUserRepository_UpdateProfileAndPassword(t *testing.T) {
	database := dbtest.New(t)
	repo := repository.NewUserRepository(database)
	ctx := context.Background()
	ann := seedUser(t, database, "ann")

	ann.Name = "Ann B"
	ann.Bio = "painter"
	ann.ProfileImageURL = "https://img/ann.png"
	ann.ProfileImageStorageID = "public/avatars/ann.png"
	require.NoError(t, repo.Update(ctx, ann))
	require.NoError(t, repo.UpdatePassword(ctx, ann.ID, "new-hash"))

	got, err := repo.ByID(ctx, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann B", got.Name)
	assert.Equal(t, "painter", got.Bio)
	assert.Equal(t, "new-hash", got.PasswordHash)
	assert.True(t, got.HasHostedImage())
	assert.Equal(t, "public/avatars/ann.png", got.ProfileImage().StorageID)
}

func TestUserRepository_ByID_DBError(t *testing.T) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM users WHERE id = $1`)).
		WithArgs("u-1").
		WillReturnError(errors.New("db down"))

	repo := repository.NewUserRepository(sqlx.NewDb(mockDB, "sqlmock"))
	_, err = repo.ByID(context.Background(), "u-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrUserNotFound)
	assert.Contains(t, err.Error(), "db down")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_PostgresDuplicateKey(t *testing.T) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectExec(`(?s)^\s*INSERT\s+INTO\s+users`).
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "users_email_key"`))

	repo := repository.NewUserRepository(sqlx.NewDb(mockDB, "sqlmock"))
	err = repo.Create(context.Background(), &model.User{ID: "u-1", Email: "ann@x.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
	require.NoError(t, mock.ExpectationsWereMet())
}
