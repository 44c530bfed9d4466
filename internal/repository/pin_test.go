package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/snapnest/snapnest/internal/db/dbtest"
	"github.com/snapnest/snapnest/internal/model"
	"github.com/snapnest/snapnest/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPinRepository_AllNewestFirstWithAuthor(t *testing.T) {
	database := dbtest.New(t)
	repo := repository.NewPinRepository(database)
	ann := seedUser(t, database, "ann")
	base := time.Now().Add(-time.Hour)

	seedPin(t, database, ann, "old", base)
	seedPin(t, database, ann, "new", base.Add(time.Minute))

	pins, err := repo.All(context.Background())
	require.NoError(t, err)
	require.Len(t, pins, 2)
	assert.Equal(t, "new", pins[0].Title)
	assert.Equal(t, "old", pins[1].Title)
	assert.Equal(t, ann.ID, pins[0].Author.ID)
	assert.Equal(t, "ann", pins[0].Author.Name)
	assert.Equal(t, model.DefaultProfileImageURL, pins[0].Author.ProfileImage().URL)
}

func TestPinRepository_DefaultCategory(t *testing.T) {
	database := dbtest.New(t)
	repo := repository.NewPinRepository(database)
	ann := seedUser(t, database, "ann")

	p := &model.Pin{ID: "p-1", Title: "t", Description: "d", ImageURL: "u", ImageStorageID: "s", CreatedBy: ann.ID}
	require.NoError(t, repo.Create(context.Background(), p))

	got, err := repo.ByID(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, model.DefaultCategory, got.Category)
}

func TestPinRepository_FeedOnlyFollowed(t *testing.T) {
	database := dbtest.New(t)
	pins := repository.NewPinRepository(database)
	follows := repository.NewFollowRepository(database)
	ctx := context.Background()
	ann := seedUser(t, database, "ann")
	bob := seedUser(t, database, "bob")
	cat := seedUser(t, database, "cat")

	seedPin(t, database, bob, "bob-pin", time.Now())
	seedPin(t, database, cat, "cat-pin", time.Now())
	require.NoError(t, follows.Create(ctx, ann.ID, bob.ID))

	feed, err := pins.Feed(ctx, ann.ID)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "bob-pin", feed[0].Title)
	assert.Equal(t, "bob", feed[0].Author.Name)
}

func TestPinRepository_SearchCaseInsensitiveAcrossFields(t *testing.T) {
	database := dbtest.New(t)
	repo := repository.NewPinRepository(database)
	ctx := context.Background()
	ann := seedUser(t, database, "ann")

	seedPin(t, database, ann, "Sunset", time.Now())
	seedPin(t, database, ann, "Mountains", time.Now())

	got, err := repo.Search(ctx, "SUNS")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Sunset", got[0].Title)

	// description is "about <title>"
	got, err = repo.Search(ctx, "about")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = repo.Search(ctx, "art")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = repo.Search(ctx, "%")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPinRepository_SearchFoldsNonASCII(t *testing.T) {
	database := dbtest.New(t)
	repo := repository.NewPinRepository(database)
	ctx := context.Background()
	ann := seedUser(t, database, "ann")

	seedPin(t, database, ann, "ÉCOLE", time.Now())
	seedPin(t, database, ann, "Straße", time.Now())

	for _, q := range []string{"école", "ÉCOLE", "École", "cole"} {
		got, err := repo.Search(ctx, q)
		require.NoError(t, err)
		require.Len(t, got, 1, q)
		assert.Equal(t, "ÉCOLE", got[0].Title)
	}

	for _, q := range []string{"straße", "STRASSE", "strasse"} {
		got, err := repo.Search(ctx, q)
		require.NoError(t, err)
		require.Len(t, got, 1, q)
		assert.Equal(t, "Straße", got[0].Title)
	}
}

func TestPinRepository_ByCreatorAndDelete(t *testing.T) {
	database := dbtest.New(t)
	repo := repository.NewPinRepository(database)
	ctx := context.Background()
	ann := seedUser(t, database, "ann")
	bob := seedUser(t, database, "bob")
	p := seedPin(t, database, ann, "mine", time.Now())
	seedPin(t, database, bob, "theirs", time.Now())

	mine, err := repo.ByCreator(ctx, ann.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, p.ID, mine[0].ID)

	require.NoError(t, repo.Delete(ctx, p.ID))
	_, err = repo.ByID(ctx, p.ID)
	assert.ErrorIs(t, err, repository.ErrPinNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, p.ID), repository.ErrPinNotFound)

	_, err = repo.WithAuthor(ctx, p.ID)
	assert.ErrorIs(t, err, repository.ErrPinNotFound)
}
