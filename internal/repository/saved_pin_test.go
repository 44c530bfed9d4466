package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/snapnest/snapnest/internal/db/dbtest"
	"github.com/snapnest/snapnest/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavedPinRepository_SaveUnsave(t *testing.T) {
	database := dbtest.New(t)
	repo := repository.NewSavedPinRepository(database)
	ctx := context.Background()
	ann := seedUser(t, database, "ann")
	bob := seedUser(t, database, "bob")
	pin := seedPin(t, database, bob, "p", time.Now())

	require.NoError(t, repo.Save(ctx, ann.ID, pin.ID))
	assert.Error(t, repo.Save(ctx, ann.ID, pin.ID), "a bookmark is a set member")

	ids, err := repo.PinIDs(ctx, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{pin.ID}, ids)

	list, err := repo.ByUser(ctx, ann.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "p", list[0].Title)
	assert.Equal(t, "Art", list[0].Category)

	removed, err := repo.Unsave(ctx, ann.ID, pin.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Unsave(ctx, ann.ID, pin.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	ids, err = repo.PinIDs(ctx, ann.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestSavedPinRepository_DeleteByUserCoversOwnedPins(t *testing.T) {
	database := dbtest.New(t)
	repo := repository.NewSavedPinRepository(database)
	ctx := context.Background()
	ann := seedUser(t, database, "ann")
	bob := seedUser(t, database, "bob")
	annPin := seedPin(t, database, ann, "a", time.Now())
	bobPin := seedPin(t, database, bob, "b", time.Now())

	require.NoError(t, repo.Save(ctx, bob.ID, annPin.ID))
	require.NoError(t, repo.Save(ctx, bob.ID, bobPin.ID))
	require.NoError(t, repo.Save(ctx, ann.ID, bobPin.ID))

	require.NoError(t, repo.DeleteByUser(ctx, ann.ID))

	ids, err := repo.PinIDs(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{bobPin.ID}, ids)

	ids, err = repo.PinIDs(ctx, ann.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
