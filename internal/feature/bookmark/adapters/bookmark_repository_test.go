package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookmark_backend/internal/feature/bookmark/domain/entity"
	"bookmark_backend/internal/feature/bookmark/usecase"
	"bookmark_backend/internal/platform/db/dbtest"
)

const (
	alice uint = 1
	bob   uint = 2
)

func seed(t *testing.T, repo *bookmarkRepository, owner uint, title string) *entity.Bookmark {
	t.Helper()
	b := &entity.Bookmark{UserID: owner, Title: title, Link: "https://example.com/" + title}
	require.NoError(t, repo.Create(context.Background(), b))
	return b
}

func TestBookmarkRepository_ListByOwner(t *testing.T) {
	ctx := context.Background()
	repo := NewBookmarkRepository(dbtest.Open(t))

	a1 := seed(t, repo, alice, "a1")
	seed(t, repo, bob, "b1")
	a2 := seed(t, repo, alice, "a2")

	got, err := repo.ListByOwner(ctx, alice)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, a1.ID, got[0].ID)
	assert.Equal(t, a2.ID, got[1].ID)
	for _, b := range got {
		assert.Equal(t, alice, b.UserID)
	}

	empty, err := repo.ListByOwner(ctx, 99)
	require.NoError(t, err)
	assert.NotNil(t, empty, "empty list must not be nil")
	assert.Empty(t, empty)
}

func TestBookmarkRepository_FindOwned(t *testing.T) {
	ctx := context.Background()
	repo := NewBookmarkRepository(dbtest.Open(t))
	b := seed(t, repo, alice, "a1")

	got, err := repo.FindOwned(ctx, alice, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "a1", got.Title)

	_, foreign := repo.FindOwned(ctx, bob, b.ID)
	_, absent := repo.FindOwned(ctx, alice, b.ID+100)
	assert.ErrorIs(t, foreign, usecase.ErrBookmarkNotFound)
	assert.ErrorIs(t, absent, usecase.ErrBookmarkNotFound)
	assert.Equal(t, absent.Error(), foreign.Error())
}

func TestBookmarkRepository_UpdateOwned(t *testing.T) {
	ctx := context.Background()

	t.Run("applies changes and bumps updated_at", func(t *testing.T) {
		repo := NewBookmarkRepository(dbtest.Open(t))
		b := seed(t, repo, alice, "a1")
		before := b.UpdatedAt
		time.Sleep(2 * time.Millisecond)

		desc := "notes"
		got, err := repo.UpdateOwned(ctx, alice, b.ID, func(b *entity.Bookmark) {
			b.Title = "renamed"
			b.Description = &desc
		})
		require.NoError(t, err)
		assert.Equal(t, "renamed", got.Title)
		assert.True(t, got.UpdatedAt.After(before))

		stored, err := repo.FindOwned(ctx, alice, b.ID)
		require.NoError(t, err)
		assert.Equal(t, "renamed", stored.Title)
		require.NotNil(t, stored.Description)
		assert.Equal(t, "notes", *stored.Description)
		assert.Equal(t, b.Link, stored.Link)
	})

	t.Run("owner cannot be reassigned", func(t *testing.T) {
		repo := NewBookmarkRepository(dbtest.Open(t))
		b := seed(t, repo, alice, "a1")

		_, err := repo.UpdateOwned(ctx, alice, b.ID, func(b *entity.Bookmark) {
			b.UserID = bob
			b.Title = "moved"
		})
		require.NoError(t, err)

		stored, err := repo.FindOwned(ctx, alice, b.ID)
		require.NoError(t, err)
		assert.Equal(t, alice, stored.UserID)
		assert.Equal(t, "moved", stored.Title)
	})

	t.Run("foreign bookmark is not found and untouched", func(t *testing.T) {
		repo := NewBookmarkRepository(dbtest.Open(t))
		b := seed(t, repo, alice, "a1")
		applied := false

		_, err := repo.UpdateOwned(ctx, bob, b.ID, func(b *entity.Bookmark) {
			applied = true
			b.Title = "hijacked"
		})
		assert.ErrorIs(t, err, usecase.ErrBookmarkNotFound)
		assert.False(t, applied)

		stored, err := repo.FindOwned(ctx, alice, b.ID)
		require.NoError(t, err)
		assert.Equal(t, "a1", stored.Title)
	})
}

func TestBookmarkRepository_DeleteOwned(t *testing.T) {
	ctx := context.Background()
	repo := NewBookmarkRepository(dbtest.Open(t))
	b := seed(t, repo, alice, "a1")

	assert.ErrorIs(t, repo.DeleteOwned(ctx, bob, b.ID), usecase.ErrBookmarkNotFound)
	_, err := repo.FindOwned(ctx, alice, b.ID)
	require.NoError(t, err, "foreign delete must not remove the row")

	require.NoError(t, repo.DeleteOwned(ctx, alice, b.ID))
	assert.ErrorIs(t, repo.DeleteOwned(ctx, alice, b.ID), usecase.ErrBookmarkNotFound)

	var count int64
	require.NoError(t, repo.db.Unscoped().Model(&entity.Bookmark{}).Count(&count).Error)
	assert.Zero(t, count, "delete is a hard delete")
}
