package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookmark_backend/internal/feature/bookmark/domain/entity"
)

// fakeRepository keeps bookmarks in memory and enforces ownership like the gorm adapter.
type fakeRepository struct {
	rows   map[uint]*entity.Bookmark
	nextID uint
	err    error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{rows: map[uint]*entity.Bookmark{}, nextID: 1}
}

func (f *fakeRepository) ListByOwner(ctx context.Context, userID uint) ([]entity.Bookmark, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]entity.Bookmark, 0)
	for id := uint(1); id < f.nextID; id++ {
		if b, ok := f.rows[id]; ok && b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeRepository) FindOwned(ctx context.Context, userID, id uint) (*entity.Bookmark, error) {
	b, ok := f.rows[id]
	if !ok || b.UserID != userID {
		return nil, ErrBookmarkNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeRepository) Create(ctx context.Context, b *entity.Bookmark) error {
	if f.err != nil {
		return f.err
	}
	b.ID = f.nextID
	f.nextID++
	cp := *b
	f.rows[b.ID] = &cp
	return nil
}

func (f *fakeRepository) UpdateOwned(ctx context.Context, userID, id uint, apply func(b *entity.Bookmark)) (*entity.Bookmark, error) {
	b, err := f.FindOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	apply(b)
	cp := *b
	f.rows[id] = &cp
	return b, nil
}

func (f *fakeRepository) DeleteOwned(ctx context.Context, userID, id uint) error {
	if _, err := f.FindOwned(ctx, userID, id); err != nil {
		return err
	}
	delete(f.rows, id)
	return nil
}

func strPtr(s string) *string { return &s }

func assertValidationField(t *testing.T, err error, field string) {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, field, verr.Field)
}

func TestBookmarkUsecase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("owner is always the caller", func(t *testing.T) {
		uc := NewBookmarkUsecase(newFakeRepository())

		b, err := uc.Create(ctx, 7, CreateInput{Title: "  Go  ", Link: " https://go.dev "})
		require.NoError(t, err)
		assert.Equal(t, uint(7), b.UserID)
		assert.Equal(t, "Go", b.Title)
		assert.Equal(t, "https://go.dev", b.Link)
		assert.Nil(t, b.Description)
	})

	tests := []struct {
		name  string
		in    CreateInput
		field string
	}{
		{name: "blank title", in: CreateInput{Title: "   ", Link: "https://go.dev"}, field: "title"},
		{name: "empty link", in: CreateInput{Title: "Go", Link: ""}, field: "link"},
		{name: "relative link", in: CreateInput{Title: "Go", Link: "/docs"}, field: "link"},
		{name: "link without host", in: CreateInput{Title: "Go", Link: "mailto:"}, field: "link"},
		{name: "unparseable link", in: CreateInput{Title: "Go", Link: "http://[::1"}, field: "link"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository()
			uc := NewBookmarkUsecase(repo)

			_, err := uc.Create(ctx, 1, tt.in)
			assertValidationField(t, err, tt.field)
			assert.Empty(t, repo.rows)
		})
	}

	t.Run("repository error is returned", func(t *testing.T) {
		repo := newFakeRepository()
		repo.err = errors.New("disk full")
		uc := NewBookmarkUsecase(repo)

		_, err := uc.Create(ctx, 1, CreateInput{Title: "Go", Link: "https://go.dev"})
		assert.EqualError(t, err, "disk full")
	})
}

func TestBookmarkUsecase_Ownership(t *testing.T) {
	ctx := context.Background()
	const alice, bob uint = 1, 2

	repo := newFakeRepository()
	uc := NewBookmarkUsecase(repo)
	mine, err := uc.Create(ctx, alice, CreateInput{Title: "Mine", Link: "https://a.example"})
	require.NoError(t, err)

	_, err = uc.Get(ctx, bob, mine.ID)
	assert.ErrorIs(t, err, ErrBookmarkNotFound)

	_, err = uc.Update(ctx, bob, mine.ID, UpdateInput{Title: strPtr("Stolen")})
	assert.ErrorIs(t, err, ErrBookmarkNotFound)

	assert.ErrorIs(t, uc.Delete(ctx, bob, mine.ID), ErrBookmarkNotFound)

	list, err := uc.List(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, list)

	got, err := uc.Get(ctx, alice, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mine", got.Title)
}

func TestBookmarkUsecase_Update(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*BookmarkUsecase, *entity.Bookmark) {
		t.Helper()
		uc := NewBookmarkUsecase(newFakeRepository())
		b, err := uc.Create(ctx, 1, CreateInput{Title: "Go", Description: strPtr("docs"), Link: "https://go.dev"})
		require.NoError(t, err)
		return uc, b
	}

	t.Run("only supplied fields change", func(t *testing.T) {
		uc, b := setup(t)

		got, err := uc.Update(ctx, 1, b.ID, UpdateInput{Title: strPtr(" Golang ")})
		require.NoError(t, err)
		assert.Equal(t, "Golang", got.Title)
		assert.Equal(t, "https://go.dev", got.Link)
		require.NotNil(t, got.Description)
		assert.Equal(t, "docs", *got.Description)
	})

	t.Run("description can be replaced", func(t *testing.T) {
		uc, b := setup(t)

		got, err := uc.Update(ctx, 1, b.ID, UpdateInput{Description: strPtr("")})
		require.NoError(t, err)
		assert.Equal(t, "", *got.Description)
	})

	t.Run("empty title is rejected", func(t *testing.T) {
		uc, b := setup(t)

		_, err := uc.Update(ctx, 1, b.ID, UpdateInput{Title: strPtr("")})
		assertValidationField(t, err, "title")

		got, err := uc.Get(ctx, 1, b.ID)
		require.NoError(t, err)
		assert.Equal(t, "Go", got.Title)
	})

	t.Run("invalid link is rejected", func(t *testing.T) {
		uc, b := setup(t)

		_, err := uc.Update(ctx, 1, b.ID, UpdateInput{Link: strPtr("not a url")})
		assertValidationField(t, err, "link")
	})

	t.Run("missing bookmark", func(t *testing.T) {
		uc, _ := setup(t)

		_, err := uc.Update(ctx, 1, 99, UpdateInput{Title: strPtr("x")})
		assert.ErrorIs(t, err, ErrBookmarkNotFound)
	})
}

func TestBookmarkUsecase_Delete(t *testing.T) {
	ctx := context.Background()
	uc := NewBookmarkUsecase(newFakeRepository())
	b, err := uc.Create(ctx, 1, CreateInput{Title: "Go", Link: "https://go.dev"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, 1, b.ID))
	assert.ErrorIs(t, uc.Delete(ctx, 1, b.ID), ErrBookmarkNotFound)

	_, err = uc.Get(ctx, 1, b.ID)
	assert.ErrorIs(t, err, ErrBookmarkNotFound)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Field: "title", Reason: "must not be empty"}
	assert.Equal(t, "title must not be empty", err.Error())
}
