package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhaven/bookhaven-server/internal/domain"
)

func testBook(id, title, owner string) *domain.Book {
	return &domain.Book{
		ID:        id,
		Title:     title,
		Author:    "Author",
		Genre:     domain.GenreFiction,
		OwnerID:   owner,
		CreatedAt: time.Now(),
	}
}

func TestEntity_CreateGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	book := testBook("bk-1", "Dune", "usr-1")
	require.NoError(t, s.Books.Create(ctx, book.ID, book))

	got, err := s.Books.Get(ctx, "bk-1")
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, "usr-1", got.OwnerID)
}

func TestEntity_CreateDuplicateID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Books.Create(ctx, "bk-1", testBook("bk-1", "Dune", "usr-1")))

	err := s.Books.Create(ctx, "bk-1", testBook("bk-1", "Dune again", "usr-1"))
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestEntity_GetMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Books.Get(context.Background(), "bk-none")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEntity_UniqueIndexConflict(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	r1 := &domain.Review{ID: "rv-1", BookID: "bk-1", UserID: "usr-1", Rating: 4, CreatedAt: time.Now()}
	require.NoError(t, s.Reviews.Create(ctx, r1.ID, r1))

	// Second review for the same (book, user) pair must be rejected.
	r2 := &domain.Review{ID: "rv-2", BookID: "bk-1", UserID: "usr-1", Rating: 5, CreatedAt: time.Now()}
	err := s.Reviews.Create(ctx, r2.ID, r2)
	assert.ErrorIs(t, err, ErrAlreadyExists)

	// A different user reviewing the same book is fine.
	r3 := &domain.Review{ID: "rv-3", BookID: "bk-1", UserID: "usr-2", Rating: 2, CreatedAt: time.Now()}
	assert.NoError(t, s.Reviews.Create(ctx, r3.ID, r3))
}

func TestEntity_UpdateRewritesIndexes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	book := testBook("bk-1", "Dune", "usr-1")
	require.NoError(t, s.Books.Create(ctx, book.ID, book))

	book.Title = "Dune Messiah"
	require.NoError(t, s.Books.Update(ctx, book.ID, book))

	got, err := s.Books.Get(ctx, "bk-1")
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", got.Title)

	owned, err := s.BooksByOwner(ctx, "usr-1")
	require.NoError(t, err)
	assert.Len(t, owned, 1)
}

func TestEntity_UpdateMissing(t *testing.T) {
	s := newTestStore(t)

	err := s.Books.Update(context.Background(), "bk-none", testBook("bk-none", "Ghost", "usr-1"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEntity_DeleteIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Books.Create(ctx, "bk-1", testBook("bk-1", "Dune", "usr-1")))
	require.NoError(t, s.Books.Delete(ctx, "bk-1"))
	require.NoError(t, s.Books.Delete(ctx, "bk-1"), "delete is idempotent")

	_, err := s.Books.Get(ctx, "bk-1")
	assert.ErrorIs(t, err, ErrNotFound)

	owned, err := s.BooksByOwner(ctx, "usr-1")
	require.NoError(t, err)
	assert.Empty(t, owned, "index entries removed with the entity")
}

func TestEntity_MultiIndexList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Books.Create(ctx, "bk-1", testBook("bk-1", "One", "usr-1")))
	require.NoError(t, s.Books.Create(ctx, "bk-2", testBook("bk-2", "Two", "usr-1")))
	require.NoError(t, s.Books.Create(ctx, "bk-3", testBook("bk-3", "Three", "usr-2")))

	owned, err := s.BooksByOwner(ctx, "usr-1")
	require.NoError(t, err)
	assert.Len(t, owned, 2)

	owned, err = s.BooksByOwner(ctx, "usr-9")
	require.NoError(t, err)
	assert.Empty(t, owned)
}

func TestEntity_List(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"bk-1", "bk-2", "bk-3"} {
		require.NoError(t, s.Books.Create(ctx, id, testBook(id, "Title "+id, "usr-1")))
	}

	all, err := s.AllBooks(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestUsers_EmailLookupCaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := &domain.User{ID: "usr-1", Email: "Reader@Example.com", CreatedAt: time.Now()}
	require.NoError(t, s.Users.Create(ctx, u.ID, u))

	got, err := s.UserByEmail(ctx, "reader@example.COM")
	require.NoError(t, err)
	assert.Equal(t, "usr-1", got.ID)

	dup := &domain.User{ID: "usr-2", Email: "READER@example.com", CreatedAt: time.Now()}
	assert.ErrorIs(t, s.Users.Create(ctx, dup.ID, dup), ErrAlreadyExists)
}
