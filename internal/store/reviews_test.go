package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhaven/bookhaven-server/internal/domain"
)

func seedReview(t *testing.T, s *Store, id, bookID, userID string, rating int) {
	t.Helper()
	r := &domain.Review{ID: id, BookID: bookID, UserID: userID, Rating: rating, CreatedAt: time.Now()}
	require.NoError(t, s.Reviews.Create(context.Background(), id, r))
}

func TestReviewForBookUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedReview(t, s, "rv-1", "bk-1", "usr-1", 4)
	seedReview(t, s, "rv-2", "bk-1", "usr-2", 2)

	got, err := s.ReviewForBookUser(ctx, "bk-1", "usr-1")
	require.NoError(t, err)
	assert.Equal(t, "rv-1", got.ID)

	_, err = s.ReviewForBookUser(ctx, "bk-1", "usr-3")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReviewsForBook(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedReview(t, s, "rv-1", "bk-1", "usr-1", 4)
	seedReview(t, s, "rv-2", "bk-1", "usr-2", 2)
	seedReview(t, s, "rv-3", "bk-2", "usr-1", 5)

	reviews, err := s.ReviewsForBook(ctx, "bk-1")
	require.NoError(t, err)
	assert.Len(t, reviews, 2)

	reviews, err = s.ReviewsByUser(ctx, "usr-1")
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}

func TestDeleteBookWithReviews_Cascade(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Books.Create(ctx, "bk-1", testBook("bk-1", "Dune", "usr-1")))
	require.NoError(t, s.Books.Create(ctx, "bk-2", testBook("bk-2", "Hyperion", "usr-1")))
	seedReview(t, s, "rv-1", "bk-1", "usr-1", 4)
	seedReview(t, s, "rv-2", "bk-1", "usr-2", 2)
	seedReview(t, s, "rv-3", "bk-2", "usr-2", 5)

	require.NoError(t, s.DeleteBookWithReviews(ctx, "bk-1"))

	_, err := s.Books.Get(ctx, "bk-1")
	assert.ErrorIs(t, err, ErrNotFound)

	reviews, err := s.ReviewsForBook(ctx, "bk-1")
	require.NoError(t, err)
	assert.Empty(t, reviews)

	// The (book, user) slots are free again.
	_, err = s.ReviewForBookUser(ctx, "bk-1", "usr-1")
	assert.ErrorIs(t, err, ErrNotFound)

	// Other books and their reviews are untouched.
	reviews, err = s.ReviewsForBook(ctx, "bk-2")
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
}

func TestDeleteBookWithReviews_MissingBook(t *testing.T) {
	s := newTestStore(t)

	err := s.DeleteBookWithReviews(context.Background(), "bk-none")
	assert.ErrorIs(t, err, ErrNotFound)
}
