package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhaven/bookhaven-server/internal/errors"
)

func TestSubmitReviewRequiresIdentity(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.reviews.SubmitReview(context.Background(), "bk-1", "", ReviewInput{Rating: 5})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnauthenticated)
}

func TestSubmitReviewRatingRules(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	book, err := env.books.CreateBook(ctx, "usr-owner", validBookInput())
	require.NoError(t, err)

	for _, rating := range []int{0, -1, 6} {
		_, err := env.reviews.SubmitReview(ctx, book.ID, "usr-reader", ReviewInput{Rating: rating})
		require.Error(t, err, "rating %d must be rejected", rating)
		assert.ErrorIs(t, err, errors.ErrValidation)
	}

	reviews, err := env.reviews.ReviewsForBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Empty(t, reviews, "rejected submissions leave no trace")
}

func TestSubmitReviewMissingBook(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.reviews.SubmitReview(context.Background(), "bk-missing", "usr-1", ReviewInput{Rating: 3})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestSubmitReviewUpsertsPerBookUserPair(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	book, err := env.books.CreateBook(ctx, "usr-owner", validBookInput())
	require.NoError(t, err)

	first, err := env.reviews.SubmitReview(ctx, book.ID, "usr-reader", ReviewInput{Rating: 3, ReviewText: "decent"})
	require.NoError(t, err)

	second, err := env.reviews.SubmitReview(ctx, book.ID, "usr-reader", ReviewInput{Rating: 5, ReviewText: "grew on me"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "resubmitting replaces, never duplicates")
	assert.Equal(t, first.CreatedAt, second.CreatedAt, "creation time survives edits")
	assert.Equal(t, 5, second.Rating)
	assert.Equal(t, "grew on me", second.ReviewText)

	reviews, err := env.reviews.ReviewsForBook(ctx, book.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)

	// A different reader gets their own review.
	_, err = env.reviews.SubmitReview(ctx, book.ID, "usr-other", ReviewInput{Rating: 2})
	require.NoError(t, err)

	reviews, err = env.reviews.ReviewsForBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}

func TestDeleteReviewAuthorOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	book, err := env.books.CreateBook(ctx, "usr-owner", validBookInput())
	require.NoError(t, err)

	review, err := env.reviews.SubmitReview(ctx, book.ID, "usr-reader", ReviewInput{Rating: 4})
	require.NoError(t, err)

	err = env.reviews.DeleteReview(ctx, review.ID, "usr-other")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnauthorized)

	// Even the book's owner cannot delete someone else's review.
	err = env.reviews.DeleteReview(ctx, review.ID, "usr-owner")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnauthorized)

	require.NoError(t, env.reviews.DeleteReview(ctx, review.ID, "usr-reader"))

	_, err = env.reviews.UserReviewForBook(ctx, book.ID, "usr-reader")
	assert.ErrorIs(t, err, errors.ErrNotFound)

	// The pair's slot is free again; a fresh submission gets a new identity.
	fresh, err := env.reviews.SubmitReview(ctx, book.ID, "usr-reader", ReviewInput{Rating: 5})
	require.NoError(t, err)
	assert.NotEqual(t, review.ID, fresh.ID)
}

func TestDeleteReviewNotFound(t *testing.T) {
	env := newTestEnv(t)

	err := env.reviews.DeleteReview(context.Background(), "rv-missing", "usr-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestUserReviewForBook(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	book, err := env.books.CreateBook(ctx, "usr-owner", validBookInput())
	require.NoError(t, err)

	_, err = env.reviews.UserReviewForBook(ctx, book.ID, "usr-reader")
	assert.ErrorIs(t, err, errors.ErrNotFound)

	submitted, err := env.reviews.SubmitReview(ctx, book.ID, "usr-reader", ReviewInput{Rating: 4})
	require.NoError(t, err)

	got, err := env.reviews.UserReviewForBook(ctx, book.ID, "usr-reader")
	require.NoError(t, err)
	assert.Equal(t, submitted.ID, got.ID)
}
