package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/bookhaven/bookhaven-server/internal/domain"
	"github.com/bookhaven/bookhaven-server/internal/errors"
	"github.com/bookhaven/bookhaven-server/internal/id"
	"github.com/bookhaven/bookhaven-server/internal/store"
	"github.com/bookhaven/bookhaven-server/internal/validation"
)

// ReviewService manages the review lifecycle for (book, user) pairs.
// The storage layer's unique index guarantees at most one review per pair;
// SubmitReview is therefore an upsert, never a second insert.
type ReviewService struct {
	store     *store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(store *store.Store, validator *validation.Validator, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// ReviewInput carries a review submission.
type ReviewInput struct {
	Rating     int    `json:"rating"`
	ReviewText string `json:"review_text" validate:"omitempty,max=2000"`
}

// SubmitReview creates or replaces the requesting user's review of a book.
// On replace, the review keeps its ID and CreatedAt; rating and text are
// overwritten. The book must exist.
func (s *ReviewService) SubmitReview(ctx context.Context, bookID, userID string, in ReviewInput) (*domain.Review, error) {
	if userID == "" {
		return nil, errors.Unauthenticated("sign in to leave a review")
	}
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	if _, err := s.store.Books.Get(ctx, bookID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFoundf("book %s not found", bookID)
		}
		return nil, errors.Store(err)
	}

	existing, err := s.store.ReviewForBookUser(ctx, bookID, userID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, errors.Store(err)
	}

	// The state machine owns the rating rules: zero means "nothing
	// selected" and is rejected from every state.
	machine := domain.NewReviewStateMachine(existing != nil)
	if existing != nil {
		if err := machine.BeginEdit(); err != nil {
			return nil, err
		}
	}
	if err := machine.Submit(in.Rating); err != nil {
		return nil, err
	}

	if existing != nil {
		existing.Rating = in.Rating
		existing.ReviewText = in.ReviewText
		if err := s.store.Reviews.Update(ctx, existing.ID, existing); err != nil {
			return nil, errors.Store(err)
		}
		s.logger.Info("review updated", "review_id", existing.ID, "book_id", bookID)
		return existing, nil
	}

	review := &domain.Review{
		ID:         id.MustGenerate(id.PrefixReview),
		BookID:     bookID,
		UserID:     userID,
		Rating:     in.Rating,
		ReviewText: in.ReviewText,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.store.Reviews.Create(ctx, review.ID, review); err != nil {
		return nil, errors.Store(err)
	}

	s.logger.Info("review created", "review_id", review.ID, "book_id", bookID)
	return review, nil
}

// DeleteReview permanently removes a review. Only its author may delete it.
func (s *ReviewService) DeleteReview(ctx context.Context, reviewID, requesterID string) error {
	if requesterID == "" {
		return errors.Unauthenticated("sign in to delete a review")
	}

	review, err := s.store.Reviews.Get(ctx, reviewID)
	if errors.Is(err, store.ErrNotFound) {
		return errors.NotFoundf("review %s not found", reviewID)
	}
	if err != nil {
		return errors.Store(err)
	}

	if !review.IsAuthoredBy(requesterID) {
		return errors.Unauthorized("only the author can delete this review")
	}

	if err := s.store.Reviews.Delete(ctx, reviewID); err != nil {
		return errors.Store(err)
	}

	s.logger.Info("review deleted", "review_id", reviewID, "book_id", review.BookID)
	return nil
}

// ReviewsForBook lists all reviews of a book.
func (s *ReviewService) ReviewsForBook(ctx context.Context, bookID string) ([]domain.Review, error) {
	reviews, err := s.store.ReviewsForBook(ctx, bookID)
	if err != nil {
		return nil, errors.Store(err)
	}
	return reviews, nil
}

// ReviewsByUser lists all reviews a user has written.
func (s *ReviewService) ReviewsByUser(ctx context.Context, userID string) ([]domain.Review, error) {
	reviews, err := s.store.ReviewsByUser(ctx, userID)
	if err != nil {
		return nil, errors.Store(err)
	}
	return reviews, nil
}

// UserReviewForBook returns the requesting user's review of a book, or a
// NOT_FOUND error when they have not reviewed it.
func (s *ReviewService) UserReviewForBook(ctx context.Context, bookID, userID string) (*domain.Review, error) {
	review, err := s.store.ReviewForBookUser(ctx, bookID, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errors.NotFound("no review for this book")
	}
	if err != nil {
		return nil, errors.Store(err)
	}
	return review, nil
}
