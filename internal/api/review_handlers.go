package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookhaven/bookhaven-server/internal/domain"
	"github.com/bookhaven/bookhaven-server/internal/service"
)

func (s *Server) registerReviewRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "listBookReviews",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}/reviews",
		Summary:     "List a book's reviews",
		Tags:        []string{"Reviews"},
	}, s.handleListBookReviews)

	huma.Register(api, huma.Operation{
		OperationID: "getMyReview",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}/reviews/me",
		Summary:     "Get the signed-in user's review of a book",
		Tags:        []string{"Reviews"},
	}, s.handleGetMyReview)

	huma.Register(api, huma.Operation{
		OperationID: "submitReview",
		Method:      http.MethodPost,
		Path:        "/api/v1/books/{id}/reviews",
		Summary:     "Create or replace the signed-in user's review of a book",
		Tags:        []string{"Reviews"},
	}, s.handleSubmitReview)

	huma.Register(api, huma.Operation{
		OperationID:   "deleteReview",
		Method:        http.MethodDelete,
		Path:          "/api/v1/reviews/{id}",
		Summary:       "Delete a review (author only)",
		DefaultStatus: http.StatusNoContent,
		Tags:          []string{"Reviews"},
	}, s.handleDeleteReview)
}

// ReviewRequest carries a review submission.
type ReviewRequest struct {
	Rating     int    `json:"rating" doc:"Star rating from 1 to 5"`
	ReviewText string `json:"review_text,omitempty"`
}

// SubmitReviewInput wraps a review submission.
type SubmitReviewInput struct {
	ID   string `path:"id" doc:"Book ID"`
	Body ReviewRequest
}

// ReviewByIDInput identifies a review by path parameter.
type ReviewByIDInput struct {
	ID string `path:"id" doc:"Review ID"`
}

// ReviewOutput wraps a single review for huma.
type ReviewOutput struct {
	Body domain.Review
}

// ReviewListOutput wraps a list of reviews for huma.
type ReviewListOutput struct {
	Body []domain.Review
}

func (s *Server) handleListBookReviews(ctx context.Context, input *BookByIDInput) (*ReviewListOutput, error) {
	reviews, err := s.reviewService.ReviewsForBook(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return &ReviewListOutput{Body: reviews}, nil
}

func (s *Server) handleGetMyReview(ctx context.Context, input *BookByIDInput) (*ReviewOutput, error) {
	review, err := s.reviewService.UserReviewForBook(ctx, input.ID, getUserID(ctx))
	if err != nil {
		return nil, err
	}
	return &ReviewOutput{Body: *review}, nil
}

func (s *Server) handleSubmitReview(ctx context.Context, input *SubmitReviewInput) (*ReviewOutput, error) {
	review, err := s.reviewService.SubmitReview(ctx, input.ID, getUserID(ctx), service.ReviewInput{
		Rating:     input.Body.Rating,
		ReviewText: input.Body.ReviewText,
	})
	if err != nil {
		return nil, err
	}
	return &ReviewOutput{Body: *review}, nil
}

func (s *Server) handleDeleteReview(ctx context.Context, input *ReviewByIDInput) (*struct{}, error) {
	if err := s.reviewService.DeleteReview(ctx, input.ID, getUserID(ctx)); err != nil {
		return nil, err
	}
	return &struct{}{}, nil
}
