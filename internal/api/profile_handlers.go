package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookhaven/bookhaven-server/internal/domain"
	"github.com/bookhaven/bookhaven-server/internal/service"
)

func (s *Server) registerProfileRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getProfile",
		Method:      http.MethodGet,
		Path:        "/api/v1/profile",
		Summary:     "Get the signed-in user's profile",
		Tags:        []string{"Profile"},
	}, s.handleGetProfile)

	huma.Register(api, huma.Operation{
		OperationID: "updateProfile",
		Method:      http.MethodPut,
		Path:        "/api/v1/profile",
		Summary:     "Update the signed-in user's display name",
		Tags:        []string{"Profile"},
	}, s.handleUpdateProfile)

	huma.Register(api, huma.Operation{
		OperationID: "listMyBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/profile/books",
		Summary:     "List books added by the signed-in user",
		Tags:        []string{"Profile"},
	}, s.handleListMyBooks)

	huma.Register(api, huma.Operation{
		OperationID: "listMyReviews",
		Method:      http.MethodGet,
		Path:        "/api/v1/profile/reviews",
		Summary:     "List reviews written by the signed-in user",
		Tags:        []string{"Profile"},
	}, s.handleListMyReviews)
}

// ProfileRequest carries the editable profile fields.
type ProfileRequest struct {
	DisplayName string `json:"display_name"`
}

// UpdateProfileInput wraps a profile update.
type UpdateProfileInput struct {
	Body ProfileRequest
}

// ProfileOutput wraps a profile for huma.
type ProfileOutput struct {
	Body domain.Profile
}

// BookListOutput wraps a list of books for huma.
type BookListOutput struct {
	Body []domain.Book
}

func (s *Server) handleGetProfile(ctx context.Context, _ *struct{}) (*ProfileOutput, error) {
	profile, err := s.profileService.GetProfile(ctx, getUserID(ctx))
	if err != nil {
		return nil, err
	}
	return &ProfileOutput{Body: *profile}, nil
}

func (s *Server) handleUpdateProfile(ctx context.Context, input *UpdateProfileInput) (*ProfileOutput, error) {
	profile, err := s.profileService.UpdateProfile(ctx, getUserID(ctx), service.ProfileInput{
		DisplayName: input.Body.DisplayName,
	})
	if err != nil {
		return nil, err
	}
	return &ProfileOutput{Body: *profile}, nil
}

func (s *Server) handleListMyBooks(ctx context.Context, _ *struct{}) (*BookListOutput, error) {
	userID := getUserID(ctx)
	if userID == "" {
		return nil, huma.Error401Unauthorized("authentication required")
	}
	books, err := s.bookService.BooksByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []domain.Book{}
	}
	return &BookListOutput{Body: books}, nil
}

func (s *Server) handleListMyReviews(ctx context.Context, _ *struct{}) (*ReviewListOutput, error) {
	userID := getUserID(ctx)
	if userID == "" {
		return nil, huma.Error401Unauthorized("authentication required")
	}
	reviews, err := s.reviewService.ReviewsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return &ReviewListOutput{Body: reviews}, nil
}
