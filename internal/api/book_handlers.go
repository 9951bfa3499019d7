package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookhaven/bookhaven-server/internal/domain"
	"github.com/bookhaven/bookhaven-server/internal/service"
)

func (s *Server) registerBookRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}",
		Summary:     "Get a book",
		Tags:        []string{"Books"},
	}, s.handleGetBook)

	huma.Register(api, huma.Operation{
		OperationID:   "createBook",
		Method:        http.MethodPost,
		Path:          "/api/v1/books",
		Summary:       "Add a book",
		DefaultStatus: http.StatusCreated,
		Tags:          []string{"Books"},
	}, s.handleCreateBook)

	huma.Register(api, huma.Operation{
		OperationID: "updateBook",
		Method:      http.MethodPut,
		Path:        "/api/v1/books/{id}",
		Summary:     "Edit a book (owner only)",
		Tags:        []string{"Books"},
	}, s.handleUpdateBook)

	huma.Register(api, huma.Operation{
		OperationID:   "deleteBook",
		Method:        http.MethodDelete,
		Path:          "/api/v1/books/{id}",
		Summary:       "Delete a book and its reviews (owner only)",
		DefaultStatus: http.StatusNoContent,
		Tags:          []string{"Books"},
	}, s.handleDeleteBook)
}

// BookRequest contains the writable fields of a book.
type BookRequest struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	Description   string `json:"description,omitempty"`
	Genre         string `json:"genre"`
	PublishedYear *int   `json:"published_year,omitempty"`
	CoverImage    string `json:"cover_image,omitempty"`
}

func (r BookRequest) toInput() service.BookInput {
	return service.BookInput{
		Title:         r.Title,
		Author:        r.Author,
		Description:   r.Description,
		Genre:         r.Genre,
		PublishedYear: r.PublishedYear,
		CoverImage:    r.CoverImage,
	}
}

// BookByIDInput identifies a book by path parameter.
type BookByIDInput struct {
	ID string `path:"id" doc:"Book ID"`
}

// CreateBookInput wraps a book creation request.
type CreateBookInput struct {
	Body BookRequest
}

// UpdateBookInput wraps a book update request.
type UpdateBookInput struct {
	ID   string `path:"id" doc:"Book ID"`
	Body BookRequest
}

// BookOutput wraps a single book for huma.
type BookOutput struct {
	Body domain.Book
}

func (s *Server) handleGetBook(ctx context.Context, input *BookByIDInput) (*BookOutput, error) {
	book, err := s.bookService.GetBook(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: *book}, nil
}

func (s *Server) handleCreateBook(ctx context.Context, input *CreateBookInput) (*BookOutput, error) {
	book, err := s.bookService.CreateBook(ctx, getUserID(ctx), input.Body.toInput())
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: *book}, nil
}

func (s *Server) handleUpdateBook(ctx context.Context, input *UpdateBookInput) (*BookOutput, error) {
	book, err := s.bookService.UpdateBook(ctx, input.ID, getUserID(ctx), input.Body.toInput())
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: *book}, nil
}

func (s *Server) handleDeleteBook(ctx context.Context, input *BookByIDInput) (*struct{}, error) {
	if err := s.bookService.DeleteBook(ctx, input.ID, getUserID(ctx)); err != nil {
		return nil, err
	}
	return &struct{}{}, nil
}
