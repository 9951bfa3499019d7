// Package service provides the business logic layer for the BookHaven catalog:
// book management, review lifecycle, profiles, and authentication.
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

// BookService orchestrates book mutations. Every mutation is owner-gated.
type BookService struct {
	store     *store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewBookService creates a new book service.
func NewBookService(store *store.Store, validator *validation.Validator, logger *slog.Logger) *BookService {
	return &BookService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// BookInput carries the mutable fields of a book. OwnerID and CreatedAt are
// never client input: they are fixed at creation.
type BookInput struct {
	Title         string `json:"title" validate:"required,max=200"`
	Author        string `json:"author" validate:"required,max=200"`
	Description   string `json:"description" validate:"omitempty,max=2000"`
	Genre         string `json:"genre" validate:"required"`
	PublishedYear *int   `json:"published_year" validate:"omitempty,published_year"`
	CoverImage    string `json:"cover_image" validate:"omitempty,url"`
}

// validate runs struct validation plus the genre enumeration check.
func (s *BookService) validate(in BookInput) error {
	if err := s.validator.Validate(in); err != nil {
		return err
	}
	if !domain.Genre(in.Genre).Valid() {
		return errors.ValidationWithDetails("validation failed", map[string]string{
			"genre": "must be a known genre",
		})
	}
	return nil
}

// CreateBook adds a book owned by ownerID.
func (s *BookService) CreateBook(ctx context.Context, ownerID string, in BookInput) (*domain.Book, error) {
	if ownerID == "" {
		return nil, errors.Unauthenticated("sign in to add a book")
	}
	if err := s.validate(in); err != nil {
		return nil, err
	}

	book := &domain.Book{
		ID:            id.MustGenerate(id.PrefixBook),
		Title:         in.Title,
		Author:        in.Author,
		Description:   in.Description,
		Genre:         domain.Genre(in.Genre),
		PublishedYear: in.PublishedYear,
		CoverImage:    in.CoverImage,
		OwnerID:       ownerID,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.store.Books.Create(ctx, book.ID, book); err != nil {
		return nil, errors.Store(err)
	}

	s.logger.Info("book created", "book_id", book.ID, "owner_id", ownerID)
	return book, nil
}

// UpdateBook rewrites a book's mutable fields. Only the owner may update;
// OwnerID and CreatedAt survive the write untouched.
func (s *BookService) UpdateBook(ctx context.Context, bookID, requesterID string, in BookInput) (*domain.Book, error) {
	if requesterID == "" {
		return nil, errors.Unauthenticated("sign in to edit a book")
	}

	book, err := s.store.Books.Get(ctx, bookID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errors.NotFoundf("book %s not found", bookID)
	}
	if err != nil {
		return nil, errors.Store(err)
	}

	if !book.IsOwnedBy(requesterID) {
		return nil, errors.Unauthorized("only the owner can edit this book")
	}

	if err := s.validate(in); err != nil {
		return nil, err
	}

	book.Title = in.Title
	book.Author = in.Author
	book.Description = in.Description
	book.Genre = domain.Genre(in.Genre)
	book.PublishedYear = in.PublishedYear
	book.CoverImage = in.CoverImage

	if err := s.store.Books.Update(ctx, book.ID, book); err != nil {
		return nil, errors.Store(err)
	}

	s.logger.Info("book updated", "book_id", book.ID)
	return book, nil
}

// GetBook retrieves a single book by ID.
func (s *BookService) GetBook(ctx context.Context, bookID string) (*domain.Book, error) {
	book, err := s.store.Books.Get(ctx, bookID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errors.NotFoundf("book %s not found", bookID)
	}
	if err != nil {
		return nil, errors.Store(err)
	}
	return book, nil
}

// BooksByOwner lists the books a user has added.
func (s *BookService) BooksByOwner(ctx context.Context, ownerID string) ([]domain.Book, error) {
	books, err := s.store.BooksByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Store(err)
	}
	return books, nil
}

// DeleteBook removes a book and all of its reviews. Only the owner may
// delete; the cascade runs in one transaction, so a failure leaves both the
// book and its reviews in place.
func (s *BookService) DeleteBook(ctx context.Context, bookID, requesterID string) error {
	if requesterID == "" {
		return errors.Unauthenticated("sign in to delete a book")
	}

	book, err := s.store.Books.Get(ctx, bookID)
	if errors.Is(err, store.ErrNotFound) {
		return errors.NotFoundf("book %s not found", bookID)
	}
	if err != nil {
		return errors.Store(err)
	}

	if !book.IsOwnedBy(requesterID) {
		return errors.Unauthorized("only the owner can delete this book")
	}

	if err := s.store.DeleteBookWithReviews(ctx, bookID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errors.NotFoundf("book %s not found", bookID)
		}
		return errors.Store(err)
	}

	s.logger.Info("book deleted with reviews", "book_id", bookID)
	return nil
}
