package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/bookhaven/bookhaven-server/internal/domain"
)

// ReviewForBookUser looks up the single review a user has left for a book.
// Returns ErrNotFound when the user has not reviewed the book.
func (s *Store) ReviewForBookUser(ctx context.Context, bookID, userID string) (*domain.Review, error) {
	return s.Reviews.GetByIndex(ctx, "book_user", pairKey(bookID, userID))
}

// ReviewsForBook returns all reviews referencing a book.
func (s *Store) ReviewsForBook(ctx context.Context, bookID string) ([]domain.Review, error) {
	return s.Reviews.ListByIndex(ctx, "book", bookID)
}

// ReviewsByUser returns all reviews written by a user.
func (s *Store) ReviewsByUser(ctx context.Context, userID string) ([]domain.Review, error) {
	return s.Reviews.ListByIndex(ctx, "user", userID)
}

// DeleteBookWithReviews deletes a book and every review referencing it in a
// single transaction, so callers can never observe a partial cascade.
// Returns ErrNotFound if the book does not exist.
func (s *Store) DeleteBookWithReviews(ctx context.Context, bookID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		var book domain.Book
		if err := getEntity(txn, "book:"+bookID, &book); err != nil {
			return err
		}

		reviewIDs, err := scanIndexIDs(txn, []byte("review:idx:book:"+bookID+":"))
		if err != nil {
			return fmt.Errorf("failed to scan book reviews: %w", err)
		}

		for _, reviewID := range reviewIDs {
			var review domain.Review
			err := getEntity(txn, "review:"+reviewID, &review)
			if errors.Is(err, ErrNotFound) {
				continue // dangling index entry; still removed below
			}
			if err != nil {
				return err
			}
			if err := s.Reviews.deleteIndexEntries(txn, reviewID, &review); err != nil {
				return err
			}
			if err := txn.Delete([]byte("review:" + reviewID)); err != nil {
				return fmt.Errorf("failed to delete review: %w", err)
			}
		}

		if err := s.Books.deleteIndexEntries(txn, bookID, &book); err != nil {
			return err
		}
		if err := txn.Delete([]byte("book:" + bookID)); err != nil {
			return fmt.Errorf("failed to delete book: %w", err)
		}
		return nil
	})
}
