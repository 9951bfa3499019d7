// Package store persists catalog entities in Badger with a generic entity
// layer and secondary indexes.
package store

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/bookhaven/bookhaven-server/internal/domain"
)

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	Books    *Entity[domain.Book]
	Reviews  *Entity[domain.Review]
	Profiles *Entity[domain.Profile]
	Users    *Entity[domain.User]
}

// New opens the database at path and initializes the entities.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	s := &Store{
		db:     db,
		logger: logger,
	}

	s.initBooks()
	s.initReviews()
	s.initProfiles()
	s.initUsers()

	if logger != nil {
		logger.Info("database opened", "path", path)
	}

	return s, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("closing database connection")
	}
	return s.db.Close()
}

// initBooks initializes the Books entity.
// The owner index serves the "my books" listing on profile pages.
func (s *Store) initBooks() {
	s.Books = NewEntity[domain.Book](s, "book:").
		WithMultiIndex("owner", func(b *domain.Book) []string {
			return []string{b.OwnerID}
		})
}

// initReviews initializes the Reviews entity.
// The unique book_user index enforces at most one review per (book, user)
// pair at the storage layer; the multi-valued book and user indexes serve
// per-book listings (and the delete cascade) and per-user listings.
func (s *Store) initReviews() {
	s.Reviews = NewEntity[domain.Review](s, "review:").
		WithUniqueIndex("book_user", func(r *domain.Review) []string {
			return []string{pairKey(r.BookID, r.UserID)}
		}).
		WithMultiIndex("book", func(r *domain.Review) []string {
			return []string{r.BookID}
		}).
		WithMultiIndex("user", func(r *domain.Review) []string {
			return []string{r.UserID}
		})
}

// initProfiles initializes the Profiles entity, keyed by user ID.
func (s *Store) initProfiles() {
	s.Profiles = NewEntity[domain.Profile](s, "profile:")
}

// initUsers initializes the Users entity with case-insensitive email lookup.
func (s *Store) initUsers() {
	s.Users = NewEntity[domain.User](s, "user:").
		WithUniqueIndexTransform("email",
			func(u *domain.User) []string {
				return []string{normalizeEmail(u.Email)}
			},
			normalizeEmail,
		)
}

// pairKey joins a (bookID, userID) pair into one index key.
// IDs are nanoids and never contain '/'.
func pairKey(bookID, userID string) string {
	return bookID + "/" + userID
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Ping verifies the database is answering reads.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte("ping"))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}

// AllBooks returns every book in the catalog.
// Catalog queries filter and sort in memory; the collection is small enough
// that a full scan beats maintaining per-filter indexes.
func (s *Store) AllBooks(ctx context.Context) ([]domain.Book, error) {
	return collect(s.Books.List(ctx))
}

// BooksByOwner returns all books created by the given user.
func (s *Store) BooksByOwner(ctx context.Context, ownerID string) ([]domain.Book, error) {
	return s.Books.ListByIndex(ctx, "owner", ownerID)
}

// collect drains an entity iterator into a slice.
func collect[T any](seq iter.Seq2[*T, error]) ([]T, error) {
	var out []T
	var iterErr error
	seq(func(item *T, err error) bool {
		if err != nil {
			iterErr = err
			return false
		}
		out = append(out, *item)
		return true
	})
	if iterErr != nil {
		return nil, iterErr
	}
	return out, nil
}
