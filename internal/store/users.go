package store

import (
	"context"

	"github.com/bookhaven/bookhaven-server/internal/domain"
)

// UserByEmail looks up a user by email, case-insensitively.
func (s *Store) UserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.Users.GetByIndex(ctx, "email", email)
}
