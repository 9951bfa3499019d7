package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/bookhaven/bookhaven-server/internal/domain"
	"github.com/bookhaven/bookhaven-server/internal/errors"
	"github.com/bookhaven/bookhaven-server/internal/store"
	"github.com/bookhaven/bookhaven-server/internal/validation"
)

// ProfileService manages user profiles.
type ProfileService struct {
	store     *store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewProfileService creates a new profile service.
func NewProfileService(store *store.Store, validator *validation.Validator, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// ProfileInput carries the profile fields a user can change.
// An empty display name is valid and clears it; clients fall back to
// rendering the email's local part.
type ProfileInput struct {
	DisplayName string `json:"display_name" validate:"max=50"`
}

// GetProfile returns a user's profile, creating a default one if the user
// exists but has none yet.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	if userID == "" {
		return nil, errors.Unauthenticated("sign in to view your profile")
	}

	profile, err := s.store.Profiles.Get(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, errors.Store(err)
	}

	if _, err := s.store.Users.Get(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFoundf("user %s not found", userID)
		}
		return nil, errors.Store(err)
	}

	profile = domain.NewProfile(userID, "")
	if err := s.store.Profiles.Create(ctx, userID, profile); err != nil {
		return nil, errors.Store(err)
	}
	return profile, nil
}

// UpdateProfile changes a user's display name. Profiles are only ever
// written by their owner; handlers pass the authenticated user's ID.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*domain.Profile, error) {
	if userID == "" {
		return nil, errors.Unauthenticated("sign in to edit your profile")
	}
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.DisplayName = in.DisplayName
	profile.UpdatedAt = time.Now().UTC()
	if err := s.store.Profiles.Update(ctx, userID, profile); err != nil {
		return nil, errors.Store(err)
	}

	s.logger.Info("profile updated", "user_id", userID)
	return profile, nil
}
