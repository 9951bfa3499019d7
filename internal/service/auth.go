package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/bookhaven/bookhaven-server/internal/auth"
	"github.com/bookhaven/bookhaven-server/internal/domain"
	"github.com/bookhaven/bookhaven-server/internal/errors"
	"github.com/bookhaven/bookhaven-server/internal/id"
	"github.com/bookhaven/bookhaven-server/internal/store"
	"github.com/bookhaven/bookhaven-server/internal/validation"
)

// AuthService handles registration, login, and token verification.
type AuthService struct {
	store     *store.Store
	tokens    *auth.TokenService
	validator *validation.Validator
	logger    *slog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(store *store.Store, tokens *auth.TokenService, validator *validation.Validator, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:     store,
		tokens:    tokens,
		validator: validator,
		logger:    logger,
	}
}

// RegisterInput carries a registration request.
type RegisterInput struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=128"`
	DisplayName string `json:"display_name" validate:"required,max=50"`
}

// LoginInput carries a login request.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Session is the result of a successful registration or login.
type Session struct {
	User        *domain.User
	Profile     *domain.Profile
	AccessToken string
	ExpiresAt   time.Time
}

// Register creates a user account and its profile, then signs the user in.
// Email uniqueness is case-insensitive and enforced by the store.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to hash password")
	}

	user := &domain.User{
		ID:           id.MustGenerate(id.PrefixUser),
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.Users.Create(ctx, user.ID, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, errors.AlreadyExists("an account with this email already exists")
		}
		return nil, errors.Store(err)
	}

	// Separate write from the user record. If it fails, the account exists
	// without a profile; ProfileService.GetProfile creates a default one on
	// first read, so the gap heals itself.
	profile := domain.NewProfile(user.ID, in.DisplayName)
	if err := s.store.Profiles.Create(ctx, user.ID, profile); err != nil {
		return nil, errors.Store(err)
	}

	session, err := s.startSession(user, profile)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return session, nil
}

// Login verifies credentials and signs the user in. Unknown email and wrong
// password return the same error.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*Session, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	user, err := s.store.UserByEmail(ctx, in.Email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errors.InvalidCredentials("invalid email or password")
	}
	if err != nil {
		return nil, errors.Store(err)
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, in.Password)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to verify password")
	}
	if !ok {
		return nil, errors.InvalidCredentials("invalid email or password")
	}

	profile, err := s.store.Profiles.Get(ctx, user.ID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, errors.Store(err)
	}

	session, err := s.startSession(user, profile)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return session, nil
}

// VerifyAccessToken resolves a bearer token to the acting user's ID.
func (s *AuthService) VerifyAccessToken(tokenString string) (string, error) {
	claims, err := s.tokens.VerifyAccessToken(tokenString)
	if err != nil {
		return "", errors.Unauthenticated("invalid or expired token").WithCause(err)
	}
	return claims.UserID, nil
}

func (s *AuthService) startSession(user *domain.User, profile *domain.Profile) (*Session, error) {
	token, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to generate access token")
	}
	return &Session{
		User:        user,
		Profile:     profile,
		AccessToken: token,
		ExpiresAt:   time.Now().Add(s.tokens.AccessTokenDuration()),
	}, nil
}
