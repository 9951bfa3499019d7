package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookhaven/bookhaven-server/internal/service"
)

func (s *Server) registerAuthRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "register",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/register",
		Summary:     "Register a new account",
		Tags:        []string{"Auth"},
	}, s.handleRegister)

	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/login",
		Summary:     "Sign in",
		Tags:        []string{"Auth"},
	}, s.handleLogin)
}

// RegisterRequest contains the registration fields.
type RegisterRequest struct {
	Email       string `json:"email" doc:"Email address, unique per account"`
	Password    string `json:"password" doc:"Password, at least 8 characters"`
	DisplayName string `json:"display_name" doc:"Public display name"`
}

// LoginRequest contains sign-in credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned on successful registration or login.
type AuthResponse struct {
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name,omitempty"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// RegisterInput wraps the registration request body.
type RegisterInput struct {
	Body RegisterRequest
}

// LoginInput wraps the login request body.
type LoginInput struct {
	Body LoginRequest
}

// AuthOutput wraps the auth response for huma.
type AuthOutput struct {
	Body AuthResponse
}

func (s *Server) handleRegister(ctx context.Context, input *RegisterInput) (*AuthOutput, error) {
	session, err := s.authService.Register(ctx, service.RegisterInput{
		Email:       input.Body.Email,
		Password:    input.Body.Password,
		DisplayName: input.Body.DisplayName,
	})
	if err != nil {
		return nil, err
	}
	return authOutput(session), nil
}

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*AuthOutput, error) {
	session, err := s.authService.Login(ctx, service.LoginInput{
		Email:    input.Body.Email,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, err
	}
	return authOutput(session), nil
}

func authOutput(session *service.Session) *AuthOutput {
	out := &AuthOutput{
		Body: AuthResponse{
			UserID:      session.User.ID,
			Email:       session.User.Email,
			AccessToken: session.AccessToken,
			ExpiresAt:   session.ExpiresAt,
		},
	}
	if session.Profile != nil {
		out.Body.DisplayName = session.Profile.DisplayName
	}
	return out
}
