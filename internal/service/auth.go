// Package service contains the business logic layer.
//
// Handlers parse HTTP and validate request shape; services enforce the
// rules (uniqueness, credentials, ownership) and orchestrate the
// repositories; repositories talk to the database. Nothing in this
// package imports net/http.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/devconnect/internal/apperror"
	"github.com/sakif/devconnect/internal/auth"
	"github.com/sakif/devconnect/internal/model"
	"github.com/sakif/devconnect/internal/repository"
)

// AuthService handles registration, login, and account lifecycle.
type AuthService struct {
	users     repository.UserRepository
	profiles  repository.ProfileRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewAuthService(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		profiles:  profiles,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// AuthResult bundles the user and the issued token so the handler can
// respond in one step.
type AuthResult struct {
	User  *model.User
	Token string
}

// Register creates a new account and issues a token for it.
//
// The email-uniqueness pre-check gives the common case a clean
// Conflict; the UNIQUE index in the repository catches the race where
// two registrations for the same address arrive together. Either way,
// a duplicate email never gets a token.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperror.Conflict("User already exists")
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("service/auth: checking email: %w", err)
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("service/auth: hashing password: %w", err)
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Avatar:   auth.GravatarURL(email),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("service/auth: creating user: %w", err)
	}

	s.logger.Info("user registered",
		slog.String("userID", user.ID),
		slog.String("email", user.Email),
	)

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for user %s: %w", user.ID, err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

// Login authenticates an email/password pair and issues a token.
//
// An unknown email and a wrong password both come back as the same
// InvalidCredentials error, so a caller probing the endpoint cannot
// tell which one failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.InvalidCredentials()
		}
		return nil, fmt.Errorf("service/auth: looking up user: %w", err)
	}

	if err := s.passwords.Verify(user.Password, password); err != nil {
		return nil, apperror.InvalidCredentials()
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for user %s: %w", user.ID, err)
	}

	s.logger.Info("user logged in", slog.String("userID", user.ID))

	return &AuthResult{User: user, Token: token}, nil
}

// GetUserByID resolves a token's identity to the full user record.
// Used by GET /api/auth after the middleware validates the JWT.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service/auth: fetching user %s: %w", id, err)
	}
	return user, nil
}

// DeleteAccount removes the user's profile and then the user record.
// The user's posts are left in place, author snapshot intact.
// TODO: remove the user's posts as well once the product decides
// whether orphaned posts should survive account deletion.
func (s *AuthService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.profiles.Delete(ctx, userID); err != nil {
		return fmt.Errorf("service/auth: deleting profile for user %s: %w", userID, err)
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return fmt.Errorf("service/auth: deleting user %s: %w", userID, err)
	}

	s.logger.Info("account deleted", slog.String("userID", userID))

	return nil
}
