// Package repository declares the persistence interfaces the service
// layer programs against. The sqlite subpackage provides the concrete
// implementation; tests substitute in-memory fakes.
package repository

import (
	"context"

	"github.com/sakif/devconnect/internal/model"
)

type UserRepository interface {
	// Create persists a new user, filling in ID and CreatedAt.
	// Returns apperror.ErrConflict if the email is already registered.
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	// GetByEmail returns apperror.ErrNotFound for unknown addresses.
	// Callers in the login path must not leak that distinction.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Delete(ctx context.Context, id string) error
}

type ProfileRepository interface {
	// Upsert creates or replaces the profile keyed on UserID, keeping
	// at most one profile per user. On create it fills ID/CreatedAt.
	Upsert(ctx context.Context, profile *model.Profile) error
	GetByUserID(ctx context.Context, userID string) (*model.Profile, error)
	List(ctx context.Context) ([]model.Profile, error)
	// Delete removes the user's profile. Deleting an absent profile is
	// not an error — account deletion must work for profile-less users.
	Delete(ctx context.Context, userID string) error
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id string) (*model.Post, error)
	// List returns all posts, newest first.
	List(ctx context.Context) ([]model.Post, error)
	// Update persists the post's current state, including its nested
	// likes and comments. Mutations are read-modify-write: load via
	// GetByID, edit the sub-collection, Update.
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id string) error
}
