package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/devconnect/internal/apperror"
	"github.com/sakif/devconnect/internal/model"
)

func TestUserCreate(t *testing.T) {
	db := newTestDB(t)
	users := db.Users()

	user := &model.User{
		Name:     "Ann",
		Email:    "ann@example.com",
		Password: "$2a$04$notarealhashbutlongenough",
		Avatar:   "https://www.gravatar.com/avatar/abc",
	}
	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if user.ID == "" {
		t.Error("Create() did not set user.ID")
	}
	if user.CreatedAt.IsZero() {
		t.Error("Create() did not set user.CreatedAt")
	}
}

func TestUserCreate_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	users := db.Users()

	createTestUser(t, users, "Ann", "ann@example.com")

	// The UNIQUE index is the backstop against racing registrations, so
	// the error must surface from the insert itself.
	dup := &model.User{Name: "Other Ann", Email: "ann@example.com", Password: "x"}
	err := users.Create(context.Background(), dup)
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("error = %v, want ErrConflict", err)
	}
}

func TestUserGetByID(t *testing.T) {
	db := newTestDB(t)
	users := db.Users()

	created := createTestUser(t, users, "Ann", "ann@example.com")

	got, err := users.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Email != "ann@example.com" {
		t.Errorf("Email = %q, want %q", got.Email, "ann@example.com")
	}
	if got.Password == "" {
		t.Error("GetByID() must return the password hash for credential checks")
	}
}

func TestUserGetByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Users().GetByID(context.Background(), "no-such-id")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestUserGetByEmail(t *testing.T) {
	db := newTestDB(t)
	users := db.Users()

	created := createTestUser(t, users, "Ann", "ann@example.com")

	got, err := users.GetByEmail(context.Background(), "ann@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("ID = %q, want %q", got.ID, created.ID)
	}

	if _, err := users.GetByEmail(context.Background(), "nobody@example.com"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestUserDelete_CascadesProfile(t *testing.T) {
	db := newTestDB(t)
	users := db.Users()
	profiles := db.Profiles()
	ctx := context.Background()

	user := createTestUser(t, users, "Ann", "ann@example.com")

	profile := &model.Profile{
		UserID:      user.ID,
		Designation: "Developer",
		Skills:      []string{"go"},
	}
	if err := profiles.Upsert(ctx, profile); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	if err := users.Delete(ctx, user.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := users.GetByID(ctx, user.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("user lookup after delete = %v, want ErrNotFound", err)
	}
	// The ON DELETE CASCADE must take the profile with the user.
	if _, err := profiles.GetByUserID(ctx, user.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("profile lookup after user delete = %v, want ErrNotFound", err)
	}
}

func TestUserDelete_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.Users().Delete(context.Background(), "no-such-id")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
