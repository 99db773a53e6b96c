package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sakif/devconnect/internal/apperror"
	"github.com/sakif/devconnect/internal/auth"
)

func newTestAuthService(t *testing.T) (*AuthService, *fakeUserRepo, *fakeProfileRepo) {
	t.Helper()
	users := newFakeUserRepo()
	profiles := newFakeProfileRepo()
	// bcrypt MinCost keeps the hashing fast in tests.
	svc := NewAuthService(users, profiles, newTestTokenService(t), auth.NewPasswordServiceForTest(4), testLogger())
	return svc, users, profiles
}

func TestRegister_Success(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	result, err := svc.Register(context.Background(), "Ann", "ann@example.com", "password1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if result.Token == "" {
		t.Error("expected a token")
	}
	if result.User.ID == "" {
		t.Error("expected the user to have an ID")
	}
	if result.User.Password == "password1" {
		t.Error("password was stored in plaintext")
	}
	if !strings.HasPrefix(result.User.Avatar, "https://www.gravatar.com/avatar/") {
		t.Errorf("Avatar = %q, want a gravatar URL", result.User.Avatar)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Ann", "ann@example.com", "password1"); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	result, err := svc.Register(ctx, "Other Ann", "ann@example.com", "different1")
	if err == nil {
		t.Fatal("Register() should reject a duplicate email")
	}
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("error = %v, want ErrConflict", err)
	}
	if result != nil {
		t.Error("a duplicate registration must not get a token")
	}
}

func TestLogin_Success(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "Ann", "ann@example.com", "password1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	result, err := svc.Login(ctx, "ann@example.com", "password1")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.Token == "" {
		t.Error("expected a token")
	}
	if result.User.ID != registered.User.ID {
		t.Errorf("User.ID = %q, want %q", result.User.ID, registered.User.ID)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Ann", "ann@example.com", "password1"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, err := svc.Login(ctx, "ann@example.com", "wrongpass")
	if !errors.Is(err, apperror.ErrInvalidCredentials) {
		t.Errorf("error = %v, want ErrInvalidCredentials", err)
	}
}

// An unknown email must fail identically to a wrong password, so the
// endpoint doesn't reveal which addresses are registered.
func TestLogin_UnknownEmail(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), "nobody@example.com", "password1")
	if !errors.Is(err, apperror.ErrInvalidCredentials) {
		t.Errorf("error = %v, want ErrInvalidCredentials", err)
	}
}

func TestDeleteAccount_RemovesUserAndProfile(t *testing.T) {
	svc, users, profiles := newTestAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "Ann", "ann@example.com", "password1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	userID := registered.User.ID

	profileSvc := NewProfileService(profiles, testLogger())
	if _, err := profileSvc.Upsert(ctx, userID, ProfileInput{Designation: "Developer", Skills: "go"}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	if err := svc.DeleteAccount(ctx, userID); err != nil {
		t.Fatalf("DeleteAccount() error = %v", err)
	}

	if _, err := users.GetByID(ctx, userID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("user lookup after delete = %v, want ErrNotFound", err)
	}
	if _, err := profiles.GetByUserID(ctx, userID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("profile lookup after delete = %v, want ErrNotFound", err)
	}
}

// Deleting an account that never created a profile must still work.
func TestDeleteAccount_NoProfile(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "Ann", "ann@example.com", "password1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if err := svc.DeleteAccount(ctx, registered.User.ID); err != nil {
		t.Fatalf("DeleteAccount() error = %v", err)
	}
}
