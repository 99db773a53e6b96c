package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/sakif/devconnect/internal/apperror"
	"github.com/sakif/devconnect/internal/auth"
	"github.com/sakif/devconnect/internal/model"
)

// In-memory fakes for the repository interfaces. They store copies, so
// a test can't accidentally mutate the "database" through a returned
// pointer, and they return the same apperror sentinels the sqlite
// implementations do.

type fakeUserRepo struct {
	users  map[string]*model.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return apperror.Conflict("User already exists")
		}
	}
	f.nextID++
	user.ID = fmt.Sprintf("user-%d", f.nextID)
	user.CreatedAt = time.Now()
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperror.NotFound("User not found")
	}
	result := *u
	return &result, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			result := *u
			return &result, nil
		}
	}
	return nil, apperror.NotFound("User not found")
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return apperror.NotFound("User not found")
	}
	delete(f.users, id)
	return nil
}

type fakeProfileRepo struct {
	profiles map[string]*model.Profile // keyed by UserID
	nextID   int
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*model.Profile)}
}

func (f *fakeProfileRepo) Upsert(_ context.Context, profile *model.Profile) error {
	if existing, ok := f.profiles[profile.UserID]; ok {
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
	} else {
		f.nextID++
		profile.ID = fmt.Sprintf("profile-%d", f.nextID)
		profile.CreatedAt = time.Now()
	}
	profile.UpdatedAt = time.Now()
	stored := *profile
	f.profiles[profile.UserID] = &stored
	return nil
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID string) (*model.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, apperror.NotFound("Profile does not exist")
	}
	result := *p
	return &result, nil
}

func (f *fakeProfileRepo) List(_ context.Context) ([]model.Profile, error) {
	result := make([]model.Profile, 0, len(f.profiles))
	for _, p := range f.profiles {
		result = append(result, *p)
	}
	return result, nil
}

func (f *fakeProfileRepo) Delete(_ context.Context, userID string) error {
	delete(f.profiles, userID)
	return nil
}

type fakePostRepo struct {
	posts  map[string]*model.Post
	nextID int
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[string]*model.Post)}
}

func (f *fakePostRepo) Create(_ context.Context, post *model.Post) error {
	f.nextID++
	post.ID = fmt.Sprintf("post-%d", f.nextID)
	post.CreatedAt = time.Now()
	if post.Likes == nil {
		post.Likes = []model.Like{}
	}
	if post.Comments == nil {
		post.Comments = []model.Comment{}
	}
	stored := *post
	f.posts[post.ID] = &stored
	return nil
}

func (f *fakePostRepo) GetByID(_ context.Context, id string) (*model.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, apperror.NotFound("Post not found")
	}
	result := *p
	return &result, nil
}

func (f *fakePostRepo) List(_ context.Context) ([]model.Post, error) {
	result := make([]model.Post, 0, len(f.posts))
	for _, p := range f.posts {
		result = append(result, *p)
	}
	return result, nil
}

func (f *fakePostRepo) Update(_ context.Context, post *model.Post) error {
	if _, ok := f.posts[post.ID]; !ok {
		return apperror.NotFound("Post not found")
	}
	stored := *post
	f.posts[post.ID] = &stored
	return nil
}

func (f *fakePostRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.posts[id]; !ok {
		return apperror.NotFound("Post not found")
	}
	delete(f.posts, id)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestTokenService(t *testing.T) *auth.TokenService {
	t.Helper()
	tokens, err := auth.NewTokenService("test-secret-0123456789abcdef", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}
	return tokens
}
