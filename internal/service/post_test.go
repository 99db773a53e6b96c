package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/devconnect/internal/apperror"
	"github.com/sakif/devconnect/internal/model"
)

func newTestPostService(t *testing.T) (*PostService, *fakeUserRepo) {
	t.Helper()
	users := newFakeUserRepo()
	return NewPostService(newFakePostRepo(), users, testLogger()), users
}

func addUser(t *testing.T, users *fakeUserRepo, name, email string) string {
	t.Helper()
	u := &model.User{Name: name, Email: email, Avatar: "https://www.gravatar.com/avatar/" + name}
	if err := users.Create(context.Background(), u); err != nil {
		t.Fatalf("creating user %s: %v", name, err)
	}
	return u.ID
}

func TestPostCreate_SnapshotsAuthor(t *testing.T) {
	svc, users := newTestPostService(t)
	ctx := context.Background()
	annID := addUser(t, users, "Ann", "ann@example.com")

	post, err := svc.Create(ctx, annID, "hello world")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if post.Name != "Ann" {
		t.Errorf("Name = %q, want the author's name", post.Name)
	}
	if post.Avatar == "" {
		t.Error("expected the author's avatar to be snapshotted")
	}
	if len(post.Likes) != 0 || len(post.Comments) != 0 {
		t.Error("a new post must start with empty likes and comments")
	}
}

func TestPostCreate_UnknownAuthor(t *testing.T) {
	svc, _ := newTestPostService(t)

	_, err := svc.Create(context.Background(), "no-such-user", "hello")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestPostDelete_OwnerOnly(t *testing.T) {
	svc, users := newTestPostService(t)
	ctx := context.Background()
	annID := addUser(t, users, "Ann", "ann@example.com")
	bobID := addUser(t, users, "Bob", "bob@example.com")

	post, err := svc.Create(ctx, annID, "ann's post")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.Delete(ctx, bobID, post.ID); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("non-owner delete error = %v, want ErrForbidden", err)
	}

	// The failed attempt must not remove the post.
	if _, err := svc.GetByID(ctx, post.ID); err != nil {
		t.Fatalf("post vanished after a forbidden delete: %v", err)
	}

	if err := svc.Delete(ctx, annID, post.ID); err != nil {
		t.Fatalf("owner Delete() error = %v", err)
	}
	if _, err := svc.GetByID(ctx, post.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error after delete = %v, want ErrNotFound", err)
	}
}

func TestPostLike_Toggle(t *testing.T) {
	svc, users := newTestPostService(t)
	ctx := context.Background()
	annID := addUser(t, users, "Ann", "ann@example.com")
	bobID := addUser(t, users, "Bob", "bob@example.com")

	post, err := svc.Create(ctx, annID, "likeable")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	likes, err := svc.Like(ctx, bobID, post.ID)
	if err != nil {
		t.Fatalf("Like() error = %v", err)
	}
	if len(likes) != 1 || likes[0].UserID != bobID {
		t.Errorf("Likes = %v, want one like by bob", likes)
	}

	// Liking again is rejected and the count stays at one.
	if _, err := svc.Like(ctx, bobID, post.ID); !errors.Is(err, apperror.ErrDuplicate) {
		t.Errorf("second Like() error = %v, want ErrDuplicate", err)
	}
	current, err := svc.GetByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if len(current.Likes) != 1 {
		t.Errorf("Likes count after double like = %d, want 1", len(current.Likes))
	}

	likes, err = svc.Unlike(ctx, bobID, post.ID)
	if err != nil {
		t.Fatalf("Unlike() error = %v", err)
	}
	if len(likes) != 0 {
		t.Errorf("Likes count after unlike = %d, want 0", len(likes))
	}
}

func TestPostUnlike_NeverLiked(t *testing.T) {
	svc, users := newTestPostService(t)
	ctx := context.Background()
	annID := addUser(t, users, "Ann", "ann@example.com")
	bobID := addUser(t, users, "Bob", "bob@example.com")

	post, err := svc.Create(ctx, annID, "unliked")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := svc.Unlike(ctx, bobID, post.ID); !errors.Is(err, apperror.ErrDuplicate) {
		t.Errorf("error = %v, want ErrDuplicate", err)
	}
}

func TestPostLike_NewestFirst(t *testing.T) {
	svc, users := newTestPostService(t)
	ctx := context.Background()
	annID := addUser(t, users, "Ann", "ann@example.com")
	bobID := addUser(t, users, "Bob", "bob@example.com")

	post, err := svc.Create(ctx, annID, "popular")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := svc.Like(ctx, annID, post.ID); err != nil {
		t.Fatalf("Like() error = %v", err)
	}
	likes, err := svc.Like(ctx, bobID, post.ID)
	if err != nil {
		t.Fatalf("Like() error = %v", err)
	}

	if likes[0].UserID != bobID {
		t.Errorf("Likes[0].UserID = %q, want the most recent liker first", likes[0].UserID)
	}
}

func TestComments_AddAndRemove(t *testing.T) {
	svc, users := newTestPostService(t)
	ctx := context.Background()
	annID := addUser(t, users, "Ann", "ann@example.com")
	bobID := addUser(t, users, "Bob", "bob@example.com")

	post, err := svc.Create(ctx, annID, "discuss")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	comments, err := svc.AddComment(ctx, bobID, post.ID, "first!")
	if err != nil {
		t.Fatalf("AddComment() error = %v", err)
	}
	if len(comments) != 1 {
		t.Fatalf("Comments count = %d, want 1", len(comments))
	}
	if comments[0].Name != "Bob" {
		t.Errorf("comment author = %q, want the commenter's snapshot", comments[0].Name)
	}
	if comments[0].ID == "" {
		t.Error("comments must get their own IDs")
	}

	comments, err = svc.AddComment(ctx, annID, post.ID, "thanks for reading")
	if err != nil {
		t.Fatalf("AddComment() error = %v", err)
	}
	if comments[0].Name != "Ann" {
		t.Errorf("Comments[0].Name = %q, want the newest comment first", comments[0].Name)
	}

	comments, err = svc.RemoveComment(ctx, bobID, post.ID, comments[1].ID)
	if err != nil {
		t.Fatalf("RemoveComment() error = %v", err)
	}
	if len(comments) != 1 {
		t.Errorf("Comments count after removal = %d, want 1", len(comments))
	}
}

func TestRemoveComment_AuthorOnly(t *testing.T) {
	svc, users := newTestPostService(t)
	ctx := context.Background()
	annID := addUser(t, users, "Ann", "ann@example.com")
	bobID := addUser(t, users, "Bob", "bob@example.com")

	post, err := svc.Create(ctx, annID, "my post")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	comments, err := svc.AddComment(ctx, bobID, post.ID, "bob's comment")
	if err != nil {
		t.Fatalf("AddComment() error = %v", err)
	}

	// Even the post's owner can't remove someone else's comment.
	if _, err := svc.RemoveComment(ctx, annID, post.ID, comments[0].ID); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("error = %v, want ErrForbidden", err)
	}
}

func TestRemoveComment_UnknownID(t *testing.T) {
	svc, users := newTestPostService(t)
	ctx := context.Background()
	annID := addUser(t, users, "Ann", "ann@example.com")

	post, err := svc.Create(ctx, annID, "quiet post")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := svc.RemoveComment(ctx, annID, post.ID, "no-such-comment"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
