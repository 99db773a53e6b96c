package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/devconnect/internal/apperror"
	"github.com/sakif/devconnect/internal/model"
	"github.com/sakif/devconnect/internal/repository"
)

// PostService handles posts and their nested likes and comments.
//
// Every mutation on an existing post follows the same sequence: load
// the post, check ownership where the operation requires it, edit the
// nested collection in memory, persist the whole document. Two
// concurrent edits to the same post race on the final write — the
// store serializes per-row writes and the last one wins.
type PostService struct {
	posts  repository.PostRepository
	users  repository.UserRepository
	logger *slog.Logger
}

func NewPostService(posts repository.PostRepository, users repository.UserRepository, logger *slog.Logger) *PostService {
	return &PostService{posts: posts, users: users, logger: logger}
}

// Create persists a new post, snapshotting the author's current name
// and avatar into it.
func (s *PostService) Create(ctx context.Context, userID, text string) (*model.Post, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/post: loading author %s: %w", userID, err)
	}

	post := &model.Post{
		UserID: userID,
		Name:   user.Name,
		Avatar: user.Avatar,
		Text:   text,
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("service/post: creating post: %w", err)
	}

	s.logger.Info("post created",
		slog.String("postID", post.ID),
		slog.String("userID", userID),
	)

	return post, nil
}

// List returns all posts, newest first.
func (s *PostService) List(ctx context.Context) ([]model.Post, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/post: listing posts: %w", err)
	}
	return posts, nil
}

// GetByID returns a single post.
func (s *PostService) GetByID(ctx context.Context, id string) (*model.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// Delete removes a post. Only the post's owner may delete it.
func (s *PostService) Delete(ctx context.Context, userID, postID string) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.UserID != userID {
		return apperror.Forbidden("User is not authorized")
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		return fmt.Errorf("service/post: deleting post %s: %w", postID, err)
	}

	s.logger.Info("post deleted",
		slog.String("postID", postID),
		slog.String("userID", userID),
	)

	return nil
}

// Like records that userID liked the post. Liking a post twice is a
// Duplicate error, and the likes collection is left unchanged.
func (s *PostService) Like(ctx context.Context, userID, postID string) ([]model.Like, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.LikedBy(userID) {
		return nil, apperror.Duplicate("Post has already been liked")
	}

	post.Likes = append([]model.Like{{UserID: userID}}, post.Likes...)

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("service/post: liking post %s: %w", postID, err)
	}

	return post.Likes, nil
}

// Unlike removes userID's like. Unliking a post the user never liked is
// rejected the same way a double like is.
func (s *PostService) Unlike(ctx context.Context, userID, postID string) ([]model.Like, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if !post.LikedBy(userID) {
		return nil, apperror.Duplicate("Post has not yet been liked")
	}

	kept := post.Likes[:0:0]
	for _, l := range post.Likes {
		if l.UserID != userID {
			kept = append(kept, l)
		}
	}
	post.Likes = kept

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("service/post: unliking post %s: %w", postID, err)
	}

	return post.Likes, nil
}

// AddComment prepends a comment with its own ID and an author snapshot.
func (s *PostService) AddComment(ctx context.Context, userID, postID, text string) ([]model.Comment, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/post: loading commenter %s: %w", userID, err)
	}

	comment := model.Comment{
		ID:        xid.New().String(),
		UserID:    userID,
		Name:      user.Name,
		Avatar:    user.Avatar,
		Text:      text,
		CreatedAt: time.Now(),
	}
	post.Comments = append([]model.Comment{comment}, post.Comments...)

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("service/post: commenting on post %s: %w", postID, err)
	}

	return post.Comments, nil
}

// RemoveComment deletes a comment by ID. Only the comment's author may
// remove it; the post's owner has no special power over other people's
// comments here.
func (s *PostService) RemoveComment(ctx context.Context, userID, postID, commentID string) ([]model.Comment, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := post.FindComment(commentID)
	if comment == nil {
		return nil, apperror.NotFound("Comment does not exist")
	}

	if comment.UserID != userID {
		return nil, apperror.Forbidden("User is not authorized")
	}

	kept := post.Comments[:0:0]
	for _, c := range post.Comments {
		if c.ID != commentID {
			kept = append(kept, c)
		}
	}
	post.Comments = kept

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("service/post: removing comment %s: %w", commentID, err)
	}

	return post.Comments, nil
}
