package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/devconnect/internal/apperror"
	"github.com/sakif/devconnect/internal/model"
	"github.com/sakif/devconnect/internal/repository"
)

var _ repository.PostRepository = (*PostStore)(nil)

// PostStore implements repository.PostRepository.
type PostStore struct {
	db *DB
}

// Create inserts a post with empty likes and comments.
func (s *PostStore) Create(ctx context.Context, post *model.Post) error {
	post.ID = xid.New().String()
	post.CreatedAt = time.Now()
	if post.Likes == nil {
		post.Likes = []model.Like{}
	}
	if post.Comments == nil {
		post.Comments = []model.Comment{}
	}

	likes, comments, err := marshalPostDocs(post)
	if err != nil {
		return err
	}

	_, err = s.db.conn.ExecContext(ctx,
		`INSERT INTO posts (id, user_id, name, avatar, text, likes, comments, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		post.ID,
		post.UserID,
		post.Name,
		post.Avatar,
		post.Text,
		likes,
		comments,
		post.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting post: %w", err)
	}

	return nil
}

// GetByID loads a single post with its nested likes and comments.
func (s *PostStore) GetByID(ctx context.Context, id string) (*model.Post, error) {
	row := s.db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, name, avatar, text, likes, comments, created_at
		 FROM posts WHERE id = ?`,
		id,
	)

	post, err := scanPost(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("Post not found")
		}
		return nil, fmt.Errorf("sqlite: getting post %s: %w", id, err)
	}

	return post, nil
}

// List returns all posts, newest first.
func (s *PostStore) List(ctx context.Context) ([]model.Post, error) {
	rows, err := s.db.conn.QueryContext(ctx,
		`SELECT id, user_id, name, avatar, text, likes, comments, created_at
		 FROM posts ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing posts: %w", err)
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		post, err := scanPost(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning post: %w", err)
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: listing posts: %w", err)
	}

	return posts, nil
}

// Update rewrites the post's mutable state — text never changes after
// creation, so in practice this persists edited likes and comments.
func (s *PostStore) Update(ctx context.Context, post *model.Post) error {
	likes, comments, err := marshalPostDocs(post)
	if err != nil {
		return err
	}

	res, err := s.db.conn.ExecContext(ctx,
		`UPDATE posts SET likes = ?, comments = ? WHERE id = ?`,
		likes,
		comments,
		post.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating post %s: %w", post.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: updating post %s: %w", post.ID, err)
	}
	if affected == 0 {
		return apperror.NotFound("Post not found")
	}

	return nil
}

// Delete removes a post.
func (s *PostStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.conn.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting post %s: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: deleting post %s: %w", id, err)
	}
	if affected == 0 {
		return apperror.NotFound("Post not found")
	}

	return nil
}

func marshalPostDocs(p *model.Post) (likes, comments []byte, err error) {
	if likes, err = json.Marshal(p.Likes); err != nil {
		return nil, nil, fmt.Errorf("sqlite: marshaling likes: %w", err)
	}
	if comments, err = json.Marshal(p.Comments); err != nil {
		return nil, nil, fmt.Errorf("sqlite: marshaling comments: %w", err)
	}
	return likes, comments, nil
}

func scanPost(scan func(dest ...any) error) (*model.Post, error) {
	var (
		p               model.Post
		likes, comments []byte
	)

	err := scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Avatar,
		&p.Text,
		&likes,
		&comments,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(likes, &p.Likes); err != nil {
		return nil, fmt.Errorf("decoding likes: %w", err)
	}
	if err := json.Unmarshal(comments, &p.Comments); err != nil {
		return nil, fmt.Errorf("decoding comments: %w", err)
	}

	return &p, nil
}
