package model

import "time"

// Post is a user-authored status update. Name and Avatar are a snapshot
// of the author at creation time — the post keeps rendering the same
// byline even if the author later changes their profile. Likes and
// comments are nested data owned by the post, not separate entities.
type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Text      string    `json:"text"`
	Likes     []Like    `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
}

// Like records that a user liked the post. A given user appears in a
// post's likes at most once — the service rejects a second like rather
// than absorbing it.
type Like struct {
	UserID string `json:"user"`
}

// Comment is a nested reply on a post, with its own ID (for removal by
// identity) and an author snapshot like the post itself.
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// LikedBy reports whether userID already appears in the post's likes.
func (p *Post) LikedBy(userID string) bool {
	for _, l := range p.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}

// FindComment returns the comment with the given ID, or nil.
func (p *Post) FindComment(commentID string) *Comment {
	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			return &p.Comments[i]
		}
	}
	return nil
}
