package handler

import (
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/sakif/devconnect/internal/auth"
	"github.com/sakif/devconnect/internal/model"
	"github.com/sakif/devconnect/internal/service"
)

// PostHandler manages posts, likes, and comments.
type PostHandler struct {
	posts  *service.PostService
	logger *slog.Logger
}

func NewPostHandler(posts *service.PostService, logger *slog.Logger) *PostHandler {
	return &PostHandler{posts: posts, logger: logger}
}

type postRequest struct {
	Text string `json:"text"`
}

func (r postRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text,
			validation.Required.Error("Text is required")),
	)
}

type commentRequest struct {
	Text string `json:"text"`
}

func (r commentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text,
			validation.Required.Error("Comment is a required field")),
	)
}

// HandleCreate creates a post authored by the caller.
//
// HTTP: POST /api/posts (protected)
func (h *PostHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req postRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, err)
		return
	}

	post, err := h.posts.Create(r.Context(), userID, req.Text)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]*model.Post{"post": post})
}

// HandleList returns all posts, newest first.
//
// HTTP: GET /api/posts (protected)
func (h *PostHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]model.Post{"posts": posts})
}

// HandleGetByID returns one post.
//
// HTTP: GET /api/posts/{id} (protected)
func (h *PostHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]*model.Post{"post": post})
}

// HandleDelete deletes the caller's own post. A non-owner gets 403 and
// the post survives.
//
// HTTP: DELETE /api/posts/{id} (protected)
func (h *PostHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	if err := h.posts.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"msg": "Post deleted successfully"})
}

// HandleLike adds the caller's like. The response body is just the
// updated likes array — the sub-collection the request changed.
//
// HTTP: PUT /api/posts/like/{id} (protected)
func (h *PostHandler) HandleLike(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	likes, err := h.posts.Like(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]model.Like{"likes": likes})
}

// HandleUnlike removes the caller's like.
//
// HTTP: DELETE /api/posts/unlike/{id} (protected)
func (h *PostHandler) HandleUnlike(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	likes, err := h.posts.Unlike(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]model.Like{"likes": likes})
}

// HandleAddComment adds a comment to a post.
//
// HTTP: POST /api/posts/comment/{id} (protected)
func (h *PostHandler) HandleAddComment(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req commentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, err)
		return
	}

	comments, err := h.posts.AddComment(r.Context(), userID, r.PathValue("id"), req.Text)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]model.Comment{"comments": comments})
}

// HandleRemoveComment deletes the caller's own comment.
//
// HTTP: DELETE /api/posts/comment/{id}/{commentID} (protected)
func (h *PostHandler) HandleRemoveComment(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	comments, err := h.posts.RemoveComment(r.Context(), userID, r.PathValue("id"), r.PathValue("commentID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]model.Comment{"comments": comments})
}
