package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/devconnect/internal/github"
)

// GithubHandler proxies GitHub repository listings for profile pages.
type GithubHandler struct {
	client *github.Client
	logger *slog.Logger
}

func NewGithubHandler(client *github.Client, logger *slog.Logger) *GithubHandler {
	return &GithubHandler{client: client, logger: logger}
}

// HandleRepos returns a user's five most recently updated public
// repositories, forwarded from the GitHub API.
//
// HTTP: GET /api/profile/github/{username} (public)
func (h *GithubHandler) HandleRepos(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	repos, err := h.client.Repos(r.Context(), username)
	if err != nil {
		h.logger.Warn("github repos lookup failed",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, repos)
}
