package handler

import (
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/sakif/devconnect/internal/auth"
	"github.com/sakif/devconnect/internal/model"
	"github.com/sakif/devconnect/internal/service"
)

// ProfileHandler manages career profiles and their experience and
// education sub-entries.
type ProfileHandler struct {
	profiles *service.ProfileService
	logger   *slog.Logger
}

func NewProfileHandler(profiles *service.ProfileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, logger: logger}
}

type profileRequest struct {
	Designation    string `json:"designation"`
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	GithubUsername string `json:"githubusername"`
	Skills         string `json:"skills"` // comma-separated
	Youtube        string `json:"youtube"`
	Facebook       string `json:"facebook"`
	Twitter        string `json:"twitter"`
	Instagram      string `json:"instagram"`
	Linkedin       string `json:"linkedin"`
}

func (r profileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Designation,
			validation.Required.Error("Designation is required")),
		validation.Field(&r.Skills,
			validation.Required.Error("Skills are required")),
	)
}

type experienceRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

func (r experienceRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("Title is required")),
		validation.Field(&r.Company,
			validation.Required.Error("Company Name is required")),
		validation.Field(&r.From,
			validation.Required.Error("From date is required")),
	)
}

type educationRequest struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

func (r educationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.School,
			validation.Required.Error("School/University is required")),
		validation.Field(&r.Degree,
			validation.Required.Error("Degree is required")),
		validation.Field(&r.FieldOfStudy,
			validation.Required.Error("Field of study is required")),
		validation.Field(&r.From,
			validation.Required.Error("From date is required")),
	)
}

// HandleGetMine returns the caller's own profile.
//
// HTTP: GET /api/profile/me (protected)
func (h *ProfileHandler) HandleGetMine(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	profile, err := h.profiles.GetMine(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// HandleUpsert creates or updates the caller's profile.
//
// HTTP: POST /api/profile (protected)
func (h *ProfileHandler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req profileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, err)
		return
	}

	profile, err := h.profiles.Upsert(r.Context(), userID, service.ProfileInput{
		Designation:    req.Designation,
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Skills:         req.Skills,
		Socials: model.SocialLinks{
			Youtube:   req.Youtube,
			Facebook:  req.Facebook,
			Twitter:   req.Twitter,
			Instagram: req.Instagram,
			Linkedin:  req.Linkedin,
		},
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// HandleList returns every profile.
//
// HTTP: GET /api/profile/all (public)
func (h *ProfileHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profiles.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"profiles": profiles})
}

// HandleGetByUserID returns another user's profile.
//
// HTTP: GET /api/profile/user/{userID} (public)
func (h *ProfileHandler) HandleGetByUserID(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")

	profile, err := h.profiles.GetByUserID(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// HandleAddExperience prepends a work-history entry.
//
// HTTP: PUT /api/profile/experience (protected)
func (h *ProfileHandler) HandleAddExperience(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req experienceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, err)
		return
	}

	profile, err := h.profiles.AddExperience(r.Context(), userID, model.Experience{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// HandleRemoveExperience deletes an entry by its ID.
//
// HTTP: DELETE /api/profile/experience/{entryID} (protected)
func (h *ProfileHandler) HandleRemoveExperience(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	profile, err := h.profiles.RemoveExperience(r.Context(), userID, r.PathValue("entryID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// HandleAddEducation prepends a schooling entry.
//
// HTTP: PUT /api/profile/education (protected)
func (h *ProfileHandler) HandleAddEducation(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req educationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, err)
		return
	}

	profile, err := h.profiles.AddEducation(r.Context(), userID, model.Education{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// HandleRemoveEducation deletes an entry by its ID.
//
// HTTP: DELETE /api/profile/education/{entryID} (protected)
func (h *ProfileHandler) HandleRemoveEducation(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	profile, err := h.profiles.RemoveEducation(r.Context(), userID, r.PathValue("entryID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}
