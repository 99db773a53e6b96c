package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rs/xid"

	"github.com/sakif/devconnect/internal/apperror"
	"github.com/sakif/devconnect/internal/model"
	"github.com/sakif/devconnect/internal/repository"
)

// ProfileService handles the one-per-user career profile and its
// nested experience/education entries.
type ProfileService struct {
	profiles repository.ProfileRepository
	logger   *slog.Logger
}

func NewProfileService(profiles repository.ProfileRepository, logger *slog.Logger) *ProfileService {
	return &ProfileService{profiles: profiles, logger: logger}
}

// ProfileInput carries the upsertable profile fields. Skills arrives as
// the API's comma-separated string ("go, sql,docker") and is split and
// trimmed here.
type ProfileInput struct {
	Designation    string
	Company        string
	Website        string
	Location       string
	Bio            string
	GithubUsername string
	Skills         string
	Socials        model.SocialLinks
}

// Upsert creates or updates the caller's profile. Existing experience
// and education entries survive an upsert — the operation replaces the
// flat fields and skills, not the entry lists.
func (s *ProfileService) Upsert(ctx context.Context, userID string, in ProfileInput) (*model.Profile, error) {
	skills := splitSkills(in.Skills)
	if len(skills) == 0 {
		return nil, apperror.ValidationFailed("skills", "Skills are required")
	}

	profile := &model.Profile{
		UserID:         userID,
		Designation:    strings.TrimSpace(in.Designation),
		Company:        strings.TrimSpace(in.Company),
		Website:        strings.TrimSpace(in.Website),
		Location:       strings.TrimSpace(in.Location),
		Bio:            strings.TrimSpace(in.Bio),
		GithubUsername: strings.TrimSpace(in.GithubUsername),
		Skills:         skills,
		Socials:        in.Socials,
	}

	// Carry the existing entry lists through the upsert.
	if existing, err := s.profiles.GetByUserID(ctx, userID); err == nil {
		profile.Experience = existing.Experience
		profile.Education = existing.Education
	}

	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("service/profile: upserting profile for user %s: %w", userID, err)
	}

	s.logger.Info("profile upserted", slog.String("userID", userID))

	return s.profiles.GetByUserID(ctx, userID)
}

// GetMine returns the caller's own profile.
func (s *ProfileService) GetMine(ctx context.Context, userID string) (*model.Profile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

// GetByUserID returns another user's profile (public route).
func (s *ProfileService) GetByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

// List returns all profiles (public route).
func (s *ProfileService) List(ctx context.Context) ([]model.Profile, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/profile: listing profiles: %w", err)
	}
	return profiles, nil
}

// AddExperience prepends a work-history entry to the caller's profile,
// assigning it an ID for later removal.
func (s *ProfileService) AddExperience(ctx context.Context, userID string, entry model.Experience) (*model.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry.ID = xid.New().String()
	profile.Experience = append([]model.Experience{entry}, profile.Experience...)

	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("service/profile: saving experience for user %s: %w", userID, err)
	}

	return profile, nil
}

// RemoveExperience deletes the entry with the given ID. An unknown ID
// is NotFound, never a silent no-op.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID, entryID string) (*model.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := profile.Experience[:0:0]
	found := false
	for _, e := range profile.Experience {
		if e.ID == entryID {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return nil, apperror.NotFound("Experience id not found")
	}
	profile.Experience = kept

	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("service/profile: removing experience for user %s: %w", userID, err)
	}

	return profile, nil
}

// AddEducation prepends a schooling entry, mirroring AddExperience.
func (s *ProfileService) AddEducation(ctx context.Context, userID string, entry model.Education) (*model.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry.ID = xid.New().String()
	profile.Education = append([]model.Education{entry}, profile.Education...)

	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("service/profile: saving education for user %s: %w", userID, err)
	}

	return profile, nil
}

// RemoveEducation deletes the entry with the given ID.
func (s *ProfileService) RemoveEducation(ctx context.Context, userID, entryID string) (*model.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := profile.Education[:0:0]
	found := false
	for _, e := range profile.Education {
		if e.ID == entryID {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return nil, apperror.NotFound("Education id not found")
	}
	profile.Education = kept

	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("service/profile: removing education for user %s: %w", userID, err)
	}

	return profile, nil
}

// splitSkills turns "go, sql, docker" into ["go", "sql", "docker"],
// dropping empty segments.
func splitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			skills = append(skills, p)
		}
	}
	return skills
}
