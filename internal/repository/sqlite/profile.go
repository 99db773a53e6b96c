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

var _ repository.ProfileRepository = (*ProfileStore)(nil)

// ProfileStore implements repository.ProfileRepository.
type ProfileStore struct {
	db *DB
}

// Upsert creates or replaces the caller's profile. The UNIQUE index on
// user_id enforces one profile per user; we check for an existing row
// first so an update keeps the original ID and CreatedAt.
func (s *ProfileStore) Upsert(ctx context.Context, profile *model.Profile) error {
	skills, socials, experience, education, err := marshalProfileDocs(profile)
	if err != nil {
		return err
	}

	var existingID string
	var createdAt time.Time
	err = s.db.conn.QueryRowContext(ctx,
		`SELECT id, created_at FROM profiles WHERE user_id = ?`, profile.UserID,
	).Scan(&existingID, &createdAt)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("sqlite: looking up profile for user %s: %w", profile.UserID, err)
	}

	now := time.Now()

	if existingID != "" {
		profile.ID = existingID
		profile.CreatedAt = createdAt
		profile.UpdatedAt = now
		_, err = s.db.conn.ExecContext(ctx,
			`UPDATE profiles
			 SET designation = ?, company = ?, website = ?, location = ?, bio = ?,
			     github_username = ?, skills = ?, socials = ?, experience = ?,
			     education = ?, updated_at = ?
			 WHERE id = ?`,
			profile.Designation,
			profile.Company,
			profile.Website,
			profile.Location,
			profile.Bio,
			profile.GithubUsername,
			skills,
			socials,
			experience,
			education,
			profile.UpdatedAt,
			profile.ID,
		)
		if err != nil {
			return fmt.Errorf("sqlite: updating profile %s: %w", profile.ID, err)
		}
		return nil
	}

	profile.ID = xid.New().String()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	_, err = s.db.conn.ExecContext(ctx,
		`INSERT INTO profiles (id, user_id, designation, company, website, location,
		                       bio, github_username, skills, socials, experience,
		                       education, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		profile.ID,
		profile.UserID,
		profile.Designation,
		profile.Company,
		profile.Website,
		profile.Location,
		profile.Bio,
		profile.GithubUsername,
		skills,
		socials,
		experience,
		education,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting profile for user %s: %w", profile.UserID, err)
	}

	return nil
}

const profileColumns = `p.id, p.user_id, p.designation, p.company, p.website,
	p.location, p.bio, p.github_username, p.skills, p.socials, p.experience,
	p.education, p.created_at, p.updated_at, u.name, u.avatar`

// GetByUserID loads a profile together with the owner's current name
// and avatar, joined in from the users table.
func (s *ProfileStore) GetByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	row := s.db.conn.QueryRowContext(ctx,
		`SELECT `+profileColumns+`
		 FROM profiles p JOIN users u ON u.id = p.user_id
		 WHERE p.user_id = ?`,
		userID,
	)

	profile, err := scanProfile(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("Profile does not exist")
		}
		return nil, fmt.Errorf("sqlite: getting profile for user %s: %w", userID, err)
	}

	return profile, nil
}

// List returns every profile with its owner snapshot, newest first.
func (s *ProfileStore) List(ctx context.Context) ([]model.Profile, error) {
	rows, err := s.db.conn.QueryContext(ctx,
		`SELECT `+profileColumns+`
		 FROM profiles p JOIN users u ON u.id = p.user_id
		 ORDER BY p.created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing profiles: %w", err)
	}
	defer rows.Close()

	profiles := []model.Profile{}
	for rows.Next() {
		profile, err := scanProfile(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning profile: %w", err)
		}
		profiles = append(profiles, *profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: listing profiles: %w", err)
	}

	return profiles, nil
}

// Delete removes the user's profile if one exists. Absence is not an
// error here — account deletion calls this unconditionally.
func (s *ProfileStore) Delete(ctx context.Context, userID string) error {
	_, err := s.db.conn.ExecContext(ctx, `DELETE FROM profiles WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("sqlite: deleting profile for user %s: %w", userID, err)
	}
	return nil
}

// marshalProfileDocs serializes the profile's nested collections for
// their JSON columns.
func marshalProfileDocs(p *model.Profile) (skills, socials, experience, education []byte, err error) {
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Experience == nil {
		p.Experience = []model.Experience{}
	}
	if p.Education == nil {
		p.Education = []model.Education{}
	}

	if skills, err = json.Marshal(p.Skills); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("sqlite: marshaling skills: %w", err)
	}
	if socials, err = json.Marshal(p.Socials); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("sqlite: marshaling socials: %w", err)
	}
	if experience, err = json.Marshal(p.Experience); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("sqlite: marshaling experience: %w", err)
	}
	if education, err = json.Marshal(p.Education); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("sqlite: marshaling education: %w", err)
	}
	return skills, socials, experience, education, nil
}

// scanProfile reads one profile row, decoding the JSON columns. It
// takes the Scan func so it works for both QueryRow and Rows.
func scanProfile(scan func(dest ...any) error) (*model.Profile, error) {
	var (
		p                                    model.Profile
		skills, socials, experience, education []byte
		ownerName, ownerAvatar               string
	)

	err := scan(
		&p.ID,
		&p.UserID,
		&p.Designation,
		&p.Company,
		&p.Website,
		&p.Location,
		&p.Bio,
		&p.GithubUsername,
		&skills,
		&socials,
		&experience,
		&education,
		&p.CreatedAt,
		&p.UpdatedAt,
		&ownerName,
		&ownerAvatar,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(skills, &p.Skills); err != nil {
		return nil, fmt.Errorf("decoding skills: %w", err)
	}
	if err := json.Unmarshal(socials, &p.Socials); err != nil {
		return nil, fmt.Errorf("decoding socials: %w", err)
	}
	if err := json.Unmarshal(experience, &p.Experience); err != nil {
		return nil, fmt.Errorf("decoding experience: %w", err)
	}
	if err := json.Unmarshal(education, &p.Education); err != nil {
		return nil, fmt.Errorf("decoding education: %w", err)
	}

	p.Owner = &model.Owner{Name: ownerName, Avatar: ownerAvatar}

	return &p, nil
}
