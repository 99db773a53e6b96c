package model

import "time"

// Profile is the one-per-user career profile. It is document-shaped:
// skills, socials, experience, and education live inside the profile
// row (JSON columns in SQLite) and have no lifecycle of their own.
// They are created, edited, and deleted through the profile that owns
// them.
type Profile struct {
	ID             string       `json:"id"`
	UserID         string       `json:"user"`
	Designation    string       `json:"designation"`
	Company        string       `json:"company,omitempty"`
	Website        string       `json:"website,omitempty"`
	Location       string       `json:"location,omitempty"`
	Bio            string       `json:"bio,omitempty"`
	GithubUsername string       `json:"githubusername,omitempty"`
	Skills         []string     `json:"skills"`
	Socials        SocialLinks  `json:"socials"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`

	// Owner is populated on reads by joining the users table; it is
	// never written back.
	Owner *Owner `json:"owner,omitempty"`
}

// SocialLinks maps platform to URL. Empty entries are omitted from the
// JSON representation so the document only carries what was set.
type SocialLinks struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Experience is a work-history entry. Each entry gets its own ID at
// insert time so it can later be removed by identity rather than by
// position in the list.
type Experience struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	From        string `json:"from"`
	To          string `json:"to,omitempty"`
	Current     bool   `json:"current"`
	Description string `json:"description,omitempty"`
}

// Education is a schooling entry, identified the same way as Experience.
type Education struct {
	ID           string `json:"id"`
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to,omitempty"`
	Current      bool   `json:"current"`
	Description  string `json:"description,omitempty"`
}
