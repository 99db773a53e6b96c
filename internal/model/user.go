// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// Password stores the bcrypt hash, never the plaintext. The `json:"-"`
// tag keeps it out of every API response — the handlers serialize the
// model directly, so the tag is the single point of enforcement.
//
// Avatar is derived deterministically from the email at registration
// time (Gravatar URL), so two registrations with the same email would
// always produce the same picture.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // bcrypt hash
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
}

// Owner is the subset of a user embedded in profile and post reads,
// mirroring what the UI renders next to a resource (name + picture).
type Owner struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}
