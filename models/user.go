package models

import "time"

// User represents a student account. It doubles as the top-level remote
// document at users/{userID}: identity fields plus the merge-written
// preferences document.
type User struct {
	// UserID is the internal unique identifier of the user.
	// Used at the persistence layer and in document paths.
	UserID int64 `json:"-"`

	// Login is the unique login identifier used during authentication.
	Login string `json:"login"`

	// Name is the display name of the student. Non-sensitive.
	Name string `json:"name"`

	// Password carries the plaintext password on register/login requests
	// only. It is never persisted and never returned in responses.
	Password string `json:"password,omitempty"`

	// PasswordHash is the argon2id encoded hash stored server-side.
	// Never exposed via JSON.
	PasswordHash string `json:"-"`

	// Preferences is the student's preferences document. Merge-written
	// by the preferences syncer.
	Preferences Preferences `json:"preferences"`

	// CreatedAt is when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
