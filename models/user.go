package models

import "time"

// User represents a registered account.
// PasswordHash is an argon2id PHC string and never leaves the server.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"-"`

	// Email is the unique login identifier, stored exactly as submitted.
	Email string `json:"email"`

	// PasswordHash is the self-describing salted hash of the password.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
