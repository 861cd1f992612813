package models

import "time"

// Session is the server-side record behind a session cookie.
// A session is live while it exists and is not expired.
type Session struct {
	SessionID string    `json:"session_id"`
	UserID    int64     `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TableName returns the name of the database table
// associated with the Session model.
func (s Session) TableName() string {
	return "sessions"
}

// Expired reports whether the session is no longer valid at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// CookieMutation describes how the session cookie must change on a response.
//
// When Clear is set the cookie is removed and Value is ignored.
type CookieMutation struct {
	Value     string
	ExpiresAt time.Time
	Clear     bool
}

// ClearCookie returns a mutation that removes the session cookie.
func ClearCookie() CookieMutation {
	return CookieMutation{Clear: true}
}
