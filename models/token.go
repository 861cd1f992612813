package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a signed session token.
//
// The "sub" claim carries the user ID and the "jti" claim carries the
// server-side session ID, so the token alone is never enough to
// authenticate: the session row must still exist.
type Token struct {
	// RegisteredClaims provides access to the standard JWT claim set.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`
}

// GetUserID parses the "sub" claim as a base-10 int64.
func (t *Token) GetUserID() (int64, error) {
	userIDString, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(userIDString, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// SessionID returns the "jti" claim.
func (t *Token) SessionID() string {
	return t.ID
}

func (t *Token) String() string {
	return t.SignedString
}
