package service

import (
	"context"

	"github.com/MKhiriev/go-shipy/internal/validators"
	"github.com/MKhiriev/go-shipy/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService orchestrates signup, login and logout.
type AuthService interface {
	// Signup validates form, creates the user and issues a session.
	// Field errors are recorded on form and the returned error wraps
	// ErrInvalidDataProvided.
	Signup(ctx context.Context, form *validators.Form) (models.User, models.CookieMutation, error)

	// Login checks the throttle for clientKey, verifies the credentials in
	// form and issues a session. Both ErrThrottled and ErrInvalidCredentials
	// record the same generic message on the form.
	Login(ctx context.Context, clientKey string, form *validators.Form) (models.User, models.CookieMutation, error)

	// Logout revokes the session behind token, if any, and always returns
	// a clearing mutation.
	Logout(ctx context.Context, token string) models.CookieMutation
}

// SessionService issues, resolves and revokes server-side sessions.
type SessionService interface {
	Issue(ctx context.Context, userID int64) (models.CookieMutation, error)
	// Resolve returns ok == false for an absent, malformed, forged or
	// expired token and for a revoked session. err is reserved for storage
	// failures.
	Resolve(ctx context.Context, token string) (userID int64, ok bool, err error)
	Revoke(ctx context.Context, token string) models.CookieMutation
}

// PrincipalService resolves the user behind a session token.
type PrincipalService interface {
	CurrentUser(ctx context.Context, token string) (models.User, bool, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify never fails: malformed stored hashes simply do not match.
	Verify(password, encoded string) bool
}

type AppInfoService interface {
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}
