package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-shipy/models"
)

//go:generate mockgen -destination=../mock/store_mock.go -package=mock github.com/MKhiriev/go-shipy/internal/store UserRepository,SessionRepository

// UserRepository is the user directory: lookup by email and atomic creation.
type UserRepository interface {
	// CreateUser inserts a user inside one transaction and returns it with
	// UserID and CreatedAt populated. Returns [ErrEmailAlreadyExists] on a
	// duplicate email.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByEmail performs an exact, case-sensitive match.
	// Returns [ErrUserNotFound] on a miss.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
}

// SessionRepository persists server-side sessions.
type SessionRepository interface {
	CreateSession(ctx context.Context, session models.Session) error
	// FindSession returns [ErrSessionNotFound] when the row does not exist.
	// Expiry is not checked here.
	FindSession(ctx context.Context, sessionID string) (models.Session, error)
	// DeleteSession is idempotent.
	DeleteSession(ctx context.Context, sessionID string) error
	// DeleteExpiredSessions removes every session expired at now and
	// returns how many rows were deleted.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// ErrorClassificator maps a driver error to an [ErrorClassification].
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
