package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
)

var (
	userColumns    = []string{"user_id", "email", "password_hash", "created_at"}
	sessionColumns = []string{"session_id", "user_id", "created_at", "expires_at"}
)

func (db *DB) buildCreateUserQuery(email, passwordHash string, createdAt time.Time) (string, []any, error) {
	return db.builder.
		Insert("users").
		Columns("email", "password_hash", "created_at").
		Values(email, passwordHash, createdAt).
		Suffix("RETURNING user_id, email, password_hash, created_at").
		ToSql()
}

func (db *DB) buildFindUserQuery(where sq.Eq) (string, []any, error) {
	return db.builder.
		Select(userColumns...).
		From("users").
		Where(where).
		Limit(1).
		ToSql()
}

func (db *DB) buildCreateSessionQuery(sessionID string, userID int64, createdAt, expiresAt time.Time) (string, []any, error) {
	return db.builder.
		Insert("sessions").
		Columns(sessionColumns...).
		Values(sessionID, userID, createdAt, expiresAt).
		ToSql()
}

func (db *DB) buildFindSessionQuery(sessionID string) (string, []any, error) {
	return db.builder.
		Select(sessionColumns...).
		From("sessions").
		Where(sq.Eq{"session_id": sessionID}).
		ToSql()
}

func (db *DB) buildDeleteSessionQuery(sessionID string) (string, []any, error) {
	return db.builder.
		Delete("sessions").
		Where(sq.Eq{"session_id": sessionID}).
		ToSql()
}

func (db *DB) buildDeleteExpiredSessionsQuery(now time.Time) (string, []any, error) {
	return db.builder.
		Delete("sessions").
		Where(sq.LtOrEq{"expires_at": now}).
		ToSql()
}
