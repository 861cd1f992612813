package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-shipy/internal/config"
	"github.com/MKhiriev/go-shipy/internal/logger"
	"github.com/MKhiriev/go-shipy/internal/store"
	"github.com/MKhiriev/go-shipy/internal/utils"
	"github.com/MKhiriev/go-shipy/models"
)

// sessionService binds signed tokens to rows in the sessions table.
//
// The cookie value is an HS256 token whose jti is the session ID and whose
// sub is the user ID. A token is accepted only if its signature, issuer and
// expiry are valid, the session row exists and is not expired, and the row
// belongs to the same user as the token.
type sessionService struct {
	sessions store.SessionRepository
	ids      utils.IDGenerator

	signKey  string
	issuer   string
	duration time.Duration

	now    func() time.Time
	logger *logger.Logger
}

func NewSessionService(sessions store.SessionRepository, ids utils.IDGenerator, cfg config.App, logger *logger.Logger) SessionService {
	return &sessionService{
		sessions: sessions,
		ids:      ids,
		signKey:  cfg.SessionSignKey,
		issuer:   cfg.SessionIssuer,
		duration: cfg.SessionDuration,
		now:      time.Now,
		logger:   logger,
	}
}

func (s *sessionService) Issue(ctx context.Context, userID int64) (models.CookieMutation, error) {
	log := logger.FromContext(ctx)

	now := s.now().UTC().Truncate(time.Second)
	session := models.Session{
		SessionID: s.ids.Generate(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.duration),
	}

	if err := s.sessions.CreateSession(ctx, session); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("error saving session")
		return models.CookieMutation{}, fmt.Errorf("%w: %w", ErrSessionIssueFailed, err)
	}

	token, err := utils.GenerateSessionToken(s.issuer, session.SessionID, userID, session.ExpiresAt, s.signKey)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("error signing session token")
		// the row is useless without a cookie pointing to it
		if delErr := s.sessions.DeleteSession(ctx, session.SessionID); delErr != nil {
			log.Err(delErr).Msg("error removing orphaned session")
		}
		return models.CookieMutation{}, fmt.Errorf("%w: %w", ErrSessionIssueFailed, err)
	}

	log.Debug().Int64("user_id", userID).Time("expires_at", session.ExpiresAt).Msg("session issued")

	return models.CookieMutation{
		Value:     token.String(),
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (s *sessionService) Resolve(ctx context.Context, token string) (int64, bool, error) {
	if token == "" {
		return 0, false, nil
	}

	log := logger.FromContext(ctx)

	parsed, err := utils.ValidateAndParseSessionToken(token, s.signKey, s.issuer, jwt.WithTimeFunc(s.now))
	if err != nil {
		log.Debug().Err(err).Msg("session token rejected")
		return 0, false, nil
	}

	tokenUserID, err := parsed.GetUserID()
	if err != nil {
		return 0, false, nil
	}

	session, err := s.sessions.FindSession(ctx, parsed.SessionID())
	if errors.Is(err, store.ErrSessionNotFound) {
		log.Debug().Str("session_id", parsed.SessionID()).Msg("session is revoked or unknown")
		return 0, false, nil
	}
	if err != nil {
		log.Err(err).Msg("error loading session")
		return 0, false, err
	}

	if session.Expired(s.now()) {
		return 0, false, nil
	}
	if session.UserID != tokenUserID {
		log.Warn().
			Str("session_id", session.SessionID).
			Int64("token_sub", tokenUserID).
			Msg("session token subject does not match session owner")
		return 0, false, nil
	}

	return session.UserID, true, nil
}

// Revoke deletes the session behind token. Signature is checked but expiry is
// not, so an expired token still removes its row. Storage errors are logged
// and the cookie is cleared regardless.
func (s *sessionService) Revoke(ctx context.Context, token string) models.CookieMutation {
	if token == "" {
		return models.ClearCookie()
	}

	log := logger.FromContext(ctx)

	parsed, err := utils.ValidateAndParseSessionToken(token, s.signKey, s.issuer, jwt.WithoutClaimsValidation())
	if err != nil {
		return models.ClearCookie()
	}

	if err = s.sessions.DeleteSession(ctx, parsed.SessionID()); err != nil {
		log.Err(err).Str("session_id", parsed.SessionID()).Msg("error revoking session")
	}

	return models.ClearCookie()
}
