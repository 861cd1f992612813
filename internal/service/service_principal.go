package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-shipy/internal/logger"
	"github.com/MKhiriev/go-shipy/internal/store"
	"github.com/MKhiriev/go-shipy/models"
)

type principalService struct {
	sessions SessionService
	users    store.UserRepository
	logger   *logger.Logger
}

func NewPrincipalService(sessions SessionService, users store.UserRepository, logger *logger.Logger) PrincipalService {
	return &principalService{
		sessions: sessions,
		users:    users,
		logger:   logger,
	}
}

// CurrentUser returns the user behind token. A live session whose user no
// longer exists is treated as anonymous.
func (p *principalService) CurrentUser(ctx context.Context, token string) (models.User, bool, error) {
	userID, ok, err := p.sessions.Resolve(ctx, token)
	if err != nil || !ok {
		return models.User{}, false, err
	}

	user, err := p.users.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrUserNotFound) {
		logger.FromContext(ctx).Warn().Int64("user_id", userID).Msg("session points to a missing user")
		return models.User{}, false, nil
	}
	if err != nil {
		return models.User{}, false, err
	}

	return user, true, nil
}
