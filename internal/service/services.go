package service

import (
	"github.com/MKhiriev/go-shipy/internal/config"
	"github.com/MKhiriev/go-shipy/internal/logger"
	"github.com/MKhiriev/go-shipy/internal/store"
	"github.com/MKhiriev/go-shipy/internal/throttle"
	"github.com/MKhiriev/go-shipy/internal/utils"
	"github.com/MKhiriev/go-shipy/models"
)

type Services struct {
	AuthService      AuthService
	SessionService   SessionService
	PrincipalService PrincipalService
	AppInfoService   AppInfoService
}

func NewServices(
	storages *store.Storages,
	loginThrottle throttle.LoginThrottle,
	cfg config.StructuredConfig,
	buildInfo models.AppBuildInfo,
	logger *logger.Logger,
) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, buildInfo, logger)
	if err != nil {
		return nil, err
	}

	hasher := NewPasswordHasher(ArgonParamsFromConfig(cfg.App))
	sessionService := NewSessionService(storages.SessionRepository, utils.NewUUIDGenerator(), cfg.App, logger)

	return &Services{
		AuthService:      NewAuthService(storages.UserRepository, sessionService, loginThrottle, hasher, cfg.App, logger),
		SessionService:   sessionService,
		PrincipalService: NewPrincipalService(sessionService, storages.UserRepository, logger),
		AppInfoService:   appInfoService,
	}, nil
}
