package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-shipy/internal/config"
	"github.com/MKhiriev/go-shipy/internal/logger"
	"github.com/MKhiriev/go-shipy/internal/store"
	"github.com/MKhiriev/go-shipy/internal/throttle"
	"github.com/MKhiriev/go-shipy/internal/validators"
	"github.com/MKhiriev/go-shipy/models"
)

// authService runs the signup, login and logout flows.
//
// Every step that rejects user input records its message on the form, so
// the handler only has to re-render it.
type authService struct {
	users    store.UserRepository
	sessions SessionService
	throttle throttle.LoginThrottle
	hasher   PasswordHasher

	signupValidator validators.Validator
	loginValidator  validators.Validator

	dummyHash string

	logger *logger.Logger
}

func NewAuthService(
	users store.UserRepository,
	sessions SessionService,
	loginThrottle throttle.LoginThrottle,
	hasher PasswordHasher,
	cfg config.App,
	logger *logger.Logger,
) AuthService {
	return &authService{
		users:           users,
		sessions:        sessions,
		throttle:        loginThrottle,
		hasher:          hasher,
		signupValidator: validators.NewSignupValidator(),
		loginValidator:  validators.NewLoginValidator(),
		dummyHash:       dummyArgon2Hash(ArgonParamsFromConfig(cfg)),
		logger:          logger,
	}
}

// Signup registers a new account and logs it in.
//
// The duplicate pre-check only produces a friendlier path; the unique index
// is what actually guarantees one account per email, and a lost race is
// reported through the same field error.
func (a *authService) Signup(ctx context.Context, form *validators.Form) (models.User, models.CookieMutation, error) {
	log := logger.FromContext(ctx)

	if err := a.signupValidator.Validate(ctx, form); err != nil {
		log.Debug().Err(err).Msg("signup form rejected")
		return models.User{}, models.CookieMutation{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	email := form.Get(validators.FieldEmail)

	_, err := a.users.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		return models.User{}, models.CookieMutation{}, a.duplicateEmail(ctx, form, store.ErrEmailAlreadyExists)
	case !errors.Is(err, store.ErrUserNotFound):
		log.Err(err).Msg("error checking email availability")
		return models.User{}, models.CookieMutation{}, fmt.Errorf("error checking email availability: %w", err)
	}

	passwordHash, err := a.hasher.Hash(form.Get(validators.FieldPassword))
	if err != nil {
		log.Err(err).Msg("error hashing password")
		return models.User{}, models.CookieMutation{}, err
	}

	user, err := a.users.CreateUser(ctx, models.User{Email: email, PasswordHash: passwordHash})
	if errors.Is(err, store.ErrEmailAlreadyExists) {
		return models.User{}, models.CookieMutation{}, a.duplicateEmail(ctx, form, err)
	}
	if err != nil {
		log.Err(err).Msg("user creation ended with error")
		return models.User{}, models.CookieMutation{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	cookie, err := a.issue(ctx, user.UserID)
	if err != nil {
		return models.User{}, models.CookieMutation{}, err
	}

	log.Info().Int64("user_id", user.UserID).Msg("user signed up")
	return user, cookie, nil
}

// Login authenticates the credentials in form on behalf of clientKey.
func (a *authService) Login(ctx context.Context, clientKey string, form *validators.Form) (models.User, models.CookieMutation, error) {
	log := logger.FromContext(ctx)
	clientKey = throttle.KeyOrUnknown(clientKey)

	// a blocked client sees the generic message whatever it submitted
	blocked, err := a.throttle.IsBlocked(ctx, clientKey)
	if err != nil {
		log.Err(err).Msg("error checking login throttle")
		return models.User{}, models.CookieMutation{}, fmt.Errorf("error checking login throttle: %w", err)
	}
	if blocked {
		log.Warn().Str("client", clientKey).Msg("login throttled")
		form.AddError(validators.FieldEmail, validators.MsgInvalidCredentials)
		return models.User{}, models.CookieMutation{}, ErrThrottled
	}

	if err = a.loginValidator.Validate(ctx, form); err != nil {
		log.Debug().Err(err).Msg("login form rejected")
		return models.User{}, models.CookieMutation{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	email := form.Get(validators.FieldEmail)
	password := form.Get(validators.FieldPassword)

	user, err := a.users.FindUserByEmail(ctx, email)
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		a.hasher.Verify(password, a.dummyHash)
		return models.User{}, models.CookieMutation{}, a.loginFailed(ctx, clientKey, form)
	case err != nil:
		log.Err(err).Msg("error looking up user")
		return models.User{}, models.CookieMutation{}, fmt.Errorf("error looking up user: %w", err)
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		return models.User{}, models.CookieMutation{}, a.loginFailed(ctx, clientKey, form)
	}

	if err = a.throttle.Reset(ctx, clientKey); err != nil {
		log.Err(err).Str("client", clientKey).Msg("error resetting login throttle")
	}

	cookie, err := a.issue(ctx, user.UserID)
	if err != nil {
		return models.User{}, models.CookieMutation{}, err
	}

	log.Info().Int64("user_id", user.UserID).Msg("user logged in")
	return user, cookie, nil
}

func (a *authService) Logout(ctx context.Context, token string) models.CookieMutation {
	return a.sessions.Revoke(ctx, token)
}

// issue refuses to create a session for a request that is already gone.
func (a *authService) issue(ctx context.Context, userID int64) (models.CookieMutation, error) {
	if err := ctx.Err(); err != nil {
		return models.CookieMutation{}, err
	}
	return a.sessions.Issue(ctx, userID)
}

func (a *authService) duplicateEmail(ctx context.Context, form *validators.Form, cause error) error {
	logger.FromContext(ctx).Info().Msg("signup with an already registered email")
	form.AddError(validators.FieldEmail, validators.MsgAlreadyRegistered)
	return fmt.Errorf("%w: %w", ErrInvalidDataProvided, cause)
}

func (a *authService) loginFailed(ctx context.Context, clientKey string, form *validators.Form) error {
	log := logger.FromContext(ctx)
	if err := a.throttle.RecordFailure(ctx, clientKey); err != nil {
		log.Err(err).Str("client", clientKey).Msg("error recording login failure")
		return fmt.Errorf("error recording login failure: %w", err)
	}
	log.Info().Str("client", clientKey).Msg("login failed")
	form.AddError(validators.FieldEmail, validators.MsgInvalidCredentials)
	return ErrInvalidCredentials
}
