package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-shipy/internal/config"
	"github.com/MKhiriev/go-shipy/internal/logger"
	"github.com/MKhiriev/go-shipy/internal/render"
	"github.com/MKhiriev/go-shipy/internal/service"
	"github.com/MKhiriev/go-shipy/internal/store"
	"github.com/MKhiriev/go-shipy/internal/throttle"
	"github.com/MKhiriev/go-shipy/internal/validators"
	"github.com/MKhiriev/go-shipy/models"
	"github.com/MKhiriev/go-shipy/web"
)

const e2eClient = "192.0.2.1" // httptest.NewRequest default

type e2eApp struct {
	router   http.Handler
	storages *store.Storages
	throttle *throttle.MemoryThrottle
}

// newE2EApp wires the real services over a temporary sqlite database.
func newE2EApp(t *testing.T) *e2eApp {
	t.Helper()
	ctx := context.Background()

	cfg := config.StructuredConfig{
		App: config.App{
			SessionSignKey:  "e2e-sign-key",
			SessionIssuer:   "shipy",
			SessionDuration: time.Hour,
			ArgonMemory:     64,
			ArgonTime:       1,
			ArgonThreads:    1,
			Version:         "e2e",
		},
		Storage: config.Storage{DB: config.DB{
			Driver: config.DriverSQLite,
			DSN:    filepath.Join(t.TempDir(), "shipy.db"),
		}},
		Server: config.Server{HTTPAddress: "localhost:0", RequestTimeout: 10 * time.Second},
	}

	storages, err := store.NewStorages(ctx, cfg.Storage, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { storages.Close() })

	loginThrottle := throttle.NewMemoryThrottle(throttle.DefaultPolicy)

	services, err := service.NewServices(storages, loginThrottle, cfg, models.AppBuildInfo{}, logger.Nop())
	require.NoError(t, err)

	templates, err := web.Templates()
	require.NoError(t, err)
	renderer, err := render.New(templates)
	require.NoError(t, err)
	static, err := web.Static()
	require.NoError(t, err)

	h := NewHandler(services, renderer, static, cfg.Server, logger.Nop())

	return &e2eApp{router: h.Init(), storages: storages, throttle: loginThrottle}
}

func (a *e2eApp) do(req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *e2eApp) signup(t *testing.T, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	return a.do(formRequest("/signup", credentials(email, password)), nil)
}

func (a *e2eApp) login(t *testing.T, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	return a.do(formRequest("/login", credentials(email, password)), nil)
}

// Scenario A
func TestE2E_SignupCreatesUserAndSession(t *testing.T) {
	app := newE2EApp(t)

	rec := app.signup(t, "a@x.com", "abcdef")

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	user, err := app.storages.UserRepository.FindUserByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "abcdef", user.PasswordHash)

	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)

	secret := app.do(httptest.NewRequest(http.MethodGet, "/secret", nil), cookie)
	assert.Equal(t, http.StatusOK, secret.Code)
	assert.Contains(t, secret.Body.String(), "a@x.com")
}

// Scenario B
func TestE2E_SignupShortPasswordCreatesNothing(t *testing.T) {
	app := newE2EApp(t)

	rec := app.signup(t, "a@x.com", "abc")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "must be at least 6 characters")
	assert.Nil(t, sessionCookie(t, rec))

	_, err := app.storages.UserRepository.FindUserByEmail(context.Background(), "a@x.com")
	assert.True(t, errors.Is(err, store.ErrUserNotFound))
}

func TestE2E_BoostedSignupShortPasswordShowsErrors(t *testing.T) {
	app := newE2EApp(t)

	rec := app.do(boosted(formRequest("/signup", credentials("a@x.com", "abc"))), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "must be at least 6 characters")
	assert.Contains(t, rec.Body.String(), `class="site-header"`)
	assert.Contains(t, rec.Body.String(), `class="site-footer"`)
	assert.Nil(t, sessionCookie(t, rec))
}

func TestE2E_SignupDuplicateEmail(t *testing.T) {
	app := newE2EApp(t)

	require.Equal(t, http.StatusSeeOther, app.signup(t, "a@x.com", "abcdef").Code)
	rec := app.signup(t, "a@x.com", "other-password")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), validators.MsgAlreadyRegistered)
	assert.Nil(t, sessionCookie(t, rec))
}

// Scenario C
func TestE2E_SuccessfulLoginClearsFailures(t *testing.T) {
	app := newE2EApp(t)
	require.Equal(t, http.StatusSeeOther, app.signup(t, "a@x.com", "abcdef").Code)

	for i := 0; i < 4; i++ {
		require.Equal(t, http.StatusUnauthorized, app.login(t, "a@x.com", "wrong-pass").Code)
	}

	rec := app.login(t, "a@x.com", "abcdef")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	require.NotNil(t, sessionCookie(t, rec))

	blocked, err := app.throttle.IsBlocked(context.Background(), e2eClient)
	require.NoError(t, err)
	assert.False(t, blocked)

	// the counter starts over, so four more failures still do not block
	for i := 0; i < 4; i++ {
		require.Equal(t, http.StatusUnauthorized, app.login(t, "a@x.com", "wrong-pass").Code)
	}
	assert.Equal(t, http.StatusSeeOther, app.login(t, "a@x.com", "abcdef").Code)
}

// Scenario D
func TestE2E_ThrottleBlocksCorrectCredentials(t *testing.T) {
	app := newE2EApp(t)
	require.Equal(t, http.StatusSeeOther, app.signup(t, "a@x.com", "abcdef").Code)

	var lastFailure *httptest.ResponseRecorder
	for i := 0; i < 5; i++ {
		lastFailure = app.login(t, "a@x.com", "wrong-pass")
		require.Equal(t, http.StatusUnauthorized, lastFailure.Code)
	}

	rec := app.login(t, "a@x.com", "abcdef")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, sessionCookie(t, rec))
	assert.Equal(t, lastFailure.Body.String(), rec.Body.String())

	require.NoError(t, app.throttle.Reset(context.Background(), e2eClient))

	rec = app.login(t, "a@x.com", "abcdef")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestE2E_UnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	app := newE2EApp(t)
	require.Equal(t, http.StatusSeeOther, app.signup(t, "a@x.com", "abcdef").Code)

	wrongPassword := app.login(t, "a@x.com", "wrong-pass")
	unknownEmail := app.login(t, "b@x.com", "wrong-pass")

	assert.Equal(t, wrongPassword.Code, unknownEmail.Code)
	assert.Contains(t, wrongPassword.Body.String(), validators.MsgInvalidCredentials)
	assert.Contains(t, unknownEmail.Body.String(), validators.MsgInvalidCredentials)
}

func TestE2E_LogoutRevokesSession(t *testing.T) {
	app := newE2EApp(t)

	cookie := sessionCookie(t, app.signup(t, "a@x.com", "abcdef"))
	require.NotNil(t, cookie)

	rec := app.do(httptest.NewRequest(http.MethodPost, "/logout", nil), cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	// replaying the old cookie no longer works
	secret := app.do(httptest.NewRequest(http.MethodGet, "/secret", nil), cookie)
	assert.Equal(t, http.StatusSeeOther, secret.Code)
	assert.Equal(t, "/login", secret.Header().Get("Location"))
}

func TestE2E_ForgedCookieIsAnonymous(t *testing.T) {
	app := newE2EApp(t)

	forged := &http.Cookie{Name: SessionCookieName, Value: "eyJhbGciOiJIUzI1NiJ9.e30.forged"}
	rec := app.do(httptest.NewRequest(http.MethodGet, "/secret", nil), forged)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
}
