package store

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-shipy/internal/config"
	"github.com/MKhiriev/go-shipy/internal/logger"
	"github.com/MKhiriev/go-shipy/models"
)

func newSQLiteStorages(t *testing.T) *Storages {
	t.Helper()

	cfg := config.Storage{DB: config.DB{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "data", "shipy.db"),
	}}

	storages, err := NewStorages(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { storages.Close() })

	return storages
}

func TestSQLite_ConcurrentSignupSameEmail(t *testing.T) {
	storages := newSQLiteStorages(t)

	const workers = 8
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		created    int
		duplicates int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := storages.UserRepository.CreateUser(context.Background(), models.User{Email: "race@b.co", PasswordHash: "phc"})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, ErrEmailAlreadyExists):
				duplicates++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, workers-1, duplicates)
}

func TestSQLite_EmailIsCaseSensitive(t *testing.T) {
	storages := newSQLiteStorages(t)
	ctx := context.Background()

	_, err := storages.UserRepository.CreateUser(ctx, models.User{Email: "Case@b.co", PasswordHash: "phc"})
	require.NoError(t, err)

	_, err = storages.UserRepository.FindUserByEmail(ctx, "case@b.co")
	require.ErrorIs(t, err, ErrUserNotFound)

	found, err := storages.UserRepository.FindUserByEmail(ctx, "Case@b.co")
	require.NoError(t, err)
	assert.Equal(t, "Case@b.co", found.Email)
}

func TestSQLite_SessionLifecycle(t *testing.T) {
	storages := newSQLiteStorages(t)
	ctx := context.Background()

	user, err := storages.UserRepository.CreateUser(ctx, models.User{Email: "s@b.co", PasswordHash: "phc"})
	require.NoError(t, err)

	now := time.Now().UTC()
	live := models.Session{SessionID: "live", UserID: user.UserID, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	stale := models.Session{SessionID: "stale", UserID: user.UserID, CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour)}
	require.NoError(t, storages.SessionRepository.CreateSession(ctx, live))
	require.NoError(t, storages.SessionRepository.CreateSession(ctx, stale))

	found, err := storages.SessionRepository.FindSession(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, user.UserID, found.UserID)
	assert.WithinDuration(t, live.ExpiresAt, found.ExpiresAt, time.Second)

	n, err := storages.SessionRepository.DeleteExpiredSessions(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = storages.SessionRepository.FindSession(ctx, "stale")
	require.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, storages.SessionRepository.DeleteSession(ctx, "live"))
	require.NoError(t, storages.SessionRepository.DeleteSession(ctx, "live"))
	_, err = storages.SessionRepository.FindSession(ctx, "live")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSQLiteErrorClassifier(t *testing.T) {
	c := NewSQLiteErrorClassifier()

	assert.Equal(t, UniqueViolation, c.Classify(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}))
	assert.Equal(t, Retryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrBusy}))
	assert.Equal(t, NonRetryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintNotNull}))
	assert.Equal(t, NonRetryable, c.Classify(errors.New("plain")))
}

func TestNewConnect_UnsupportedDriver(t *testing.T) {
	_, err := NewConnect(context.Background(), config.DB{Driver: "mysql"}, logger.Nop())
	require.ErrorIs(t, err, ErrUnsupportedDriver)
}
