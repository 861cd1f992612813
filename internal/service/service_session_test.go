package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-shipy/internal/config"
	"github.com/MKhiriev/go-shipy/internal/logger"
	"github.com/MKhiriev/go-shipy/internal/mock"
	"github.com/MKhiriev/go-shipy/internal/store"
	"github.com/MKhiriev/go-shipy/internal/utils"
	"github.com/MKhiriev/go-shipy/models"
)

const (
	testSignKey = "test-sign-key"
	testIssuer  = "shipy-test"
	testSID     = "4b1e6a52-4d0e-4f7e-9a57-0a4c3c1d2e3f"
)

type fixedIDs struct{ id string }

func (f fixedIDs) Generate() string { return f.id }

func testAppConfig() config.App {
	return config.App{
		SessionSignKey:  testSignKey,
		SessionIssuer:   testIssuer,
		SessionDuration: time.Hour,
		ArgonMemory:     testArgonParams.Memory,
		ArgonTime:       testArgonParams.Time,
		ArgonThreads:    testArgonParams.Threads,
	}
}

func newTestSessionService(repo store.SessionRepository) *sessionService {
	return NewSessionService(repo, fixedIDs{id: testSID}, testAppConfig(), logger.Nop()).(*sessionService)
}

func signedToken(t *testing.T, sessionID string, userID int64, expiresAt time.Time) string {
	t.Helper()
	token, err := utils.GenerateSessionToken(testIssuer, sessionID, userID, expiresAt, testSignKey)
	require.NoError(t, err)
	return token.String()
}

// ─────────────────────────────────────────────
// Issue
// ─────────────────────────────────────────────

func TestSessionService_Issue(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockSessionRepository(ctrl)
	svc := newTestSessionService(repo)

	var saved models.Session
	repo.EXPECT().
		CreateSession(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s models.Session) error {
			saved = s
			return nil
		})

	cookie, err := svc.Issue(context.Background(), 42)
	require.NoError(t, err)

	assert.False(t, cookie.Clear)
	assert.NotEmpty(t, cookie.Value)
	assert.Equal(t, testSID, saved.SessionID)
	assert.Equal(t, int64(42), saved.UserID)
	assert.Equal(t, time.Hour, saved.ExpiresAt.Sub(saved.CreatedAt))
	assert.True(t, cookie.ExpiresAt.Equal(saved.ExpiresAt))

	parsed, err := utils.ValidateAndParseSessionToken(cookie.Value, testSignKey, testIssuer)
	require.NoError(t, err)
	assert.Equal(t, testSID, parsed.SessionID())
	userID, err := parsed.GetUserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestSessionService_Issue_StorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockSessionRepository(ctrl)
	svc := newTestSessionService(repo)

	repo.EXPECT().CreateSession(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	cookie, err := svc.Issue(context.Background(), 42)

	assert.ErrorIs(t, err, ErrSessionIssueFailed)
	assert.Empty(t, cookie.Value)
}

func TestSessionService_Issue_SigningFailureRemovesRow(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockSessionRepository(ctrl)
	svc := newTestSessionService(repo)
	svc.signKey = ""

	gomock.InOrder(
		repo.EXPECT().CreateSession(gomock.Any(), gomock.Any()).Return(nil),
		repo.EXPECT().DeleteSession(gomock.Any(), testSID).Return(nil),
	)

	_, err := svc.Issue(context.Background(), 42)

	assert.ErrorIs(t, err, ErrSessionIssueFailed)
}

// ─────────────────────────────────────────────
// Resolve
// ─────────────────────────────────────────────

func TestSessionService_Resolve_RoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockSessionRepository(ctrl)
	svc := newTestSessionService(repo)

	var saved models.Session
	repo.EXPECT().
		CreateSession(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s models.Session) error {
			saved = s
			return nil
		})
	repo.EXPECT().
		FindSession(gomock.Any(), testSID).
		DoAndReturn(func(context.Context, string) (models.Session, error) {
			return saved, nil
		})

	cookie, err := svc.Issue(context.Background(), 7)
	require.NoError(t, err)

	userID, ok, err := svc.Resolve(context.Background(), cookie.Value)

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(7), userID)
}

func TestSessionService_Resolve_RejectsUntrustedInput(t *testing.T) {
	future := time.Now().Add(time.Hour)

	forged, err := utils.GenerateSessionToken(testIssuer, testSID, 7, future, "other-key")
	require.NoError(t, err)
	foreign, err := utils.GenerateSessionToken("someone-else", testSID, 7, future, testSignKey)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "absent", token: ""},
		{name: "garbage", token: "not-a-token"},
		{name: "forged signature", token: forged.String()},
		{name: "foreign issuer", token: foreign.String()},
		{name: "expired token", token: signedToken(t, testSID, 7, time.Now().Add(-time.Minute))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock.NewMockSessionRepository(ctrl)
			svc := newTestSessionService(repo)

			userID, ok, err := svc.Resolve(context.Background(), tt.token)

			require.NoError(t, err)
			assert.False(t, ok)
			assert.Zero(t, userID)
		})
	}
}

func TestSessionService_Resolve_SessionRow(t *testing.T) {
	now := time.Now()
	token := signedToken(t, testSID, 7, now.Add(time.Hour))

	tests := []struct {
		name    string
		session models.Session
		findErr error
		wantOK  bool
		wantErr bool
	}{
		{
			name:    "live session",
			session: models.Session{SessionID: testSID, UserID: 7, ExpiresAt: now.Add(time.Hour)},
			wantOK:  true,
		},
		{
			name:    "revoked session",
			findErr: store.ErrSessionNotFound,
		},
		{
			name:    "expired row",
			session: models.Session{SessionID: testSID, UserID: 7, ExpiresAt: now.Add(-time.Second)},
		},
		{
			name:    "owner mismatch",
			session: models.Session{SessionID: testSID, UserID: 8, ExpiresAt: now.Add(time.Hour)},
		},
		{
			name:    "storage failure",
			findErr: errors.New("connection reset"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock.NewMockSessionRepository(ctrl)
			svc := newTestSessionService(repo)

			repo.EXPECT().FindSession(gomock.Any(), testSID).Return(tt.session, tt.findErr)

			userID, ok, err := svc.Resolve(context.Background(), token)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, int64(7), userID)
			}
		})
	}
}

// ─────────────────────────────────────────────
// Revoke
// ─────────────────────────────────────────────

func TestSessionService_Revoke(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockSessionRepository(ctrl)
	svc := newTestSessionService(repo)

	repo.EXPECT().DeleteSession(gomock.Any(), testSID).Return(nil)

	cookie := svc.Revoke(context.Background(), signedToken(t, testSID, 7, time.Now().Add(time.Hour)))

	assert.True(t, cookie.Clear)
}

func TestSessionService_Revoke_ExpiredTokenStillDeletesRow(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockSessionRepository(ctrl)
	svc := newTestSessionService(repo)

	repo.EXPECT().DeleteSession(gomock.Any(), testSID).Return(nil)

	cookie := svc.Revoke(context.Background(), signedToken(t, testSID, 7, time.Now().Add(-time.Hour)))

	assert.True(t, cookie.Clear)
}

func TestSessionService_Revoke_ClearsEvenWhenNothingToDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockSessionRepository(ctrl)
	svc := newTestSessionService(repo)

	assert.True(t, svc.Revoke(context.Background(), "").Clear)
	assert.True(t, svc.Revoke(context.Background(), "garbage").Clear)
}

func TestSessionService_Revoke_StorageErrorStillClears(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockSessionRepository(ctrl)
	svc := newTestSessionService(repo)

	repo.EXPECT().DeleteSession(gomock.Any(), testSID).Return(errors.New("connection reset"))

	cookie := svc.Revoke(context.Background(), signedToken(t, testSID, 7, time.Now().Add(time.Hour)))

	assert.True(t, cookie.Clear)
}
