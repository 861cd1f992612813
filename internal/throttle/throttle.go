// Package throttle limits failed login attempts per client key.
//
// A key is blocked once it accumulates Policy.MaxFailures failures inside a
// fixed window that starts with the first failure. Windows decay lazily:
// nothing runs per key when a window ends, the next read simply observes a
// clean slate.
package throttle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-shipy/internal/config"
	"github.com/MKhiriev/go-shipy/internal/logger"
)

// UnknownClientKey is used when the client address cannot be determined.
// All such clients share one bucket.
const UnknownClientKey = "unknown"

// ErrBackendUnavailable wraps failures of the shared throttle backend.
var ErrBackendUnavailable = errors.New("login throttle backend unavailable")

//go:generate mockgen -destination=../mock/throttle_mock.go -package=mock github.com/MKhiriev/go-shipy/internal/throttle LoginThrottle

// LoginThrottle tracks failed logins per client key.
// Operations on the same key are linearizable; different keys never contend.
type LoginThrottle interface {
	IsBlocked(ctx context.Context, key string) (bool, error)
	RecordFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

// Sweeper is implemented by backends that keep expired records in memory
// until they are swept.
type Sweeper interface {
	Sweep(now time.Time) int
}

// Policy is the blocking threshold and its window.
type Policy struct {
	MaxFailures int
	Window      time.Duration
}

// DefaultPolicy blocks after 5 failures within 15 minutes.
var DefaultPolicy = Policy{MaxFailures: 5, Window: 15 * time.Minute}

// New builds the backend selected by cfg.Backend.
func New(ctx context.Context, cfg config.Throttle, log *logger.Logger) (LoginThrottle, error) {
	policy := Policy{MaxFailures: cfg.MaxFailures, Window: cfg.Window}

	switch cfg.Backend {
	case config.ThrottleBackendMemory, "":
		log.Info().
			Int("max_failures", policy.MaxFailures).
			Dur("window", policy.Window).
			Msg("using in-memory login throttle")
		return NewMemoryThrottle(policy), nil
	case config.ThrottleBackendRedis:
		return NewRedisThrottleFromURL(ctx, cfg.RedisURL, policy, log)
	default:
		return nil, fmt.Errorf("unknown login throttle backend %q", cfg.Backend)
	}
}

// KeyOrUnknown maps an empty client key to [UnknownClientKey].
func KeyOrUnknown(key string) string {
	if key == "" {
		return UnknownClientKey
	}
	return key
}
