package throttle

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-shipy/internal/logger"
)

const redisKeyPrefix = "shipy:login_failures:"

// recordFailureScript increments the counter and starts the window on the
// first failure, atomically.
var recordFailureScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

// RedisThrottle is a [LoginThrottle] shared by every server instance that
// points at the same Redis. The key TTL is the window, so expiry is handled
// by Redis itself.
type RedisThrottle struct {
	client redis.UniversalClient
	policy Policy
}

func NewRedisThrottle(client redis.UniversalClient, policy Policy) *RedisThrottle {
	return &RedisThrottle{client: client, policy: policy}
}

// NewRedisThrottleFromURL connects to redisURL and verifies the connection.
func NewRedisThrottleFromURL(ctx context.Context, redisURL string, policy Policy, log *logger.Logger) (*RedisThrottle, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err = client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		log.Err(err).Str("func", "NewRedisThrottleFromURL").Msg("error connecting redis (ping)")
		return nil, fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}
	log.Info().
		Str("addr", opts.Addr).
		Int("max_failures", policy.MaxFailures).
		Dur("window", policy.Window).
		Msg("using redis login throttle")

	return NewRedisThrottle(client, policy), nil
}

func (t *RedisThrottle) IsBlocked(ctx context.Context, key string) (bool, error) {
	n, err := t.client.Get(ctx, redisKey(key)).Int()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}
	return n >= t.policy.MaxFailures, nil
}

func (t *RedisThrottle) RecordFailure(ctx context.Context, key string) error {
	err := recordFailureScript.Run(ctx, t.client, []string{redisKey(key)}, t.policy.Window.Milliseconds()).Err()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}
	return nil
}

func (t *RedisThrottle) Reset(ctx context.Context, key string) error {
	if err := t.client.Del(ctx, redisKey(key)).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}
	return nil
}

func (t *RedisThrottle) Close() error {
	return t.client.Close()
}

func redisKey(key string) string {
	return redisKeyPrefix + KeyOrUnknown(key)
}

