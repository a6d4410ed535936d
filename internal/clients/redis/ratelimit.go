package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/studynotes-backend/internal/platform/logger"
)

// incrScript starts the window on the first hit so concurrent instances agree
// on when it resets.
var incrScript = goredis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {n, redis.call("PTTL", KEYS[1])}
`)

var decrScript = goredis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 1 and tonumber(redis.call("GET", KEYS[1])) > 0 then
  return redis.call("DECR", KEYS[1])
end
return 0
`)

// RateLimitStore shares fixed windows across every instance using the same
// redis.
type RateLimitStore struct {
	log *logger.Logger
	rdb *goredis.Client
	now func() time.Time
}

func NewRateLimitStore(log *logger.Logger, addr string) (*RateLimitStore, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RateLimitStore{
		log: log.With("service", "RedisRateLimitStore"),
		rdb: rdb,
		now: time.Now,
	}, nil
}

func (s *RateLimitStore) Incr(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	res, err := incrScript.Run(ctx, s.rdb, []string{key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis incr %s: %w", key, err)
	}
	if len(res) != 2 {
		return 0, time.Time{}, fmt.Errorf("redis incr %s: unexpected reply %v", key, res)
	}
	ttl := time.Duration(res[1]) * time.Millisecond
	if ttl < 0 {
		ttl = window
	}
	return int(res[0]), s.now().Add(ttl), nil
}

func (s *RateLimitStore) Decr(ctx context.Context, key string) error {
	if err := decrScript.Run(ctx, s.rdb, []string{key}).Err(); err != nil {
		return fmt.Errorf("redis decr %s: %w", key, err)
	}
	return nil
}

func (s *RateLimitStore) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}
