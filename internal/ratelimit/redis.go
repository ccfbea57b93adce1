package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const slidingWindowLua = `
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local member = ARGV[4]

redis.call("ZREMRANGEBYSCORE", key, "-inf", now - window)
local count = redis.call("ZCARD", key)
if count < limit then
  redis.call("ZADD", key, now, member)
  redis.call("PEXPIRE", key, window)
  return {1, limit - count - 1, 0}
end

local retry = window
local oldest = redis.call("ZRANGE", key, 0, 0, "WITHSCORES")
if oldest[2] then
  retry = tonumber(oldest[2]) + window - now
end
return {0, 0, retry}
`

// NewRedisClient creates a Redis client for the given address.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// RedisStore keeps one sorted set of hit timestamps per key, shared by every server process.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
	script *redis.Script
	now    func() time.Time
}

// NewRedisStore creates a store whose keys are namespaced under prefix.
func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "cville:ratelimit:"
	}
	return &RedisStore{
		rdb:    rdb,
		prefix: prefix,
		script: redis.NewScript(slidingWindowLua),
		now:    time.Now,
	}
}

// Allow implements Store.
func (s *RedisStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (Decision, error) {
	if limit <= 0 {
		return Decision{Allowed: true}, nil
	}

	now := s.now().UnixMilli()
	res, err := s.script.Run(ctx, s.rdb, []string{s.prefix + key},
		now, window.Milliseconds(), limit, strconv.FormatInt(now, 10)+"-"+uuid.NewString()).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("ratelimit eval: %w", err)
	}

	values, ok := res.([]interface{})
	if !ok || len(values) < 3 {
		return Decision{}, fmt.Errorf("ratelimit invalid result")
	}
	return Decision{
		Allowed:    toInt64(values[0]) == 1,
		Remaining:  int(toInt64(values[1])),
		RetryAfter: time.Duration(toInt64(values[2])) * time.Millisecond,
	}, nil
}

func toInt64(v interface{}) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	case string:
		if parsed, err := strconv.ParseInt(t, 10, 64); err == nil {
			return parsed
		}
	}
	return 0
}
