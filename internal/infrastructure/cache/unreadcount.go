package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/edofi/fiwe/internal/shared/constants"
	"github.com/edofi/fiwe/internal/shared/logger"
)

const (
	defaultUnreadCountTTL = time.Minute
	generationTTL         = 24 * time.Hour
)

// storeIfCurrent writes the count only while the generation read before the
// load is still current, so a load that raced an invalidation is dropped.
var storeIfCurrent = redis.NewScript(`
local gen = redis.call('GET', KEYS[2]) or '0'
if gen ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`)

// RedisUnreadCountCache keeps per-user unread counts in Redis. Concurrent
// misses for the same user share a single load. Redis failures fall back to
// the loader so the count is always served. Every invalidation bumps a
// per-user generation; a load started under an older generation is returned
// to its caller but never cached.
type RedisUnreadCountCache struct {
	client *redis.Client
	ttl    time.Duration
	group  singleflight.Group
	logger logger.Interface
}

func NewRedisUnreadCountCache(client *redis.Client, ttl time.Duration, logger logger.Interface) *RedisUnreadCountCache {
	if ttl <= 0 {
		ttl = defaultUnreadCountTTL
	}
	return &RedisUnreadCountCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *RedisUnreadCountCache) key(userID uint) string {
	return fmt.Sprintf("%s%d", constants.RedisKeyUnreadCountPrefix, userID)
}

func (c *RedisUnreadCountCache) generationKey(userID uint) string {
	return fmt.Sprintf("%sgen:%d", constants.RedisKeyUnreadCountPrefix, userID)
}

func (c *RedisUnreadCountCache) GetOrLoad(ctx context.Context, userID uint, load func(ctx context.Context) (int64, error)) (int64, error) {
	key := c.key(userID)

	cached, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		if count, parseErr := strconv.ParseInt(cached, 10, 64); parseErr == nil {
			return count, nil
		}
		c.logger.Warnw("discarding malformed unread count", "user_id", userID, "value", cached)
	case !errors.Is(err, redis.Nil):
		c.logger.Warnw("unread count cache read failed", "user_id", userID, "error", err)
		return load(ctx)
	}

	genKey := c.generationKey(userID)
	gen, err := c.client.Get(ctx, genKey).Result()
	switch {
	case errors.Is(err, redis.Nil):
		gen = "0"
	case err != nil:
		c.logger.Warnw("unread count generation read failed", "user_id", userID, "error", err)
		return load(ctx)
	}

	v, err, _ := c.group.Do(key+"@"+gen, func() (interface{}, error) {
		count, err := load(ctx)
		if err != nil {
			return int64(0), err
		}
		stored, err := storeIfCurrent.Run(ctx, c.client, []string{key, genKey}, gen, count, c.ttl.Milliseconds()).Int()
		switch {
		case err != nil:
			c.logger.Warnw("unread count cache write failed", "user_id", userID, "error", err)
		case stored == 0:
			c.logger.Debugw("unread count invalidated during load, not cached", "user_id", userID)
		}
		return count, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}

func (c *RedisUnreadCountCache) Invalidate(ctx context.Context, userID uint) error {
	genKey := c.generationKey(userID)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, generationTTL)
		pipe.Del(ctx, c.key(userID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate unread count: %w", err)
	}
	return nil
}
