package infra

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// NewRedis creates and validates a go-redis client connection.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}

const rateKeyPrefix = "cookncart:rates:"

// RedisRateCache keeps exchange rates in Redis, one key per currency, so
// several app instances on one machine share a single fetch.
type RedisRateCache struct {
	rdb *redis.Client
}

func NewRedisRateCache(rdb *redis.Client) *RedisRateCache {
	return &RedisRateCache{rdb: rdb}
}

func (c *RedisRateCache) Get(ctx context.Context, code string) (float64, bool) {
	r, err := c.rdb.Get(ctx, rateKeyPrefix+strings.ToUpper(code)).Float64()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Str("currency", code).Msg("redis rate lookup failed")
		}
		return 0, false
	}
	return r, true
}

func (c *RedisRateCache) Set(ctx context.Context, rates map[string]float64, ttl time.Duration) {
	pipe := c.rdb.Pipeline()
	for code, r := range rates {
		pipe.Set(ctx, rateKeyPrefix+strings.ToUpper(code), r, ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		log.Warn().Err(err).Msg("redis rate store failed")
	}
}
