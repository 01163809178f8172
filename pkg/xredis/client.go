package xredis

import (
	"context"
	"time"

	"github.com/cowetaconnect/backend/config"
	"github.com/redis/go-redis/v9"
)

type Client interface {
	// IncrEx atomically increments the integer at key, resets its TTL and
	// returns the post-increment value. The increment and the expiration run
	// in a single pipeline so concurrent callers never under-count.
	IncrEx(ctx context.Context, key string, ttl time.Duration) (int64, error)

	// GetInt returns the integer at key, or 0 if the key is absent or
	// expired.
	GetInt(ctx context.Context, key string) (int64, error)

	Del(ctx context.Context, keys ...string) error
	Exist(ctx context.Context, key string) (bool, error)
}

type client struct {
	redisClient *redis.Client
}

func NewClient(ctx context.Context, cfg config.RedisConfigs) (*client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:            cfg.Addr,
		MaxRetries:      5,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		PoolFIFO:        false,
		PoolSize:        5,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &client{redisClient: redisClient}, nil
}

func (c *client) IncrEx(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	pipe := c.redisClient.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}

	return incr.Val(), nil
}

func (c *client) GetInt(ctx context.Context, key string) (int64, error) {
	n, err := c.redisClient.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}

	return n, err
}

func (c *client) Del(ctx context.Context, keys ...string) error {
	err := c.redisClient.Del(ctx, keys...).Err()
	if err == nil || err == redis.Nil {
		return nil
	}

	return err
}

func (c *client) Exist(ctx context.Context, key string) (bool, error) {
	n, err := c.redisClient.Exists(ctx, key).Uint64()
	if err != nil {
		return false, err
	}

	return n == 1, nil
}
