package testutil

import (
	"context"
	"sync"
	"time"
)

type redisValue struct {
	n         int64
	expiredAt time.Time
}

// InMemoryRedisClient implements xredis.Client over a map. Entries honor the
// TTL given to IncrEx so lockout-window tests behave like the real server.
type InMemoryRedisClient struct {
	mutex  sync.Mutex
	values map[string]*redisValue
}

func NewInMemoryRedisClient() *InMemoryRedisClient {
	return &InMemoryRedisClient{values: map[string]*redisValue{}}
}

func (c *InMemoryRedisClient) get(key string) *redisValue {
	v, ok := c.values[key]
	if !ok {
		return nil
	}

	if time.Now().After(v.expiredAt) {
		delete(c.values, key)
		return nil
	}

	return v
}

func (c *InMemoryRedisClient) IncrEx(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	v := c.get(key)
	if v == nil {
		v = &redisValue{}
		c.values[key] = v
	}

	v.n++
	v.expiredAt = time.Now().Add(ttl)
	return v.n, nil
}

func (c *InMemoryRedisClient) GetInt(ctx context.Context, key string) (int64, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	v := c.get(key)
	if v == nil {
		return 0, nil
	}

	return v.n, nil
}

func (c *InMemoryRedisClient) Del(ctx context.Context, keys ...string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for _, key := range keys {
		delete(c.values, key)
	}

	return nil
}

func (c *InMemoryRedisClient) Exist(ctx context.Context, key string) (bool, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.get(key) != nil, nil
}
