package roles

import (
	"context"
	"errors"
	"time"

	"maintenance-inspections/internal/platform/logger"
	rolesport "maintenance-inspections/internal/ports/roles"

	"github.com/go-redis/redis/v8"
)

const (
	DefaultCacheTTL = 5 * time.Minute

	cacheKeyPrefix = "roles:admin:"
	cachedTrue     = "1"
	cachedFalse    = "0"
)

// Cache es el almacenamiento clave/valor que usa CachedDirectory.
// found=false indica ausencia, no error.
type Cache interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// RedisCache implementa Cache sobre go-redis.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// CachedDirectory memoiza las respuestas de otro Directory.
// Un fallo de la cache nunca bloquea la consulta: se loguea y se va al upstream.
type CachedDirectory struct {
	next  rolesport.Directory
	cache Cache
	ttl   time.Duration
	log   logger.Logger
}

func NewCachedDirectory(next rolesport.Directory, cache Cache, ttl time.Duration, log logger.Logger) *CachedDirectory {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if log == nil {
		log = logger.Nop()
	}
	return &CachedDirectory{next: next, cache: cache, ttl: ttl, log: log}
}

func (d *CachedDirectory) IsAdmin(ctx context.Context, userID string) (bool, error) {
	key := cacheKeyPrefix + userID

	v, found, err := d.cache.Get(ctx, key)
	switch {
	case err != nil:
		d.log.Warn("roles cache get failed", map[string]any{"user_id": userID, "error": err})
	case found:
		return v == cachedTrue, nil
	}

	admin, err := d.next.IsAdmin(ctx, userID)
	if err != nil {
		return false, err
	}

	val := cachedFalse
	if admin {
		val = cachedTrue
	}
	if err := d.cache.Set(ctx, key, val, d.ttl); err != nil {
		d.log.Warn("roles cache set failed", map[string]any{"user_id": userID, "error": err})
	}
	return admin, nil
}
