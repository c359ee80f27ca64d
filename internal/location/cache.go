package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/straye-as/estimate-api/internal/domain"
)

const DefaultCacheTTL = 30 * 24 * time.Hour

// sharedLookupTimeout bounds an upstream lookup that outlives the caller
// that started it
const sharedLookupTimeout = 10 * time.Second

// Cache stores resolved guesses by postal code
type Cache interface {
	Get(ctx context.Context, zip string) (domain.LocationGuess, bool, error)
	Set(ctx context.Context, zip string, guess domain.LocationGuess, ttl time.Duration) error
}

// RedisCache is a Cache backed by Redis string keys holding JSON
type RedisCache struct {
	rdb    *goredis.Client
	prefix string
}

// NewRedisCache connects to addr and verifies the connection
func NewRedisCache(ctx context.Context, addr string) (*RedisCache, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("redis address required")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return NewRedisCacheFromClient(rdb), nil
}

// NewRedisCacheFromClient wraps an existing client
func NewRedisCacheFromClient(rdb *goredis.Client) *RedisCache {
	return &RedisCache{rdb: rdb, prefix: "estimate:zip:"}
}

func (c *RedisCache) Get(ctx context.Context, zip string) (domain.LocationGuess, bool, error) {
	raw, err := c.rdb.Get(ctx, c.prefix+zip).Bytes()
	if errors.Is(err, goredis.Nil) {
		return domain.LocationGuess{}, false, nil
	}
	if err != nil {
		return domain.LocationGuess{}, false, err
	}

	var guess domain.LocationGuess
	if err := json.Unmarshal(raw, &guess); err != nil {
		return domain.LocationGuess{}, false, err
	}
	return guess, true, nil
}

func (c *RedisCache) Set(ctx context.Context, zip string, guess domain.LocationGuess, ttl time.Duration) error {
	raw, err := json.Marshal(guess)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.prefix+zip, raw, ttl).Err()
}

// Close releases the Redis connection pool
func (c *RedisCache) Close() error {
	return c.rdb.Close()
}

// CachedResolver serves lookups from a Cache and collapses concurrent misses
// for the same postal code into one upstream lookup. Empty guesses are not
// cached so a transient outage does not stick.
type CachedResolver struct {
	next   Resolver
	cache  Cache
	ttl    time.Duration
	group  singleflight.Group
	logger *zap.Logger
}

// NewCachedResolver wraps next with cache
func NewCachedResolver(next Resolver, cache Cache, ttl time.Duration, logger *zap.Logger) *CachedResolver {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedResolver{next: next, cache: cache, ttl: ttl, logger: logger}
}

func (r *CachedResolver) Lookup(ctx context.Context, zip string) domain.LocationGuess {
	zip = strings.TrimSpace(zip)

	guess, ok, err := r.cache.Get(ctx, zip)
	if err != nil {
		r.logger.Warn("location cache read failed", zap.String("zip", zip), zap.Error(err))
	}
	if ok {
		return guess
	}

	// The shared lookup must not die with whichever caller happened to start
	// it; each caller waits on its own context instead.
	ch := r.group.DoChan(zip, func() (interface{}, error) {
		lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedLookupTimeout)
		defer cancel()

		g := r.next.Lookup(lookupCtx, zip)
		if !g.IsZero() {
			if err := r.cache.Set(lookupCtx, zip, g, r.ttl); err != nil {
				r.logger.Warn("location cache write failed", zap.String("zip", zip), zap.Error(err))
			}
		}
		return g, nil
	})

	select {
	case res := <-ch:
		return res.Val.(domain.LocationGuess)
	case <-ctx.Done():
		r.logger.Debug("location lookup abandoned", zap.String("zip", zip), zap.Error(ctx.Err()))
		return domain.LocationGuess{}
	}
}
