package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/99minutos/invoice-system/internal/core/domain"
	"github.com/99minutos/invoice-system/internal/core/ports"
	"github.com/99minutos/invoice-system/internal/pkg/metrics"
)

const DefaultSessionTTL = 15 * time.Minute

// SessionCache is a read-through cache in front of a SessionRepository.
// Key format: session:<token>, value: the owning user id.
//
// The cache is never authoritative. Redis failures are logged and the call
// falls through to the wrapped store, and only positive lookups are cached.
type SessionCache struct {
	next    ports.SessionRepository
	client  *redis.Client
	ttl     time.Duration
	log     zerolog.Logger
	metrics *metrics.Metrics
}

var _ ports.SessionRepository = (*SessionCache)(nil)

// NewSessionCache wraps next. A non-positive ttl selects DefaultSessionTTL,
// and m may be nil.
func NewSessionCache(next ports.SessionRepository, client *redis.Client, ttl time.Duration, log zerolog.Logger, m *metrics.Metrics) *SessionCache {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionCache{
		next:    next,
		client:  client,
		ttl:     ttl,
		log:     log,
		metrics: m,
	}
}

// Create persists the session in the wrapped store first, then primes the cache.
func (c *SessionCache) Create(ctx context.Context, s *domain.Session) error {
	if err := c.next.Create(ctx, s); err != nil {
		return err
	}
	if err := c.client.Set(ctx, c.key(s.Token), s.UserID, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("prime session cache")
	}
	return nil
}

func (c *SessionCache) FindUserID(ctx context.Context, token string) (string, error) {
	userID, err := c.client.Get(ctx, c.key(token)).Result()
	switch {
	case err == nil:
		c.metrics.ObserveSessionCache(metrics.CacheHit)
		return userID, nil
	case errors.Is(err, redis.Nil):
		c.metrics.ObserveSessionCache(metrics.CacheMiss)
	default:
		c.metrics.ObserveSessionCache(metrics.CacheError)
		c.log.Warn().Err(err).Msg("read session cache")
	}

	userID, err = c.next.FindUserID(ctx, token)
	if err != nil {
		return "", err
	}
	if err := c.client.Set(ctx, c.key(token), userID, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("fill session cache")
	}
	return userID, nil
}

func (c *SessionCache) key(token string) string {
	return fmt.Sprintf("session:%s", token)
}
