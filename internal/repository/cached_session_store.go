package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/mathsession-backend/internal/config"
	"github.com/stemsi/mathsession-backend/internal/model"
	"github.com/stemsi/mathsession-backend/internal/service"
)

// CachedSessionStore serves GetSession from Redis and falls back to the
// wrapped store on a miss. Sessions are immutable so entries never go stale.
// Cache failures are logged and never surface to callers.
type CachedSessionStore struct {
	service.SessionStore
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

func NewCachedSessionStore(inner service.SessionStore, rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *CachedSessionStore {
	return &CachedSessionStore{
		SessionStore: inner,
		rdb:          rdb,
		ttl:          ttl,
		log:          log.With().Str("component", "session_cache").Logger(),
	}
}

func (c *CachedSessionStore) CreateSession(ctx context.Context, problemText string, correctAnswer float64) (*model.ProblemSession, error) {
	s, err := c.SessionStore.CreateSession(ctx, problemText, correctAnswer)
	if err != nil {
		return nil, err
	}
	c.store(ctx, s)
	return s, nil
}

func (c *CachedSessionStore) GetSession(ctx context.Context, id string) (*model.ProblemSession, error) {
	sessionID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	key := config.CacheKey.ProblemSessionKey(sessionID.String())

	data, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var s model.ProblemSession
		if jsonErr := json.Unmarshal(data, &s); jsonErr == nil {
			return &s, nil
		}
		c.log.Warn().Str("key", key).Msg("Dropping undecodable cache entry")
		c.rdb.Del(ctx, key)
	case !errors.Is(err, redis.Nil):
		c.log.Warn().Err(err).Str("key", key).Msg("Cache read failed, falling back to store")
	}

	s, err := c.SessionStore.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, s)
	return s, nil
}

func (c *CachedSessionStore) store(ctx context.Context, s *model.ProblemSession) {
	data, err := json.Marshal(s)
	if err != nil {
		c.log.Warn().Err(err).Msg("Failed to encode session for cache")
		return
	}
	key := config.CacheKey.ProblemSessionKey(s.ID.String())
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
}

var _ service.SessionStore = (*CachedSessionStore)(nil)
