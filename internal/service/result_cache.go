package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/rapor-go-api/internal/dto"
)

const resultCacheKeyPrefix = "result:token:"

// ResultCache caches public result views keyed by share token so the
// unauthenticated lookup endpoint stays off the database on hot links.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewResultCache wraps a redis client. A nil client disables caching.
func NewResultCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *ResultCache {
	return &ResultCache{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "result_cache").Logger(),
	}
}

// Get returns the cached public view for a token, if present.
func (c *ResultCache) Get(ctx context.Context, token string) (dto.PublicResultResponse, bool) {
	if c == nil || c.client == nil {
		return dto.PublicResultResponse{}, false
	}

	cached, err := c.client.Get(ctx, resultCacheKeyPrefix+token).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn().Err(err).Msg("failed to read result cache")
		}
		return dto.PublicResultResponse{}, false
	}

	var response dto.PublicResultResponse
	if err := json.Unmarshal([]byte(cached), &response); err != nil {
		return dto.PublicResultResponse{}, false
	}

	return response, true
}

// Set stores the public view for a token.
func (c *ResultCache) Set(ctx context.Context, token string, response dto.PublicResultResponse) {
	if c == nil || c.client == nil {
		return
	}

	payload, err := json.Marshal(response)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, resultCacheKeyPrefix+token, payload, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("failed to store result cache")
	}
}

// Invalidate drops cached views for the given tokens. Called after a
// recompute or publish toggle touches their rows.
func (c *ResultCache) Invalidate(ctx context.Context, tokens ...string) {
	if c == nil || c.client == nil || len(tokens) == 0 {
		return
	}

	keys := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if token == "" {
			continue
		}
		keys = append(keys, resultCacheKeyPrefix+token)
	}
	if len(keys) == 0 {
		return
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("failed to invalidate result cache")
	}
}
