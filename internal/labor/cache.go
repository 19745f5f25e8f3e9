package labor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jonathan/career-compass/internal/logger"
	"github.com/jonathan/career-compass/internal/types"
)

// DefaultCacheTTL is used when NewCachedProvider is given a non-positive TTL.
const DefaultCacheTTL = 24 * time.Hour

// CachedProvider is a read-through Redis cache in front of another Provider.
// Cache errors are logged and never fail an estimate.
type CachedProvider struct {
	next   Provider
	rdb    redis.UniversalClient
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedProvider wraps next with a Redis cache.
func NewCachedProvider(next Provider, rdb redis.UniversalClient, ttl time.Duration, log *zap.Logger) *CachedProvider {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedProvider{
		next:   next,
		rdb:    rdb,
		ttl:    ttl,
		logger: logger.WithFields(log, zap.String("component", "labor_cache")),
	}
}

func cacheKey(zip, careerID string) string {
	return fmt.Sprintf("labor:%s:%s", zip, careerID)
}

// Estimate implements Provider.
func (p *CachedProvider) Estimate(ctx context.Context, zipCode string, careers []types.Career) (map[string]Estimate, error) {
	out := make(map[string]Estimate, len(careers))
	if len(careers) == 0 {
		return out, nil
	}

	keys := make([]string, len(careers))
	for i, c := range careers {
		keys[i] = cacheKey(zipCode, c.ID)
	}

	var misses []types.Career
	vals, err := p.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		p.logger.Warn("labor cache read failed", zap.Error(err))
		misses = careers
	} else {
		for i, v := range vals {
			s, ok := v.(string)
			if !ok {
				misses = append(misses, careers[i])
				continue
			}
			var est Estimate
			if err := json.Unmarshal([]byte(s), &est); err != nil {
				misses = append(misses, careers[i])
				continue
			}
			out[careers[i].ID] = est
		}
	}

	if len(misses) == 0 {
		return out, nil
	}

	fresh, err := p.next.Estimate(ctx, zipCode, misses)
	if err != nil {
		return nil, err
	}

	pipe := p.rdb.Pipeline()
	for id, est := range fresh {
		out[id] = est
		data, err := json.Marshal(est)
		if err != nil {
			continue
		}
		pipe.Set(ctx, cacheKey(zipCode, id), data, p.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		p.logger.Warn("labor cache write failed", zap.Error(err))
	}
	return out, nil
}
