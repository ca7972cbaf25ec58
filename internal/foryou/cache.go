package foryou

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ProfileCache keeps the interest profile warm across the pagination calls of
// one feed session. Lookups are best-effort: a cache failure is a miss, never
// a request failure.
type ProfileCache interface {
	Get(ctx context.Context, viewerID string) (*InterestProfile, bool)
	Set(ctx context.Context, viewerID string, p *InterestProfile)
	Invalidate(ctx context.Context, viewerID string) error
}

const profileKeyPrefix = "foryou:profile:"

type redisProfileCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewProfileCache(rdb *redis.Client, ttl time.Duration) ProfileCache {
	return &redisProfileCache{rdb: rdb, ttl: ttl}
}

func (c *redisProfileCache) Get(ctx context.Context, viewerID string) (*InterestProfile, bool) {
	b, err := c.rdb.Get(ctx, profileKeyPrefix+viewerID).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("profile cache get: %v", err)
		}
		return nil, false
	}
	var p InterestProfile
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, false
	}
	if p.Hashtags == nil || p.Keywords == nil || p.Authors == nil {
		return nil, false
	}
	return &p, true
}

func (c *redisProfileCache) Set(ctx context.Context, viewerID string, p *InterestProfile) {
	b, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, profileKeyPrefix+viewerID, b, c.ttl).Err(); err != nil {
		log.Printf("profile cache set: %v", err)
	}
}

// Invalidate drops the cached profile; called when the viewer likes or
// comments, since either changes the interaction history the profile is
// mined from.
func (c *redisProfileCache) Invalidate(ctx context.Context, viewerID string) error {
	return c.rdb.Del(ctx, profileKeyPrefix+viewerID).Err()
}
