package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"clinic-scheduler/internal/delivery/dto"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// Bumping the generation orphans every cached grid at once.
	gridGenerationKey = "schedule_grid:generation"
	gridKeyFormat     = "schedule_grid:%d:%s:%s"

	gridCacheTimeout = 2 * time.Second
)

// ScheduleGridCache stores aggregated grids per date range. Every method is best
// effort: a failing cache only costs a recomputation.
type ScheduleGridCache interface {
	// Get returns a cached grid when present. The returned generation must be handed
	// back to Set so a grid computed before an invalidation is never stored as fresh.
	Get(ctx context.Context, startDate, endDate string) (grid *dto.ScheduleGridResponse, generation int64, hit bool)
	Set(ctx context.Context, generation int64, startDate, endDate string, grid *dto.ScheduleGridResponse)
	Invalidate(ctx context.Context)
}

type redisScheduleGridCache struct {
	client *redis.Client
	log    *logrus.Logger
	ttl    time.Duration
}

func NewScheduleGridCache(client *redis.Client, log *logrus.Logger, ttl time.Duration) ScheduleGridCache {
	return &redisScheduleGridCache{
		client: client,
		log:    log,
		ttl:    ttl,
	}
}

func (c *redisScheduleGridCache) Get(ctx context.Context, startDate, endDate string) (*dto.ScheduleGridResponse, int64, bool) {
	if c.ttl <= 0 {
		return nil, -1, false
	}

	ctx, cancel := context.WithTimeout(ctx, gridCacheTimeout)
	defer cancel()

	generation, err := c.generation(ctx)
	if err != nil {
		c.log.Warnf("Failed to read schedule grid generation: %+v", err)
		return nil, -1, false
	}

	raw, err := c.client.Get(ctx, gridKey(generation, startDate, endDate)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warnf("Failed to read cached schedule grid: %+v", err)
		}
		return nil, generation, false
	}

	var grid dto.ScheduleGridResponse
	if err := json.Unmarshal(raw, &grid); err != nil {
		c.log.Warnf("Failed to decode cached schedule grid: %+v", err)
		return nil, generation, false
	}

	return &grid, generation, true
}

func (c *redisScheduleGridCache) Set(ctx context.Context, generation int64, startDate, endDate string, grid *dto.ScheduleGridResponse) {
	if c.ttl <= 0 || generation < 0 || grid == nil {
		return
	}

	raw, err := json.Marshal(grid)
	if err != nil {
		c.log.Warnf("Failed to encode schedule grid: %+v", err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, gridCacheTimeout)
	defer cancel()

	if err := c.client.Set(ctx, gridKey(generation, startDate, endDate), raw, c.ttl).Err(); err != nil {
		c.log.Warnf("Failed to cache schedule grid: %+v", err)
	}
}

func (c *redisScheduleGridCache) Invalidate(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, gridCacheTimeout)
	defer cancel()

	if err := c.client.Incr(ctx, gridGenerationKey).Err(); err != nil {
		c.log.Warnf("Failed to invalidate schedule grid cache: %+v", err)
	}
}

func (c *redisScheduleGridCache) generation(ctx context.Context) (int64, error) {
	generation, err := c.client.Get(ctx, gridGenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return generation, err
}

func gridKey(generation int64, startDate, endDate string) string {
	return fmt.Sprintf(gridKeyFormat, generation, startDate, endDate)
}
