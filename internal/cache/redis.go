package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/loplicat/airport-api-service/config"
	"github.com/loplicat/airport-api-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

// FlightPage is the cached form of one flight listing page.
type FlightPage struct {
	Flights []domain.Flight `json:"flights"`
	Total   int64           `json:"total"`
}

type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL: flightsTTL,
	}
}

// GetFlightPage returns the cached page for the key, or (nil, nil) on a miss.
func (c *RedisCache) GetFlightPage(ctx context.Context, key string) (*FlightPage, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var page FlightPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *RedisCache) SetFlightPage(ctx context.Context, key string, page *FlightPage) error {
	payload, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, c.flightsTTL).Err()
}

// FlightPageKey derives the cache key for one filtered, paginated listing.
func FlightPageKey(source, destination string, limit, offset int) string {
	return fmt.Sprintf("cache:flights:%s:%s:%d:%d", source, destination, limit, offset)
}
