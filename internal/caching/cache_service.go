package caching

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"stockmap/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	layoutStatsKey    = "layout:stats"
	layoutGeometryKey = "layout:geometry"
)

// CacheService caches derived layout data. Misses return (nil, nil); the
// cache is an optimization, never a source of truth.
type CacheService interface {
	GetLayoutStats(ctx context.Context) (*models.LayoutStats, error)
	SetLayoutStats(ctx context.Context, stats *models.LayoutStats, ttl time.Duration) error
	InvalidateLayoutStats(ctx context.Context) error

	GetGeometry(ctx context.Context) ([]*models.ZoneGeometry, error)
	SetGeometry(ctx context.Context, geoms []*models.ZoneGeometry, ttl time.Duration) error
	InvalidateGeometry(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

// NewRedisCacheService connects a cache service to Redis. The address may
// carry a redis:// or rediss:// prefix.
func NewRedisCacheService(addr, password string, db int) CacheService {
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})
	return &redisCacheService{client: client}
}

func (s *redisCacheService) GetLayoutStats(ctx context.Context) (*models.LayoutStats, error) {
	data, err := s.client.Get(ctx, layoutStatsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	stats := &models.LayoutStats{}
	if err := json.Unmarshal(data, stats); err != nil {
		log.Printf("discarding unreadable cached layout stats: %v", err)
		return nil, nil
	}
	return stats, nil
}

func (s *redisCacheService) SetLayoutStats(ctx context.Context, stats *models.LayoutStats, ttl time.Duration) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, layoutStatsKey, data, ttl).Err()
}

func (s *redisCacheService) InvalidateLayoutStats(ctx context.Context) error {
	return s.client.Del(ctx, layoutStatsKey).Err()
}

func (s *redisCacheService) GetGeometry(ctx context.Context) ([]*models.ZoneGeometry, error) {
	data, err := s.client.Get(ctx, layoutGeometryKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var geoms []*models.ZoneGeometry
	if err := json.Unmarshal(data, &geoms); err != nil {
		log.Printf("discarding unreadable cached geometry: %v", err)
		return nil, nil
	}
	return geoms, nil
}

func (s *redisCacheService) SetGeometry(ctx context.Context, geoms []*models.ZoneGeometry, ttl time.Duration) error {
	data, err := json.Marshal(geoms)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, layoutGeometryKey, data, ttl).Err()
}

func (s *redisCacheService) InvalidateGeometry(ctx context.Context) error {
	return s.client.Del(ctx, layoutGeometryKey).Err()
}
