// Package analytics computes bottom-up occupancy rollups over the layout.
package analytics

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"stockmap/internal/caching"
	"stockmap/internal/models"
	"stockmap/internal/repositories"
)

// statsTTL bounds how stale a cached rollup may get before the next request
// recomputes it.
const statsTTL = 5 * time.Minute

// AnalyticsService serves layout occupancy statistics, caching the rollup.
type AnalyticsService struct {
	zoneRepo repositories.ZoneRepository
	cacheSvc caching.CacheService
}

func NewAnalyticsService(zoneRepo repositories.ZoneRepository, cacheSvc caching.CacheService) *AnalyticsService {
	return &AnalyticsService{zoneRepo: zoneRepo, cacheSvc: cacheSvc}
}

// LayoutStats returns the current occupancy rollup, from cache when fresh.
func (s *AnalyticsService) LayoutStats(ctx context.Context) (*models.LayoutStats, error) {
	if s.cacheSvc != nil {
		if cached, err := s.cacheSvc.GetLayoutStats(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}
	stats, err := s.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// Refresh recomputes the rollup from the hierarchy and re-primes the cache.
func (s *AnalyticsService) Refresh(ctx context.Context) (*models.LayoutStats, error) {
	zones, err := s.zoneRepo.ListTree(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading layout: %w", err)
	}
	stats := Aggregate(zones)
	if s.cacheSvc != nil {
		if err := s.cacheSvc.SetLayoutStats(ctx, &stats, statsTTL); err != nil {
			log.Printf("failed to cache layout stats: %v", err)
		}
	}
	return &stats, nil
}

// Aggregate rolls occupancy statistics up over the whole layout. It is pure:
// the same tree always yields identical stats, it never fails, and a layout
// with zero bins reports a utilization rate of 0.
func Aggregate(zones []*models.Zone) models.LayoutStats {
	stats := models.LayoutStats{TotalZones: len(zones)}
	for _, zone := range zones {
		stats.TotalAisles += len(zone.Aisles)
		for _, aisle := range zone.Aisles {
			stats.TotalShelves += len(aisle.Shelves)
			for _, shelf := range aisle.Shelves {
				stats.TotalBins += len(shelf.Bins)
				for _, bin := range shelf.Bins {
					if bin.CurrentStock > 0 {
						stats.OccupiedBins++
					}
				}
			}
		}
	}
	stats.EmptyBins = stats.TotalBins - stats.OccupiedBins
	if stats.TotalBins > 0 {
		stats.UtilizationRate = int(math.Round(100 * float64(stats.OccupiedBins) / float64(stats.TotalBins)))
	}
	return stats
}
