package services

import (
	"context"
	"fmt"
	"sort"

	"stockmap/internal/models"
	"stockmap/internal/repositories"
)

// maxSuggestions caps how many ranked bins a put-away query returns.
const maxSuggestions = 10

// PutAwayService ranks candidate bins for an incoming quantity.
type PutAwayService interface {
	Suggest(ctx context.Context, quantity int, format models.LocationFormat) ([]*models.PutAwaySuggestion, error)
}

type putAwayService struct {
	zoneRepo repositories.ZoneRepository
}

func NewPutAwayService(zoneRepo repositories.ZoneRepository) PutAwayService {
	return &putAwayService{zoneRepo: zoneRepo}
}

func (s *putAwayService) Suggest(ctx context.Context, quantity int, format models.LocationFormat) ([]*models.PutAwaySuggestion, error) {
	if quantity <= 0 {
		return nil, models.NewValidationError("quantity", "quantity must be greater than 0")
	}
	zones, err := s.zoneRepo.ListTree(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading layout: %w", err)
	}
	return SuggestBins(zones, quantity, format), nil
}

// SuggestBins scans every active, non-reserved bin in active storage zones
// and ranks the ones the quantity fits into. Bins without a defined capacity
// are never suggested: fit cannot be verified. Bins that stay comparatively
// empty after placement rank first so stock spreads across the layout. The
// result is stable within a priority class and capped at 10 entries.
func SuggestBins(zones []*models.Zone, quantity int, format models.LocationFormat) []*models.PutAwaySuggestion {
	suggestions := []*models.PutAwaySuggestion{}
	for _, zone := range zones {
		if zone.Type != models.ZoneTypeStorage || !zone.IsActive {
			continue
		}
		for _, aisle := range zone.Aisles {
			if !aisle.IsActive {
				continue
			}
			for _, shelf := range aisle.Shelves {
				if !shelf.IsActive {
					continue
				}
				for _, bin := range shelf.Bins {
					sug := evaluateBin(zone, aisle, shelf, bin, quantity, format)
					if sug != nil {
						suggestions = append(suggestions, sug)
					}
				}
			}
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Priority.Rank() < suggestions[j].Priority.Rank()
	})
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

func evaluateBin(zone *models.Zone, aisle *models.Aisle, shelf *models.Shelf, bin *models.Bin, quantity int, format models.LocationFormat) *models.PutAwaySuggestion {
	if !bin.IsActive || bin.Reserved || bin.Capacity == nil {
		return nil
	}
	capacity := *bin.Capacity
	if bin.CurrentStock+quantity > capacity {
		return nil
	}

	utilizationAfter := float64(bin.CurrentStock+quantity) / float64(capacity)
	var priority models.PutAwayPriority
	switch {
	case utilizationAfter > 0.8:
		priority = models.PriorityLow
	case utilizationAfter > 0.5:
		priority = models.PriorityMedium
	default:
		priority = models.PriorityHigh
	}

	return &models.PutAwaySuggestion{
		BinID:             bin.ID,
		BinName:           bin.Name,
		LocationCode:      FormatLocation(zone, aisle, shelf, bin, format),
		AvailableCapacity: bin.Available(),
		UtilizationAfter:  utilizationAfter,
		Priority:          priority,
	}
}
