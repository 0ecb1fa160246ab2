package models

import "github.com/google/uuid"

// PutAwayPriority ranks a candidate bin. Bins that stay comparatively empty
// after placement rank higher, spreading load across the layout.
type PutAwayPriority string

const (
	PriorityHigh   PutAwayPriority = "high"   // utilization after <= 0.5
	PriorityMedium PutAwayPriority = "medium" // 0.5 < utilization after <= 0.8
	PriorityLow    PutAwayPriority = "low"    // utilization after > 0.8
)

// Rank orders priorities for sorting, high first.
func (p PutAwayPriority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// PutAwaySuggestion is one ranked candidate bin for an incoming quantity.
type PutAwaySuggestion struct {
	BinID             uuid.UUID       `json:"bin_id"`
	BinName           string          `json:"bin_name"`
	LocationCode      string          `json:"location_code"`
	AvailableCapacity int             `json:"available_capacity"`
	UtilizationAfter  float64         `json:"utilization_after"`
	Priority          PutAwayPriority `json:"priority"`
}
