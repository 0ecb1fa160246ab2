package models

// UtilizationLevel is the advisory classification of a utilization rate.
// It feeds recommendations, never hard errors.
type UtilizationLevel string

const (
	UtilizationCritical UtilizationLevel = "critical" // >= 90%
	UtilizationHigh     UtilizationLevel = "high"     // 70-89%
	UtilizationGood     UtilizationLevel = "good"     // 40-69%
	UtilizationLow      UtilizationLevel = "low"      // < 40%
)

// LayoutStats is the bottom-up occupancy rollup over an entire layout.
type LayoutStats struct {
	TotalZones      int `json:"total_zones"`
	TotalAisles     int `json:"total_aisles"`
	TotalShelves    int `json:"total_shelves"`
	TotalBins       int `json:"total_bins"`
	OccupiedBins    int `json:"occupied_bins"`
	EmptyBins       int `json:"empty_bins"`
	UtilizationRate int `json:"utilization_rate"` // percent, rounded
}

// Level classifies the layout's utilization rate.
func (s LayoutStats) Level() UtilizationLevel {
	switch {
	case s.UtilizationRate >= 90:
		return UtilizationCritical
	case s.UtilizationRate >= 70:
		return UtilizationHigh
	case s.UtilizationRate >= 40:
		return UtilizationGood
	default:
		return UtilizationLow
	}
}
