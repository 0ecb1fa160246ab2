package handlers

import (
	"net/http"

	"stockmap/internal/analytics"
	"stockmap/internal/common"

	"github.com/labstack/echo/v4"
)

// StatsHandlers serves layout occupancy statistics.
type StatsHandlers struct {
	analyticsSvc *analytics.AnalyticsService
}

func NewStatsHandlers(analyticsSvc *analytics.AnalyticsService) *StatsHandlers {
	return &StatsHandlers{analyticsSvc: analyticsSvc}
}

func (h *StatsHandlers) GetLayoutStats(c echo.Context) error {
	stats, err := h.analyticsSvc.LayoutStats(c.Request().Context())
	if err != nil {
		return common.SendServerError(c, "Failed to compute layout stats")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"stats": stats,
		"level": stats.Level(),
	})
}
