package handlers

import (
	"net/http"

	"stockmap/internal/common"
	"stockmap/internal/services"

	"github.com/labstack/echo/v4"
)

// SnapshotHandlers exports and lists layout snapshots in object storage.
type SnapshotHandlers struct {
	snapshotService services.SnapshotService
}

func NewSnapshotHandlers(snapshotService services.SnapshotService) *SnapshotHandlers {
	return &SnapshotHandlers{snapshotService: snapshotService}
}

func (h *SnapshotHandlers) ExportSnapshot(c echo.Context) error {
	objectName, err := h.snapshotService.Export(c.Request().Context())
	if err != nil {
		return common.SendServerError(c, "Failed to export snapshot")
	}
	return c.JSON(http.StatusCreated, map[string]any{"object": objectName})
}

func (h *SnapshotHandlers) ListSnapshots(c echo.Context) error {
	objects, err := h.snapshotService.List(c.Request().Context())
	if err != nil {
		return common.SendServerError(c, "Failed to list snapshots")
	}
	return c.JSON(http.StatusOK, map[string]any{"snapshots": objects})
}
