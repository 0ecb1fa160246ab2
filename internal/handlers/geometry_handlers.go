package handlers

import (
	"errors"
	"net/http"

	"stockmap/internal/common"
	"stockmap/internal/editor"
	"stockmap/internal/models"
	"stockmap/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// GeometryHandlers serves the committed canvas geometry and accepts commit
// batches from the editor frontend. Commits are queued through the editor's
// committer so they reach the store in the order drags ended; the request
// does not wait for persistence.
type GeometryHandlers struct {
	geometryService services.GeometryService
	committer       *editor.Committer
}

func NewGeometryHandlers(geometryService services.GeometryService, committer *editor.Committer) *GeometryHandlers {
	return &GeometryHandlers{
		geometryService: geometryService,
		committer:       committer,
	}
}

// GetGeometry returns the committed geometry for every zone.
func (h *GeometryHandlers) GetGeometry(c echo.Context) error {
	geoms, err := h.geometryService.List(c.Request().Context())
	if err != nil {
		return common.SendServerError(c, "Failed to load geometry")
	}
	return c.JSON(http.StatusOK, map[string]any{"geometry": geoms})
}

// GeometryCommitRequest is one zone's geometry in a commit batch. Position
// and dimensions always arrive together.
type GeometryCommitRequest struct {
	ZoneID uuid.UUID `json:"zone_id"`
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
}

// CommitGeometry enqueues a commit batch. Returns 202: persistence is
// fire-and-forget relative to the interaction, failures surface through the
// committer's failure handler, never as a rollback of the client's state.
func (h *GeometryHandlers) CommitGeometry(c echo.Context) error {
	var reqs []GeometryCommitRequest
	if err := c.Bind(&reqs); err != nil {
		return common.SendClientError(c, "Invalid request payload")
	}
	if len(reqs) == 0 {
		return common.SendClientError(c, "Empty geometry batch")
	}

	records := make([]editor.CommitRecord, len(reqs))
	for i, r := range reqs {
		if r.ZoneID == uuid.Nil {
			return common.SendValidationError(c, "zone_id", "zone_id is required")
		}
		records[i] = editor.CommitRecord{
			ZoneID: r.ZoneID,
			Rect:   editor.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height},
		}
	}
	h.committer.Enqueue(records)
	return c.JSON(http.StatusAccepted, map[string]any{"queued": len(records)})
}

// ResetLayout rearranges all zones into the default grid and persists the
// arrangement atomically.
func (h *GeometryHandlers) ResetLayout(c echo.Context) error {
	geoms, err := h.geometryService.Reset(c.Request().Context())
	if err != nil {
		if errors.Is(err, models.ErrGeometryConflict) {
			return c.JSON(http.StatusConflict, common.CreateErrorResponse("GEOMETRY_CONFLICT", err.Error(), nil))
		}
		return common.SendServerError(c, "Failed to reset layout")
	}
	return c.JSON(http.StatusOK, map[string]any{"geometry": geoms})
}
