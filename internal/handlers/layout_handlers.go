package handlers

import (
	"errors"
	"net/http"

	"stockmap/internal/common"
	"stockmap/internal/models"
	"stockmap/internal/repositories"
	"stockmap/internal/services"

	"github.com/labstack/echo/v4"
)

// LayoutHandlers handles hierarchy CRUD requests: zones, aisles, shelves
// and bins.
type LayoutHandlers struct {
	layoutService services.LayoutService
}

func NewLayoutHandlers(layoutService services.LayoutService) *LayoutHandlers {
	return &LayoutHandlers{layoutService: layoutService}
}

// mutationError maps service errors onto HTTP responses.
func mutationError(c echo.Context, err error) error {
	if ve, ok := models.AsValidationError(err); ok {
		return common.SendValidationError(c, ve.Field, ve.Message)
	}
	if cv, ok := models.AsCapacityViolation(err); ok {
		return c.JSON(http.StatusConflict, common.CreateErrorResponse("CAPACITY_VIOLATION", cv.Error(), nil))
	}
	if errors.Is(err, models.ErrCascadeNotAcknowledged) {
		return c.JSON(http.StatusConflict, common.CreateErrorResponse("CASCADE_REQUIRED", err.Error(), nil))
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return common.SendNotFoundError(c, "Resource")
	}
	return common.SendServerError(c, "Operation failed")
}

// --- zones ---

// GetLayout returns the full Zone/Aisle/Shelf/Bin tree.
func (h *LayoutHandlers) GetLayout(c echo.Context) error {
	zones, err := h.layoutService.GetTree(c.Request().Context())
	if err != nil {
		return common.SendServerError(c, "Failed to load layout")
	}
	return c.JSON(http.StatusOK, map[string]any{"zones": zones})
}

// GetZone returns a single zone by id.
func (h *LayoutHandlers) GetZone(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "zone id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	zone, err := h.layoutService.GetZone(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.SendNotFoundError(c, "Zone")
		}
		return common.SendServerError(c, "Failed to load zone")
	}
	return c.JSON(http.StatusOK, zone)
}

// CreateZoneRequest is the zone creation payload.
type CreateZoneRequest struct {
	Name        string          `json:"name"`
	Code        string          `json:"code"`
	Description *string         `json:"description"`
	Color       string          `json:"color"`
	Type        models.ZoneType `json:"type"`
}

func (h *LayoutHandlers) CreateZone(c echo.Context) error {
	var req CreateZoneRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request payload")
	}

	zone := &models.Zone{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		Color:       req.Color,
		Type:        req.Type,
		IsActive:    true,
	}
	if err := h.layoutService.CreateZone(c.Request().Context(), zone); err != nil {
		return mutationError(c, err)
	}
	return c.JSON(http.StatusCreated, zone)
}

// UpdateZoneRequest is the zone update payload.
type UpdateZoneRequest struct {
	Name        string          `json:"name"`
	Code        string          `json:"code"`
	Description *string         `json:"description"`
	Color       string          `json:"color"`
	Type        models.ZoneType `json:"type"`
	IsActive    bool            `json:"is_active"`
}

func (h *LayoutHandlers) UpdateZone(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "zone id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	var req UpdateZoneRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request payload")
	}

	zone := &models.Zone{
		ID:          id,
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		Color:       req.Color,
		Type:        req.Type,
		IsActive:    req.IsActive,
	}
	if err := h.layoutService.UpdateZone(c.Request().Context(), zone); err != nil {
		return mutationError(c, err)
	}
	return c.JSON(http.StatusOK, zone)
}

func (h *LayoutHandlers) DeleteZone(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "zone id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	cascade := c.QueryParam("cascade") == "true"
	if err := h.layoutService.DeleteZone(c.Request().Context(), id, cascade); err != nil {
		return mutationError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// --- aisles ---

// AisleRequest is the aisle create/update payload.
type AisleRequest struct {
	Name        string               `json:"name"`
	Code        string               `json:"code"`
	Description *string              `json:"description"`
	MaxHeight   *float64             `json:"max_height"`
	Width       *float64             `json:"width"`
	Length      *float64             `json:"length"`
	Unit        models.DimensionUnit `json:"unit"`
	IsActive    *bool                `json:"is_active"`
}

func (r AisleRequest) toModel() *models.Aisle {
	a := &models.Aisle{
		Name:        r.Name,
		Code:        r.Code,
		Description: r.Description,
		MaxHeight:   r.MaxHeight,
		Width:       r.Width,
		Length:      r.Length,
		Unit:        r.Unit,
		IsActive:    true,
	}
	if r.IsActive != nil {
		a.IsActive = *r.IsActive
	}
	return a
}

func (h *LayoutHandlers) CreateAisle(c echo.Context) error {
	zoneID, err := common.ValidateUUID(c.Param("zoneId"), "zone id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	var req AisleRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request payload")
	}
	aisle := req.toModel()
	if err := h.layoutService.CreateAisle(c.Request().Context(), zoneID, aisle); err != nil {
		return mutationError(c, err)
	}
	return c.JSON(http.StatusCreated, aisle)
}

func (h *LayoutHandlers) UpdateAisle(c echo.Context) error {
	zoneID, err := common.ValidateUUID(c.Param("zoneId"), "zone id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	id, err := common.ValidateUUID(c.Param("id"), "aisle id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	var req AisleRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request payload")
	}
	aisle := req.toModel()
	aisle.ID = id
	aisle.ZoneID = zoneID
	if err := h.layoutService.UpdateAisle(c.Request().Context(), aisle); err != nil {
		return mutationError(c, err)
	}
	return c.JSON(http.StatusOK, aisle)
}

func (h *LayoutHandlers) DeleteAisle(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "aisle id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	cascade := c.QueryParam("cascade") == "true"
	if err := h.layoutService.DeleteAisle(c.Request().Context(), id, cascade); err != nil {
		return mutationError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// --- shelves ---

// ShelfRequest is the shelf create/update payload.
type ShelfRequest struct {
	Name       string   `json:"name"`
	Code       string   `json:"code"`
	Level      int      `json:"level"`
	MaxWeight  *float64 `json:"max_weight"`
	WeightUnit *string  `json:"weight_unit"`
	IsActive   *bool    `json:"is_active"`
}

func (r ShelfRequest) toModel() *models.Shelf {
	s := &models.Shelf{
		Name:       r.Name,
		Code:       r.Code,
		Level:      r.Level,
		MaxWeight:  r.MaxWeight,
		WeightUnit: r.WeightUnit,
		IsActive:   true,
	}
	if r.IsActive != nil {
		s.IsActive = *r.IsActive
	}
	return s
}

func (h *LayoutHandlers) CreateShelf(c echo.Context) error {
	aisleID, err := common.ValidateUUID(c.Param("aisleId"), "aisle id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	var req ShelfRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request payload")
	}
	shelf := req.toModel()
	if err := h.layoutService.CreateShelf(c.Request().Context(), aisleID, shelf); err != nil {
		return mutationError(c, err)
	}
	return c.JSON(http.StatusCreated, shelf)
}

func (h *LayoutHandlers) UpdateShelf(c echo.Context) error {
	aisleID, err := common.ValidateUUID(c.Param("aisleId"), "aisle id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	id, err := common.ValidateUUID(c.Param("id"), "shelf id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	var req ShelfRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request payload")
	}
	shelf := req.toModel()
	shelf.ID = id
	shelf.AisleID = aisleID
	if err := h.layoutService.UpdateShelf(c.Request().Context(), shelf); err != nil {
		return mutationError(c, err)
	}
	return c.JSON(http.StatusOK, shelf)
}

func (h *LayoutHandlers) DeleteShelf(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "shelf id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	cascade := c.QueryParam("cascade") == "true"
	if err := h.layoutService.DeleteShelf(c.Request().Context(), id, cascade); err != nil {
		return mutationError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// --- bins ---

// BinRequest is the bin create/update payload.
type BinRequest struct {
	Name         string `json:"name"`
	Code         string `json:"code"`
	Position     int    `json:"position"`
	Capacity     *int   `json:"capacity"`
	CurrentStock int    `json:"current_stock"`
	Reserved     bool   `json:"reserved"`
	IsActive     *bool  `json:"is_active"`
}

func (r BinRequest) toModel() *models.Bin {
	b := &models.Bin{
		Name:         r.Name,
		Code:         r.Code,
		Position:     r.Position,
		Capacity:     r.Capacity,
		CurrentStock: r.CurrentStock,
		Reserved:     r.Reserved,
		IsActive:     true,
	}
	if r.IsActive != nil {
		b.IsActive = *r.IsActive
	}
	return b
}

func (h *LayoutHandlers) CreateBin(c echo.Context) error {
	shelfID, err := common.ValidateUUID(c.Param("shelfId"), "shelf id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	var req BinRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request payload")
	}
	bin := req.toModel()
	if err := h.layoutService.CreateBin(c.Request().Context(), shelfID, bin); err != nil {
		return mutationError(c, err)
	}
	return c.JSON(http.StatusCreated, bin)
}

func (h *LayoutHandlers) UpdateBin(c echo.Context) error {
	shelfID, err := common.ValidateUUID(c.Param("shelfId"), "shelf id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	id, err := common.ValidateUUID(c.Param("id"), "bin id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	var req BinRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request payload")
	}
	bin := req.toModel()
	bin.ID = id
	bin.ShelfID = shelfID
	if err := h.layoutService.UpdateBin(c.Request().Context(), bin); err != nil {
		return mutationError(c, err)
	}
	return c.JSON(http.StatusOK, bin)
}

func (h *LayoutHandlers) DeleteBin(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "bin id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	if err := h.layoutService.DeleteBin(c.Request().Context(), id); err != nil {
		return mutationError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
