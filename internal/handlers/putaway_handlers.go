package handlers

import (
	"net/http"

	"stockmap/internal/common"
	"stockmap/internal/models"
	"stockmap/internal/services"

	"github.com/labstack/echo/v4"
)

// PutAwayHandlers serves bin ranking for incoming stock.
type PutAwayHandlers struct {
	putAwayService services.PutAwayService
}

func NewPutAwayHandlers(putAwayService services.PutAwayService) *PutAwayHandlers {
	return &PutAwayHandlers{putAwayService: putAwayService}
}

// SuggestRequest asks where to put a quantity of a product.
type SuggestRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (h *PutAwayHandlers) Suggest(c echo.Context) error {
	var req SuggestRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request payload")
	}

	suggestions, err := h.putAwayService.Suggest(c.Request().Context(), req.Quantity, models.DefaultLocationFormat())
	if err != nil {
		if ve, ok := models.AsValidationError(err); ok {
			return common.SendValidationError(c, ve.Field, ve.Message)
		}
		return common.SendServerError(c, "Failed to compute suggestions")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"product_id":  req.ProductID,
		"quantity":    req.Quantity,
		"suggestions": suggestions,
	})
}
