package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ListFoods lists the food catalog.
// GET /api/foods?cuisine=
func (h *Handler) ListFoods(c echo.Context) error {
	items, err := h.service.ListFoods(c.Request().Context(), c.QueryParam("cuisine"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, items)
}
