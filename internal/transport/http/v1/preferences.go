package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/xiaot623/gogo/foodai/internal/domain"
)

// GetPreferences returns a user's preferences, creating defaults on first access.
// GET /api/preferences/:user_id
func (h *Handler) GetPreferences(c echo.Context) error {
	prefs, err := h.service.GetPreferences(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, prefs)
}

// UpdatePreferences replaces a user's preferences.
// PUT /api/preferences/:user_id
func (h *Handler) UpdatePreferences(c echo.Context) error {
	var prefs domain.Preferences
	if err := c.Bind(&prefs); err != nil {
		return badRequest(c, "invalid request body")
	}

	updated, err := h.service.UpdatePreferences(c.Request().Context(), c.Param("user_id"), &prefs)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}
