package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/xiaot623/gogo/foodai/internal/domain"
)

// CreateOrder creates a new order.
// POST /api/orders
func (h *Handler) CreateOrder(c echo.Context) error {
	var req domain.OrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	resp, err := h.service.CreateOrder(c.Request().Context(), &req)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// ListUserOrders lists a user's orders, newest first.
// GET /api/orders/user/:user_id
func (h *Handler) ListUserOrders(c echo.Context) error {
	orders, err := h.service.ListUserOrders(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// GetOrder returns one order.
// GET /api/orders/:order_id
func (h *Handler) GetOrder(c echo.Context) error {
	order, err := h.service.GetOrder(c.Request().Context(), c.Param("order_id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus moves an order to a new status.
// PATCH /api/orders/:order_id/status
func (h *Handler) UpdateOrderStatus(c echo.Context) error {
	var req domain.OrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Status == "" {
		return badRequest(c, "status is required")
	}

	order, err := h.service.UpdateOrderStatus(c.Request().Context(), c.Param("order_id"), req.Status)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, order)
}
