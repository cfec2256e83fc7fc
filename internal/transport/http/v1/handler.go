// Package v1 provides the HTTP handlers of the FoodAI API.
package v1

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/xiaot623/gogo/foodai/internal/domain"
	"github.com/xiaot623/gogo/foodai/internal/service"
)

// Version is reported by the root endpoint.
const Version = "1.0.0"

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Chat API
	e.POST("/api/chat/message", h.SendMessage)
	e.GET("/api/chat/history/:session_id", h.GetConversationHistory)
	e.DELETE("/api/chat/history/:session_id", h.ClearConversationHistory)
	e.GET("/api/chat/sessions/:session_id/memory", h.GetSessionMemory)
	e.GET("/api/chat/sessions/:session_id/events", h.GetSessionEvents)

	// Preferences API
	e.GET("/api/preferences/:user_id", h.GetPreferences)
	e.PUT("/api/preferences/:user_id", h.UpdatePreferences)

	// Orders API
	e.POST("/api/orders", h.CreateOrder)
	e.GET("/api/orders/user/:user_id", h.ListUserOrders)
	e.GET("/api/orders/:order_id", h.GetOrder)
	e.PATCH("/api/orders/:order_id/status", h.UpdateOrderStatus)

	// Catalog API
	e.GET("/api/foods", h.ListFoods)

	e.GET("/", h.Root)
	e.GET("/health", h.Health)
}

// Root returns the welcome payload.
func (h *Handler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Welcome to FoodAI Assistant API! 🍕",
		"docs":    "/docs",
		"version": Version,
	})
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "FoodAI Assistant",
	})
}

// errorResponse maps service errors to a status code and an error body.
func errorResponse(c echo.Context, err error) error {
	status, code := http.StatusInternalServerError, "internal_error"
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		status, code = http.StatusBadRequest, "invalid_request"
	case errors.Is(err, domain.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrOrderRejected):
		status, code = http.StatusUnprocessableEntity, "order_rejected"
	case errors.Is(err, domain.ErrCompletionUnavailable):
		status, code = http.StatusServiceUnavailable, "completion_unavailable"
	default:
		log.Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	}
	return c.JSON(status, map[string]string{
		"error": err.Error(),
		"code":  code,
	})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{
		"error": msg,
		"code":  "invalid_request",
	})
}
