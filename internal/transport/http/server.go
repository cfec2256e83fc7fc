// Package http provides the HTTP server implementation for FoodAI.
package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/xiaot623/gogo/foodai/internal/config"
	"github.com/xiaot623/gogo/foodai/internal/service"
	v1 "github.com/xiaot623/gogo/foodai/internal/transport/http/v1"
	"github.com/xiaot623/gogo/foodai/internal/transport/ws"
)

// NewServer creates and configures the public HTTP server: the REST API and
// the WebSocket chat endpoint.
func NewServer(svc *service.Service, cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
	}))

	// Handlers
	v1Handler := v1.NewHandler(svc)
	wsServer := ws.NewServer(svc, ws.Options{AllowedOrigins: cfg.CORSOrigins})

	// Register Routes
	v1Handler.RegisterRoutes(e)
	e.GET("/api/chat/ws", wsServer.HandleWebSocket)

	return e
}
