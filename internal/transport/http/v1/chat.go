package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/xiaot623/gogo/foodai/internal/domain"
)

// SendMessage sends a text or image message to the assistant.
// POST /api/chat/message
func (h *Handler) SendMessage(c echo.Context) error {
	var req domain.ChatRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	resp, err := h.service.HandleMessage(c.Request().Context(), &req)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// GetConversationHistory returns the durable log of a session.
// GET /api/chat/history/:session_id
func (h *Handler) GetConversationHistory(c echo.Context) error {
	messages, err := h.service.GetConversationHistory(c.Request().Context(), c.Param("session_id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, messages)
}

// ClearConversationHistory deletes the log and the memory of a session.
// DELETE /api/chat/history/:session_id
func (h *Handler) ClearConversationHistory(c echo.Context) error {
	if err := h.service.ClearSession(c.Request().Context(), c.Param("session_id")); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Conversation history cleared successfully",
	})
}

// GetSessionMemory exports the in-memory turns of a session.
// GET /api/chat/sessions/:session_id/memory
func (h *Handler) GetSessionMemory(c echo.Context) error {
	sessionID := c.Param("session_id")
	return c.JSON(http.StatusOK, map[string]interface{}{
		"session_id": sessionID,
		"turns":      h.service.SessionMemory(sessionID),
	})
}

// GetSessionEvents lists completion trace events of a session.
// GET /api/chat/sessions/:session_id/events
func (h *Handler) GetSessionEvents(c echo.Context) error {
	events, err := h.service.GetSessionEvents(c.Request().Context(), c.Param("session_id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"events": events,
	})
}
