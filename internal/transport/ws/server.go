// Package ws serves the chat over WebSocket connections.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/xiaot623/gogo/foodai/internal/domain"
	"github.com/xiaot623/gogo/foodai/internal/service"
)

// Options tune connection handling. Zero fields take defaults.
type Options struct {
	AllowedOrigins []string
	MaxMessageSize int64
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	PingInterval   time.Duration
}

func (o *Options) setDefaults() {
	if o.MaxMessageSize == 0 {
		// Base64 images make frames large.
		o.MaxMessageSize = 16 << 20
	}
	if o.ReadTimeout == 0 {
		o.ReadTimeout = 60 * time.Second
	}
	if o.WriteTimeout == 0 {
		o.WriteTimeout = 10 * time.Second
	}
	if o.PingInterval == 0 {
		o.PingInterval = o.ReadTimeout * 9 / 10
	}
}

// Server handles WebSocket connections.
type Server struct {
	service  *service.Service
	opts     Options
	upgrader websocket.Upgrader
}

// NewServer creates a new WebSocket server.
func NewServer(svc *service.Service, opts Options) *Server {
	opts.setDefaults()
	s := &Server{service: svc, opts: opts}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	return s
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range s.opts.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// connection is one client socket. Writes go through send and are performed
// by writePump only.
type connection struct {
	ws     *websocket.Conn
	send   chan []byte
	done   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once

	mu        sync.Mutex
	sessionID string
	userID    string
}

func (c *connection) close() {
	c.once.Do(func() {
		c.cancel()
		close(c.done)
		c.ws.Close()
	})
}

func (c *connection) binding() (string, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID, c.userID
}

func (c *connection) bind(sessionID, userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessionID = sessionID
	if userID != "" {
		c.userID = userID
	}
}

// HandleWebSocket handles WebSocket upgrade and connection lifecycle.
// GET /api/chat/ws
func (s *Server) HandleWebSocket(c echo.Context) error {
	ws, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Warnf("failed to upgrade WebSocket: %v", err)
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	conn := &connection{
		ws:     ws,
		send:   make(chan []byte, 16),
		done:   make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
	}
	ws.SetReadLimit(s.opts.MaxMessageSize)

	go s.writePump(conn)
	go s.readPump(conn)

	return nil
}

// readPump reads messages from the WebSocket connection.
func (s *Server) readPump(conn *connection) {
	defer conn.close()

	conn.ws.SetReadDeadline(time.Now().Add(s.opts.ReadTimeout))
	conn.ws.SetPongHandler(func(string) error {
		conn.ws.SetReadDeadline(time.Now().Add(s.opts.ReadTimeout))
		return nil
	})

	for {
		_, message, err := conn.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warnf("WebSocket error: %v", err)
			}
			return
		}

		s.handleMessage(conn, message)
	}
}

// writePump writes messages to the WebSocket connection.
func (s *Server) writePump(conn *connection) {
	ticker := time.NewTicker(s.opts.PingInterval)
	defer func() {
		ticker.Stop()
		conn.close()
	}()

	for {
		select {
		case message := <-conn.send:
			conn.ws.SetWriteDeadline(time.Now().Add(s.opts.WriteTimeout))
			if err := conn.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Warnf("failed to write message: %v", err)
				return
			}

		case <-ticker.C:
			conn.ws.SetWriteDeadline(time.Now().Add(s.opts.WriteTimeout))
			if err := conn.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-conn.done:
			conn.ws.SetWriteDeadline(time.Now().Add(s.opts.WriteTimeout))
			conn.ws.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}

// handleMessage dispatches incoming messages to appropriate handlers.
func (s *Server) handleMessage(conn *connection, data []byte) {
	var baseMsg BaseMessage
	if err := json.Unmarshal(data, &baseMsg); err != nil {
		s.sendError(conn, "", ErrorCodeInvalidMessage, "invalid JSON message")
		return
	}

	switch baseMsg.Type {
	case TypeHello:
		s.handleHello(conn, data)
	case TypeChat:
		s.handleChat(conn, data)
	case TypeClearSession:
		s.handleClearSession(conn, baseMsg)
	default:
		s.sendError(conn, baseMsg.RequestID, ErrorCodeInvalidMessage, "unknown message type: "+baseMsg.Type)
	}
}

// handleHello binds the connection to a session, generating one if absent.
func (s *Server) handleHello(conn *connection, data []byte) {
	var msg HelloMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		s.sendError(conn, "", ErrorCodeInvalidMessage, "invalid hello message")
		return
	}

	sessionID := msg.SessionID
	if sessionID == "" {
		sessionID = "sess_" + uuid.New().String()[:8]
	}
	conn.bind(sessionID, msg.UserID)
	_, userID := conn.binding()

	s.sendJSON(conn, HelloAckMessage{
		BaseMessage: BaseMessage{
			Type:      TypeHelloAck,
			Ts:        time.Now().UnixMilli(),
			RequestID: msg.RequestID,
			SessionID: sessionID,
		},
		UserID: userID,
	})
	log.Infof("hello handshake completed for session: %s", sessionID)
}

// handleChat answers a chat message without blocking the read loop.
func (s *Server) handleChat(conn *connection, data []byte) {
	var msg ChatMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		s.sendError(conn, "", ErrorCodeInvalidMessage, "invalid chat message")
		return
	}

	boundSession, boundUser := conn.binding()
	req := &domain.ChatRequest{
		SessionID: msg.SessionID,
		UserID:    msg.UserID,
		Message:   msg.Message,
		ImageData: msg.ImageData,
	}
	if req.SessionID == "" {
		req.SessionID = boundSession
	}
	if req.UserID == "" {
		req.UserID = boundUser
	}
	if req.SessionID == "" || req.UserID == "" {
		s.sendError(conn, msg.RequestID, ErrorCodeSessionRequired, "send hello or set session_id and user_id")
		return
	}

	go func() {
		// Cancelled when the socket closes.
		resp, err := s.service.HandleMessage(conn.ctx, req)
		if err != nil {
			s.sendServiceError(conn, msg.RequestID, req.SessionID, err)
			return
		}
		s.sendJSON(conn, ChatReplyMessage{
			BaseMessage: BaseMessage{
				Type:      TypeChatReply,
				Ts:        time.Now().UnixMilli(),
				RequestID: msg.RequestID,
				SessionID: resp.SessionID,
			},
			Message:   resp.Message,
			Timestamp: resp.Timestamp,
		})
	}()
}

func (s *Server) handleClearSession(conn *connection, msg BaseMessage) {
	sessionID := msg.SessionID
	if sessionID == "" {
		sessionID, _ = conn.binding()
	}
	if sessionID == "" {
		s.sendError(conn, msg.RequestID, ErrorCodeSessionRequired, "send hello or set session_id")
		return
	}

	if err := s.service.ClearSession(conn.ctx, sessionID); err != nil {
		s.sendServiceError(conn, msg.RequestID, sessionID, err)
		return
	}
	s.sendJSON(conn, BaseMessage{
		Type:      TypeSessionCleared,
		Ts:        time.Now().UnixMilli(),
		RequestID: msg.RequestID,
		SessionID: sessionID,
	})
}

func (s *Server) sendServiceError(conn *connection, requestID, sessionID string, err error) {
	code := ErrorCodeInternalError
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		code = ErrorCodeInvalidRequest
	case errors.Is(err, domain.ErrCompletionUnavailable):
		code = ErrorCodeCompletionUnavailable
	default:
		log.Errorf("chat over WebSocket failed for session %s: %v", sessionID, err)
	}
	s.sendJSON(conn, ErrorMessage{
		BaseMessage: BaseMessage{
			Type:      TypeError,
			Ts:        time.Now().UnixMilli(),
			RequestID: requestID,
			SessionID: sessionID,
		},
		Code:    code,
		Message: err.Error(),
	})
}

// sendError sends an error message to a connection.
func (s *Server) sendError(conn *connection, requestID, code, message string) {
	sessionID, _ := conn.binding()
	s.sendJSON(conn, ErrorMessage{
		BaseMessage: BaseMessage{
			Type:      TypeError,
			Ts:        time.Now().UnixMilli(),
			RequestID: requestID,
			SessionID: sessionID,
		},
		Code:    code,
		Message: message,
	})
}

func (s *Server) sendJSON(conn *connection, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Errorf("failed to marshal WebSocket message: %v", err)
		return
	}
	select {
	case conn.send <- data:
	case <-conn.done:
	}
}
