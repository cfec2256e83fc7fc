package ws

import "time"

// Message types from client to server
const (
	TypeHello        = "hello"
	TypeChat         = "chat"
	TypeClearSession = "clear_session"
)

// Message types from server to client
const (
	TypeHelloAck       = "hello_ack"
	TypeChatReply      = "chat_reply"
	TypeSessionCleared = "session_cleared"
	TypeError          = "error"
)

// BaseMessage contains common fields for all messages.
type BaseMessage struct {
	Type      string `json:"type"`
	Ts        int64  `json:"ts"`
	RequestID string `json:"request_id,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

// HelloMessage binds the connection to a session and a user.
type HelloMessage struct {
	BaseMessage
	UserID string `json:"user_id,omitempty"`
}

// HelloAckMessage confirms the binding.
type HelloAckMessage struct {
	BaseMessage
	UserID string `json:"user_id,omitempty"`
}

// ChatMessage carries one user message. Empty session_id and user_id fall
// back to the values bound by hello.
type ChatMessage struct {
	BaseMessage
	UserID    string `json:"user_id,omitempty"`
	Message   string `json:"message"`
	ImageData string `json:"image_data,omitempty"`
}

// ChatReplyMessage carries the assistant's reply.
type ChatReplyMessage struct {
	BaseMessage
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorMessage is sent when a frame cannot be served.
type ErrorMessage struct {
	BaseMessage
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes
const (
	ErrorCodeInvalidMessage        = "invalid_message"
	ErrorCodeSessionRequired       = "session_required"
	ErrorCodeInvalidRequest        = "invalid_request"
	ErrorCodeCompletionUnavailable = "completion_unavailable"
	ErrorCodeInternalError         = "internal_error"
)
