package domain

import "time"

// ChatRequest is an inbound chat message.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
	Message   string `json:"message"`
	ImageData string `json:"image_data,omitempty"` // base64 encoded image
}

// HasImage reports whether an image was attached.
func (r *ChatRequest) HasImage() bool {
	return r.ImageData != ""
}

// ChatResponse is the assistant's reply.
type ChatResponse struct {
	SessionID string    `json:"session_id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderRequest is the request to create an order.
type OrderRequest struct {
	UserID string      `json:"user_id"`
	Items  []OrderItem `json:"items"`
}

// OrderResponse is the response for order creation.
type OrderResponse struct {
	Order   *Order `json:"order"`
	Message string `json:"message"`
}

// OrderStatusRequest moves an order to a new status.
type OrderStatusRequest struct {
	Status OrderStatus `json:"status"`
}

// HistoryMessage is one entry of the conversation history export.
type HistoryMessage struct {
	Role        Role        `json:"role"`
	Content     string      `json:"content"`
	MessageType MessageType `json:"message_type"`
	ImageURL    *string     `json:"image_url"`
	Timestamp   time.Time   `json:"timestamp"`
}
