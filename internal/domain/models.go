package domain

import (
	"encoding/json"
	"time"
)

// Turn is one message in a session's in-memory history.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Preferences is a user's standing dietary profile.
type Preferences struct {
	UserID              string      `json:"user_id"`
	DietaryRestrictions []string    `json:"dietary_restrictions"`
	FavoriteCuisines    []string    `json:"favorite_cuisines"`
	Allergies           []string    `json:"allergies"`
	SpiceLevel          SpiceLevel  `json:"spice_level,omitempty"`
	BudgetRange         BudgetRange `json:"budget_range,omitempty"`
}

// IsEmpty reports whether no preference field is set.
func (p *Preferences) IsEmpty() bool {
	return len(p.DietaryRestrictions) == 0 &&
		len(p.FavoriteCuisines) == 0 &&
		len(p.Allergies) == 0 &&
		p.SpiceLevel == "" &&
		p.BudgetRange == ""
}

// Normalize replaces nil lists with empty ones so JSON renders [] instead of null.
func (p *Preferences) Normalize() {
	if p.DietaryRestrictions == nil {
		p.DietaryRestrictions = []string{}
	}
	if p.FavoriteCuisines == nil {
		p.FavoriteCuisines = []string{}
	}
	if p.Allergies == nil {
		p.Allergies = []string{}
	}
}

// ConversationMessage is a durable row of the conversation log.
type ConversationMessage struct {
	ID          string      `json:"id"`
	SessionID   string      `json:"session_id"`
	UserID      string      `json:"user_id"`
	Role        Role        `json:"role"`
	Content     string      `json:"content"`
	MessageType MessageType `json:"message_type"`
	ImageURL    string      `json:"image_url,omitempty"`
	Timestamp   time.Time   `json:"timestamp"`
}

// OrderItem is a single line of an order.
type OrderItem struct {
	FoodItemID string  `json:"food_item_id"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
}

// Order represents a food order.
type Order struct {
	ID         string      `json:"id"`
	UserID     string      `json:"user_id"`
	Items      []OrderItem `json:"items"`
	TotalPrice float64     `json:"total_price"`
	Status     OrderStatus `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// FoodItem is an entry of the food catalog.
type FoodItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Cuisine     string   `json:"cuisine"`
	ImageURL    string   `json:"image_url,omitempty"`
	DietaryTags []string `json:"dietary_tags"`
	Rating      *float64 `json:"rating,omitempty"`
}

// Event represents a trace event recorded against a session.
type Event struct {
	EventID   string          `json:"event_id"`
	SessionID string          `json:"session_id"`
	Ts        int64           `json:"ts"` // Unix milliseconds
	Type      EventType       `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// LLMCallStartedPayload is the payload of llm_call_started.
type LLMCallStartedPayload struct {
	RequestID string `json:"request_id"`
	Provider  string `json:"provider"`
	Model     string `json:"model"`
	HasImage  bool   `json:"has_image"`
}

// LLMCallDonePayload is the payload of llm_call_done.
type LLMCallDonePayload struct {
	RequestID        string `json:"request_id"`
	Provider         string `json:"provider"`
	Model            string `json:"model"`
	LatencyMs        int64  `json:"latency_ms"`
	PromptTokens     int    `json:"prompt_tokens,omitempty"`
	CompletionTokens int    `json:"completion_tokens,omitempty"`
	TotalTokens      int    `json:"total_tokens,omitempty"`
	SoftFailure      bool   `json:"soft_failure,omitempty"`
	Error            string `json:"error,omitempty"`
}
