// Package domain defines the core domain models for the FoodAI backend.
package domain

// Role is the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// MessageType describes what a logged conversation message carried.
type MessageType string

const (
	MessageTypeText          MessageType = "text"
	MessageTypeImage         MessageType = "image"
	MessageTypeTextWithImage MessageType = "text_with_image"
)

// SpiceLevel is a user's preferred heat. Values outside the known set are
// stored and rendered verbatim.
type SpiceLevel string

const (
	SpiceLevelMild   SpiceLevel = "mild"
	SpiceLevelMedium SpiceLevel = "medium"
	SpiceLevelHot    SpiceLevel = "hot"
)

// BudgetRange is a user's preferred price band.
type BudgetRange string

const (
	BudgetRangeBudget   BudgetRange = "budget"
	BudgetRangeModerate BudgetRange = "moderate"
	BudgetRangePremium  BudgetRange = "premium"
)

// OrderStatus represents the status of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusReady, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// EventType represents the type of a trace event.
type EventType string

const (
	EventTypeLLMCallStarted EventType = "llm_call_started"
	EventTypeLLMCallDone    EventType = "llm_call_done"
	EventTypeSessionCleared EventType = "session_cleared"
)
