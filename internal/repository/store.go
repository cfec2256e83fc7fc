// Package repository defines the storage interface and its SQLite implementation.
package repository

import (
	"context"

	"github.com/xiaot623/gogo/foodai/internal/domain"
)

// Store defines the interface for data persistence.
// Lookups return (nil, nil) when the row does not exist.
type Store interface {
	// Preference operations
	GetPreferences(ctx context.Context, userID string) (*domain.Preferences, error)
	UpsertPreferences(ctx context.Context, prefs *domain.Preferences) error

	// Conversation log operations
	CreateConversationMessage(ctx context.Context, msg *domain.ConversationMessage) error
	ListConversationMessages(ctx context.Context, sessionID string) ([]domain.ConversationMessage, error)
	DeleteConversation(ctx context.Context, sessionID string) (int64, error)

	// Order operations
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error)

	// Food catalog operations
	CreateFoodItem(ctx context.Context, item *domain.FoodItem) error
	ListFoodItems(ctx context.Context, cuisine string) ([]domain.FoodItem, error)

	// Event operations
	CreateEvent(ctx context.Context, event *domain.Event) error
	ListEvents(ctx context.Context, sessionID string) ([]domain.Event, error)

	Close() error
}
