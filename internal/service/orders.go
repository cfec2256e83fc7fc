package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/xiaot623/gogo/foodai/internal/domain"
	"github.com/xiaot623/gogo/foodai/policy"
)

// OrderCreatedMessage is returned with every created order.
const OrderCreatedMessage = "Pedido criado com sucesso! 🎉"

// CreateOrder evaluates the order policy and stores a pending order.
func (s *Service) CreateOrder(ctx context.Context, req *domain.OrderRequest) (*domain.OrderResponse, error) {
	if s.policyEngine != nil {
		decision, reasons, err := s.policyEngine.Evaluate(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate order policy: %w", err)
		}
		if decision == policy.DecisionBlock {
			log.Infof("order from %s blocked: %v", req.UserID, reasons)
			return nil, fmt.Errorf("%w: %s", domain.ErrOrderRejected, strings.Join(reasons, "; "))
		}
	}

	var total float64
	for _, item := range req.Items {
		total += item.Price * float64(item.Quantity)
	}

	now := time.Now()
	order := &domain.Order{
		ID:         uuid.New().String(),
		UserID:     req.UserID,
		Items:      req.Items,
		TotalPrice: total,
		Status:     domain.OrderStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if order.Items == nil {
		order.Items = []domain.OrderItem{}
	}
	if err := s.store.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return &domain.OrderResponse{Order: order, Message: OrderCreatedMessage}, nil
}

// ListUserOrders returns a user's orders, newest first.
func (s *Service) ListUserOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := s.store.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// GetOrder returns one order or domain.ErrNotFound.
func (s *Service) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("%w: order %s", domain.ErrNotFound, orderID)
	}
	return order, nil
}

// UpdateOrderStatus moves an order to a new status.
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidRequest, status)
	}
	order, err := s.store.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("%w: order %s", domain.ErrNotFound, orderID)
	}
	return order, nil
}
