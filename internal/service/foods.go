package service

import (
	"context"
	"fmt"

	"github.com/xiaot623/gogo/foodai/internal/domain"
)

// ListFoods lists the catalog, optionally filtered by cuisine.
func (s *Service) ListFoods(ctx context.Context, cuisine string) ([]domain.FoodItem, error) {
	items, err := s.store.ListFoodItems(ctx, cuisine)
	if err != nil {
		return nil, fmt.Errorf("failed to list food items: %w", err)
	}
	return items, nil
}
