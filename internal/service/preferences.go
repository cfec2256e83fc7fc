package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/xiaot623/gogo/foodai/internal/domain"
)

// GetPreferences returns a user's record, creating an empty one for unknown users.
func (s *Service) GetPreferences(ctx context.Context, userID string) (*domain.Preferences, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user_id is required", domain.ErrInvalidRequest)
	}

	prefs, err := s.store.GetPreferences(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}
	if prefs == nil {
		prefs = &domain.Preferences{UserID: userID}
		prefs.Normalize()
		if err := s.store.UpsertPreferences(ctx, prefs); err != nil {
			return nil, fmt.Errorf("failed to create preferences: %w", err)
		}
	}
	prefs.Normalize()
	return prefs, nil
}

// UpdatePreferences replaces every field of a user's record.
func (s *Service) UpdatePreferences(ctx context.Context, userID string, prefs *domain.Preferences) (*domain.Preferences, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user_id is required", domain.ErrInvalidRequest)
	}

	// The path parameter wins over any user_id in the body.
	prefs.UserID = userID
	prefs.Normalize()
	if err := s.store.UpsertPreferences(ctx, prefs); err != nil {
		return nil, fmt.Errorf("failed to update preferences: %w", err)
	}
	return prefs, nil
}
