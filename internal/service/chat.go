package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/xiaot623/gogo/foodai/internal/domain"
	"github.com/xiaot623/gogo/foodai/internal/prompt"
)

// HandleMessage answers one chat message. Both turns are appended to the
// session memory only after a reply was obtained; a failed completion
// returns an error wrapping domain.ErrCompletionUnavailable and leaves the
// session untouched.
func (s *Service) HandleMessage(ctx context.Context, req *domain.ChatRequest) (*domain.ChatResponse, error) {
	if strings.TrimSpace(req.SessionID) == "" {
		return nil, fmt.Errorf("%w: session_id is required", domain.ErrInvalidRequest)
	}
	if strings.TrimSpace(req.UserID) == "" {
		return nil, fmt.Errorf("%w: user_id is required", domain.ErrInvalidRequest)
	}
	if strings.TrimSpace(req.Message) == "" && !req.HasImage() {
		return nil, fmt.Errorf("%w: message is required", domain.ErrInvalidRequest)
	}

	prefs := s.preferencesForPrompt(ctx, req.UserID)

	unlock := s.history.Lock(req.SessionID)
	defer unlock()

	var promptText, userTurn string
	if req.HasImage() {
		promptText = s.assembler.AssembleImage(prefs, req.Message)
		userTurn = prompt.ImageTurnPrefix + req.Message
	} else {
		turns := s.history.GetOrCreate(req.SessionID)
		promptText = s.assembler.Assemble(turns, prefs, req.Message)
		userTurn = req.Message
	}

	outcome, err := s.complete(ctx, req.SessionID, promptText, req.ImageData)
	if err != nil {
		return nil, err
	}

	s.history.Append(req.SessionID, domain.Turn{Role: domain.RoleUser, Content: userTurn})
	s.history.Append(req.SessionID, domain.Turn{Role: domain.RoleAssistant, Content: outcome.Reply})
	unlock()

	now := time.Now()
	s.logExchange(ctx, req, outcome.Reply, now)

	return &domain.ChatResponse{
		SessionID: req.SessionID,
		Message:   outcome.Reply,
		Timestamp: now,
	}, nil
}

// preferencesForPrompt loads the user's record. Missing or empty records,
// and lookup failures, yield nil so that no preference block is rendered.
func (s *Service) preferencesForPrompt(ctx context.Context, userID string) *domain.Preferences {
	prefs, err := s.store.GetPreferences(ctx, userID)
	if err != nil {
		log.Warnf("failed to load preferences for %s: %v", userID, err)
		return nil
	}
	if prefs == nil || prefs.IsEmpty() {
		return nil
	}
	return prefs
}

// logExchange writes both messages to the durable conversation log.
func (s *Service) logExchange(ctx context.Context, req *domain.ChatRequest, reply string, ts time.Time) {
	// Persist even if the client went away after the reply was produced.
	ctx = context.WithoutCancel(ctx)

	userType := domain.MessageTypeText
	switch {
	case req.HasImage() && strings.TrimSpace(req.Message) == "":
		userType = domain.MessageTypeImage
	case req.HasImage():
		userType = domain.MessageTypeTextWithImage
	}

	messages := []*domain.ConversationMessage{
		{
			ID:          "msg_" + uuid.New().String(),
			SessionID:   req.SessionID,
			UserID:      req.UserID,
			Role:        domain.RoleUser,
			Content:     req.Message,
			MessageType: userType,
			Timestamp:   ts,
		},
		{
			ID:          "msg_" + uuid.New().String(),
			SessionID:   req.SessionID,
			UserID:      req.UserID,
			Role:        domain.RoleAssistant,
			Content:     reply,
			MessageType: domain.MessageTypeText,
			Timestamp:   ts,
		},
	}
	for _, msg := range messages {
		if err := s.store.CreateConversationMessage(ctx, msg); err != nil {
			log.Errorf("failed to save %s message: %v", msg.Role, err)
			// Continue anyway - the reply was already produced
		}
	}
}

// ClearSession drops the session memory and the durable log. Unknown
// sessions are not an error.
func (s *Service) ClearSession(ctx context.Context, sessionID string) error {
	unlock := s.history.Lock(sessionID)
	s.history.Clear(sessionID)
	unlock()

	deleted, err := s.store.DeleteConversation(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}

	if err := s.recordEvent(ctx, sessionID, domain.EventTypeSessionCleared, map[string]interface{}{
		"deleted_messages": deleted,
	}); err != nil {
		log.Warnf("failed to record session_cleared event: %v", err)
	}
	return nil
}

// GetConversationHistory returns the durable log of a session in order.
func (s *Service) GetConversationHistory(ctx context.Context, sessionID string) ([]domain.HistoryMessage, error) {
	messages, err := s.store.ListConversationMessages(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}

	out := make([]domain.HistoryMessage, 0, len(messages))
	for _, m := range messages {
		h := domain.HistoryMessage{
			Role:        m.Role,
			Content:     m.Content,
			MessageType: m.MessageType,
			Timestamp:   m.Timestamp,
		}
		if m.ImageURL != "" {
			url := m.ImageURL
			h.ImageURL = &url
		}
		out = append(out, h)
	}
	return out, nil
}

// SessionMemory returns the in-memory turn contents of a session.
func (s *Service) SessionMemory(sessionID string) []string {
	return s.history.Snapshot(sessionID)
}
