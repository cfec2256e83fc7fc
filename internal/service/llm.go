package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/xiaot623/gogo/foodai/internal/completion"
	"github.com/xiaot623/gogo/foodai/internal/domain"
)

// complete runs one completion for a session and records
// llm_call_started / llm_call_done around it. An empty imageB64 selects the
// text path.
func (s *Service) complete(ctx context.Context, sessionID, promptText, imageB64 string) (completion.Outcome, error) {
	requestID := "llm_" + uuid.New().String()[:8]
	provider := s.invoker.Provider()
	startTime := time.Now()

	if err := s.recordEvent(ctx, sessionID, domain.EventTypeLLMCallStarted, domain.LLMCallStartedPayload{
		RequestID: requestID,
		Provider:  provider,
		Model:     s.invoker.Model(),
		HasImage:  imageB64 != "",
	}); err != nil {
		log.Warnf("failed to record llm_call_started event: %v", err)
	}

	var (
		outcome completion.Outcome
		err     error
	)
	if imageB64 != "" {
		outcome, err = s.invoker.CompleteMultimodal(ctx, promptText, imageB64)
	} else {
		outcome, err = s.invoker.CompleteText(ctx, promptText)
	}

	payload := domain.LLMCallDonePayload{
		RequestID:   requestID,
		Provider:    provider,
		Model:       outcome.Model,
		LatencyMs:   time.Since(startTime).Milliseconds(),
		SoftFailure: outcome.SoftFailure,
	}
	if payload.Model == "" {
		payload.Model = s.invoker.Model()
	}
	if outcome.Usage != nil {
		payload.PromptTokens = outcome.Usage.PromptTokens
		payload.CompletionTokens = outcome.Usage.CompletionTokens
		payload.TotalTokens = outcome.Usage.TotalTokens
	}
	switch {
	case err != nil:
		payload.Error = err.Error()
		log.Errorf("completion failed for session %s: %v", sessionID, err)
	case outcome.SoftFailure:
		payload.Error = outcome.Reason
		log.Warnf("image rejected for session %s: %s", sessionID, outcome.Reason)
	}

	// The caller's context may already be cancelled; the trace is still wanted.
	if recordErr := s.recordEvent(context.WithoutCancel(ctx), sessionID, domain.EventTypeLLMCallDone, payload); recordErr != nil {
		log.Warnf("failed to record llm_call_done event: %v", recordErr)
	}

	return outcome, err
}
