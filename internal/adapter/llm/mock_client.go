package llm

import (
	"context"
	"fmt"
	"strings"
)

// MockClient is a mock implementation of LLMClient for local runs and tests.
type MockClient struct{}

// NewMockClient creates a new mock LLM client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Provider implements LLMClient.
func (m *MockClient) Provider() string {
	return "mock"
}

// Generate returns a canned answer echoing the last user line of the prompt.
func (m *MockClient) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text := m.generateMockResponse(req)
	prompt := len(req.Prompt) / 4
	return &GenerateResponse{
		Text:  text,
		Model: req.Model,
		Usage: &Usage{
			PromptTokens:     prompt,
			CompletionTokens: len(text) / 4,
			TotalTokens:      prompt + len(text)/4,
		},
	}, nil
}

func (m *MockClient) generateMockResponse(req *GenerateRequest) string {
	if req.Image != nil {
		return fmt.Sprintf("[MOCK] Recebi uma imagem (%s, %d bytes). Parece um prato delicioso!", req.Image.MIMEType, len(req.Image.Data))
	}

	// The prompt ends with "<user label>: <message>\n\n<assistant label>:".
	var lastUserMessage string
	lines := strings.Split(req.Prompt, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if rest, ok := strings.CutPrefix(lines[i], "Usuário: "); ok {
			lastUserMessage = rest
			break
		}
	}

	if lastUserMessage == "" {
		return "[MOCK] Esta é uma resposta simulada do FoodAI."
	}
	return fmt.Sprintf("[MOCK] Recebi sua mensagem: %q. Esta é uma resposta simulada.", truncate(lastUserMessage, 100))
}

// truncate truncates a string to the given length.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
