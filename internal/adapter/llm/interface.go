// Package llm provides an abstraction over the hosted completion models.
package llm

import "context"

// Image is a decoded image attached to a completion request.
type Image struct {
	Data     []byte
	MIMEType string
}

// GenerateRequest is a single-shot completion request. The prompt carries the
// whole conversation; Image is optional.
type GenerateRequest struct {
	Model  string
	Prompt string
	Image  *Image
}

// Usage represents token usage information.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// GenerateResponse is the model's answer.
type GenerateResponse struct {
	Text  string
	Model string
	Usage *Usage
}

// LLMClient defines the interface for completion providers.
type LLMClient interface {
	// Generate sends one completion request. Implementations must honour ctx
	// cancellation and must not retry.
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)

	// Provider names the backend, e.g. "gemini".
	Provider() string
}

// Ensure implementations satisfy LLMClient.
var (
	_ LLMClient = (*Client)(nil)
	_ LLMClient = (*GeminiClient)(nil)
	_ LLMClient = (*AnthropicClient)(nil)
	_ LLMClient = (*MockClient)(nil)
)
