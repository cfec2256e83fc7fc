package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaot623/gogo/foodai/internal/config"
)

func TestNewLLMClientMockMode(t *testing.T) {
	client, err := NewLLMClient(context.Background(), &config.Config{Mode: ModeMock, LLMProvider: "whatever"})
	require.NoError(t, err)
	assert.Equal(t, "mock", client.Provider())
}

func TestNewLLMClientProviders(t *testing.T) {
	client, err := NewLLMClient(context.Background(), &config.Config{
		LLMProvider: config.ProviderLiteLLM,
		LiteLLMURL:  "http://localhost:4000",
		LLMTimeout:  time.Second,
	})
	require.NoError(t, err)
	assert.Equal(t, "litellm", client.Provider())

	client, err = NewLLMClient(context.Background(), &config.Config{
		LLMProvider:     config.ProviderAnthropic,
		AnthropicAPIKey: "test",
	})
	require.NoError(t, err)
	assert.Equal(t, "anthropic", client.Provider())
}

func TestNewLLMClientUnknownProvider(t *testing.T) {
	_, err := NewLLMClient(context.Background(), &config.Config{LLMProvider: "nope"})
	assert.Error(t, err)
}

func TestMockClientEchoesLastUserLine(t *testing.T) {
	m := NewMockClient()
	resp, err := m.Generate(context.Background(), &GenerateRequest{
		Prompt: "persona\n\nUsuário: primeiro\n\nFoodAI: ok\n\nUsuário: quero pizza\n\nFoodAI:",
	})
	require.NoError(t, err)
	assert.Contains(t, resp.Text, "quero pizza")
	assert.NotContains(t, resp.Text, "primeiro")
	require.NotNil(t, resp.Usage)
}

func TestMockClientImage(t *testing.T) {
	m := NewMockClient()
	resp, err := m.Generate(context.Background(), &GenerateRequest{
		Prompt: "o que é isso?",
		Image:  &Image{Data: []byte{1, 2}, MIMEType: "image/png"},
	})
	require.NoError(t, err)
	assert.Contains(t, resp.Text, "image/png")
}

func TestMockClientCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMockClient().Generate(ctx, &GenerateRequest{Prompt: "x"})
	assert.ErrorIs(t, err, context.Canceled)
}
