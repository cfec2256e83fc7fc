// Package completion wraps a single call to the language model for text and
// text+image prompts.
package completion

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"strings"
	"time"

	// Registered decoders for image.DecodeConfig.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/xiaot623/gogo/foodai/internal/adapter/llm"
	"github.com/xiaot623/gogo/foodai/internal/domain"
)

// ImageApologyFormat is the reply used when the attached image cannot be read.
const ImageApologyFormat = "Desculpe, tive um problema ao analisar a imagem. Erro: %s"

// Outcome is the result of one completion. SoftFailure marks a substitute
// reply produced without calling the model.
type Outcome struct {
	Reply       string
	SoftFailure bool
	Reason      string
	Model       string
	Usage       *llm.Usage
}

// Invoker issues completions against one provider. It never retries.
type Invoker struct {
	client  llm.LLMClient
	model   string
	timeout time.Duration
}

// NewInvoker creates an invoker. A zero timeout leaves the deadline to ctx.
func NewInvoker(client llm.LLMClient, model string, timeout time.Duration) *Invoker {
	return &Invoker{client: client, model: model, timeout: timeout}
}

// Provider names the backing provider.
func (i *Invoker) Provider() string {
	return i.client.Provider()
}

// Model returns the configured model name.
func (i *Invoker) Model() string {
	return i.model
}

// CompleteText sends a text-only prompt.
func (i *Invoker) CompleteText(ctx context.Context, prompt string) (Outcome, error) {
	return i.generate(ctx, &llm.GenerateRequest{Model: i.model, Prompt: prompt})
}

// CompleteMultimodal sends a prompt with a base64 image. A payload that is
// not a readable image yields a SoftFailure outcome and a nil error.
func (i *Invoker) CompleteMultimodal(ctx context.Context, prompt, imageB64 string) (Outcome, error) {
	img, err := DecodeImage(imageB64)
	if err != nil {
		return Outcome{
			Reply:       fmt.Sprintf(ImageApologyFormat, err.Error()),
			SoftFailure: true,
			Reason:      err.Error(),
		}, nil
	}
	return i.generate(ctx, &llm.GenerateRequest{Model: i.model, Prompt: prompt, Image: img})
}

func (i *Invoker) generate(ctx context.Context, req *llm.GenerateRequest) (Outcome, error) {
	if i.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}

	resp, err := i.client.Generate(ctx, req)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: %s: %v", domain.ErrCompletionUnavailable, i.client.Provider(), err)
	}

	model := resp.Model
	if model == "" {
		model = req.Model
	}
	return Outcome{Reply: resp.Text, Model: model, Usage: resp.Usage}, nil
}

// DecodeImage decodes a base64 payload, optionally prefixed with a data URL
// header, and checks that it is a GIF, JPEG, PNG or WebP image.
func DecodeImage(b64 string) (*llm.Image, error) {
	payload := strings.TrimSpace(b64)
	if strings.HasPrefix(payload, "data:") {
		if idx := strings.Index(payload, ","); idx >= 0 {
			payload = payload[idx+1:]
		}
	}
	if payload == "" {
		return nil, fmt.Errorf("empty image payload")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("invalid base64: %w", err)
		}
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot identify image: %w", err)
	}

	return &llm.Image{Data: data, MIMEType: "image/" + format}, nil
}
