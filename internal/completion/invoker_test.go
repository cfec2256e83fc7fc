package completion

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaot623/gogo/foodai/internal/adapter/llm"
	"github.com/xiaot623/gogo/foodai/internal/domain"
)

type fakeClient struct {
	calls []*llm.GenerateRequest
	reply string
	err   error
	block bool
}

func (f *fakeClient) Provider() string { return "fake" }

func (f *fakeClient) Generate(ctx context.Context, req *llm.GenerateRequest) (*llm.GenerateResponse, error) {
	f.calls = append(f.calls, req)
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llm.GenerateResponse{Text: f.reply, Usage: &llm.Usage{TotalTokens: 7}}, nil
}

func pngBase64(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestCompleteText(t *testing.T) {
	client := &fakeClient{reply: "Que tal uma pizza?"}
	inv := NewInvoker(client, "m1", time.Second)

	out, err := inv.CompleteText(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "Que tal uma pizza?", out.Reply)
	assert.False(t, out.SoftFailure)
	assert.Equal(t, "m1", out.Model)
	require.NotNil(t, out.Usage)
	require.Len(t, client.calls, 1)
	assert.Equal(t, "prompt", client.calls[0].Prompt)
	assert.Nil(t, client.calls[0].Image)
}

func TestCompleteMultimodalPNG(t *testing.T) {
	client := &fakeClient{reply: "Isso é um tomate."}
	inv := NewInvoker(client, "m1", 0)

	out, err := inv.CompleteMultimodal(context.Background(), "o que é?", pngBase64(t))
	require.NoError(t, err)
	assert.Equal(t, "Isso é um tomate.", out.Reply)
	require.Len(t, client.calls, 1)
	require.NotNil(t, client.calls[0].Image)
	assert.Equal(t, "image/png", client.calls[0].Image.MIMEType)
}

func TestCompleteMultimodalDataURL(t *testing.T) {
	client := &fakeClient{reply: "ok"}
	inv := NewInvoker(client, "m1", 0)

	_, err := inv.CompleteMultimodal(context.Background(), "p", "data:image/png;base64,"+pngBase64(t))
	require.NoError(t, err)
	require.Len(t, client.calls, 1)
}

func TestCompleteMultimodalNonImageIsSoftFailure(t *testing.T) {
	client := &fakeClient{reply: "unused"}
	inv := NewInvoker(client, "m1", 0)

	payload := base64.StdEncoding.EncodeToString([]byte("definitely not an image"))
	out, err := inv.CompleteMultimodal(context.Background(), "p", payload)
	require.NoError(t, err)
	assert.True(t, out.SoftFailure)
	assert.True(t, strings.HasPrefix(out.Reply, "Desculpe, tive um problema ao analisar a imagem."))
	assert.NotEmpty(t, out.Reason)
	assert.Empty(t, client.calls)
}

func TestCompleteMultimodalBadBase64IsSoftFailure(t *testing.T) {
	client := &fakeClient{}
	inv := NewInvoker(client, "m1", 0)

	out, err := inv.CompleteMultimodal(context.Background(), "p", "%%%not-base64%%%")
	require.NoError(t, err)
	assert.True(t, out.SoftFailure)
	assert.Contains(t, out.Reply, "invalid base64")
	assert.Empty(t, client.calls)
}

func TestProviderErrorIsCompletionUnavailable(t *testing.T) {
	client := &fakeClient{err: errors.New("rate limited")}
	inv := NewInvoker(client, "m1", 0)

	_, err := inv.CompleteText(context.Background(), "p")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCompletionUnavailable)
	assert.Contains(t, err.Error(), "rate limited")
	assert.Len(t, client.calls, 1)
}

func TestTimeoutBoundsCall(t *testing.T) {
	client := &fakeClient{block: true}
	inv := NewInvoker(client, "m1", 20*time.Millisecond)

	start := time.Now()
	_, err := inv.CompleteText(context.Background(), "p")
	assert.ErrorIs(t, err, domain.ErrCompletionUnavailable)
	assert.Less(t, time.Since(start), time.Second)
}

func TestCallerCancellationPropagates(t *testing.T) {
	client := &fakeClient{block: true}
	inv := NewInvoker(client, "m1", 0)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	_, err := inv.CompleteText(ctx, "p")
	assert.ErrorIs(t, err, domain.ErrCompletionUnavailable)
}

func TestDecodeImageEmpty(t *testing.T) {
	_, err := DecodeImage("   ")
	assert.Error(t, err)
}
