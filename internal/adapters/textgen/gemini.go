// Package textgen adapts text generation services to domain.TextGenerator.
package textgen

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	generativelanguage "cloud.google.com/go/ai/generativelanguage/apiv1beta"
	"cloud.google.com/go/ai/generativelanguage/apiv1beta/generativelanguagepb"
	"google.golang.org/api/option"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

const DefaultEndpoint = "https://generativelanguage.googleapis.com"

var _ domain.TextGenerator = (*GeminiClient)(nil)

// GeminiClient calls the Generative Language generateContent endpoint over
// REST.
type GeminiClient struct {
	client *generativelanguage.GenerativeClient
}

func NewGeminiClient(ctx context.Context, apiKey, endpoint string) (*GeminiClient, error) {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	client, err := generativelanguage.NewGenerativeRESTClient(ctx,
		option.WithAPIKey(apiKey),
		option.WithEndpoint(strings.TrimSuffix(endpoint, "/")),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiClient{client: client}, nil
}

// New returns a Gemini client, or the offline generator when no API key is
// configured.
func New(ctx context.Context, apiKey, endpoint string) (domain.TextGenerator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return Offline{}, nil
	}
	return NewGeminiClient(ctx, apiKey, endpoint)
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string, opts domain.GenerateOptions) (string, error) {
	temperature := float32(opts.Temperature)
	req := &generativelanguagepb.GenerateContentRequest{
		Model: modelName(opts.Model),
		Contents: []*generativelanguagepb.Content{{
			Role: "user",
			Parts: []*generativelanguagepb.Part{{
				Data: &generativelanguagepb.Part_Text{Text: prompt},
			}},
		}},
		GenerationConfig: &generativelanguagepb.GenerationConfig{
			Temperature: &temperature,
		},
	}

	resp, err := c.client.GenerateContent(ctx, req)
	if err != nil {
		if isOffline(err) {
			return "", fmt.Errorf("%w: %v", domain.ErrGeneratorOffline, err)
		}
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	var b strings.Builder
	for _, cand := range resp.GetCandidates() {
		if cand.GetContent() == nil {
			continue
		}
		for _, p := range cand.GetContent().GetParts() {
			b.WriteString(p.GetText())
		}
		break
	}
	return b.String(), nil
}

func modelName(model string) string {
	if strings.HasPrefix(model, "models/") {
		return model
	}
	return "models/" + model
}

// isOffline reports transport failures where no response came back at all.
func isOffline(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// Offline never reaches a service.
type Offline struct{}

func (Offline) Generate(ctx context.Context, prompt string, opts domain.GenerateOptions) (string, error) {
	return "", domain.ErrGeneratorOffline
}
