// Package gemini adapts the Google GenAI API to the domain Completer contract.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/kailas-cloud/hrsearch/internal/domain"
	"github.com/kailas-cloud/hrsearch/internal/metrics"
)

const (
	defaultModel = "gemini-2.5-flash"
	providerName = "gemini"
)

// contentGenerator is the slice of *genai.Models the completer needs.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Completer produces chat completions with Gemini.
type Completer struct {
	models contentGenerator
	model  string
	logger *zap.Logger
}

// NewCompleter creates a Completer for the Gemini API backend.
func NewCompleter(ctx context.Context, apiKey, model string, timeout time.Duration, logger *zap.Logger) (*Completer, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
		HTTPClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	return &Completer{models: client.Models, model: model, logger: logger}, nil
}

// Complete implements domain.Completer. System messages become the system
// instruction; the rest are sent as conversation turns.
func (c *Completer) Complete(ctx context.Context, req domain.CompletionRequest) (domain.CompletionResult, error) {
	var system []string
	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, m := range req.Messages {
		switch m.Role {
		case domain.RoleSystem:
			system = append(system, m.Content)
		case domain.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(req.Temperature),
		MaxOutputTokens: int32(req.MaxTokens), //nolint:gosec // bounded by config
	}
	if len(system) > 0 {
		cfg.SystemInstruction = genai.NewContentFromText(strings.Join(system, "\n\n"), genai.RoleUser)
	}

	start := time.Now()
	resp, err := c.models.GenerateContent(ctx, c.model, contents, cfg)
	metrics.CompletionRequestDuration.WithLabelValues(providerName, c.model).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CompletionRequestsTotal.WithLabelValues(providerName, c.model, "error").Inc()
		return domain.CompletionResult{}, fmt.Errorf("generate content: %v: %w", err, domain.ErrCompletionProviderError)
	}

	text := collectText(resp)
	if text == "" {
		metrics.CompletionRequestsTotal.WithLabelValues(providerName, c.model, "error").Inc()
		return domain.CompletionResult{}, fmt.Errorf("gemini returned empty response: %w", domain.ErrCompletionProviderError)
	}
	metrics.CompletionRequestsTotal.WithLabelValues(providerName, c.model, "success").Inc()

	out := domain.CompletionResult{Text: text}
	if u := resp.UsageMetadata; u != nil {
		out.PromptTokens = int(u.PromptTokenCount)
		out.CompletionTokens = int(u.CandidatesTokenCount)
		metrics.CompletionTokensTotal.WithLabelValues(providerName, c.model, "prompt").Add(float64(u.PromptTokenCount))
		metrics.CompletionTokensTotal.WithLabelValues(providerName, c.model, "completion").Add(float64(u.CandidatesTokenCount))
	}
	return out, nil
}

// collectText joins the non-empty text parts of every candidate.
func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part == nil || strings.TrimSpace(part.Text) == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(strings.TrimSpace(part.Text))
		}
	}
	return b.String()
}
