package llm

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiGenerator calls Google's Gemini API through the genai SDK.
type GeminiGenerator struct {
	model   string
	baseURL string
	timeout time.Duration
	keys    KeySource
}

// NewGeminiGenerator creates a Gemini adapter. baseURL is normally empty and
// only overridden for proxies or tests.
func NewGeminiGenerator(model, baseURL string, timeout time.Duration, keys KeySource) *GeminiGenerator {
	if model == "" {
		model = DefaultGeminiModel
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &GeminiGenerator{
		model:   model,
		baseURL: baseURL,
		timeout: timeout,
		keys:    keys,
	}
}

func (g *GeminiGenerator) Name() string {
	return "gemini"
}

func (g *GeminiGenerator) Model() string {
	return g.model
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string, limits Limits) (string, error) {
	apiKey, err := resolveKey(g.Name(), g.keys)
	if err != nil {
		return "", err
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if g.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: g.baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return "", NewConfigurationError(g.Name(), fmt.Errorf("failed to create GenAI client: %w", err))
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	result, err := client.Models.GenerateContent(callCtx,
		g.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature:     genai.Ptr(float32(limits.Temperature)),
			MaxOutputTokens: int32(limits.MaxOutputTokens),
		},
	)
	if err != nil {
		return "", NewServiceError(g.Name(), fmt.Errorf("generate content failed: %w", err))
	}
	if result == nil || len(result.Candidates) == 0 {
		return "", NewServiceError(g.Name(), fmt.Errorf("no candidates returned"))
	}

	return finish(g.Name(), result.Text())
}
