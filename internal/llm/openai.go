package llm

import (
	"context"
	"fmt"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	DefaultOpenAIModel     = "gpt-3.5-turbo"
	DefaultOpenRouterModel = "meta-llama/llama-3.1-8b-instruct:free"
	DefaultOpenRouterURL   = "https://openrouter.ai/api/v1"
	defaultRequestTimeout  = 120 * time.Second
	openRouterReferer      = "https://lullaby.local"
	openRouterTitle        = "Lullaby"
)

// OpenAIGenerator calls an OpenAI-compatible chat completions endpoint
// through the official SDK.
type OpenAIGenerator struct {
	name    string
	model   string
	baseURL string
	timeout time.Duration
	keys    KeySource
	extra   []option.RequestOption
}

// NewOpenAIGenerator creates an adapter for api.openai.com, or for baseURL when set.
func NewOpenAIGenerator(model, baseURL string, timeout time.Duration, keys KeySource) *OpenAIGenerator {
	if model == "" {
		model = DefaultOpenAIModel
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &OpenAIGenerator{
		name:    "openai",
		model:   model,
		baseURL: baseURL,
		timeout: timeout,
		keys:    keys,
	}
}

// NewOpenRouterGenerator creates an adapter for OpenRouter's OpenAI-compatible API.
func NewOpenRouterGenerator(model, baseURL string, timeout time.Duration, keys KeySource) *OpenAIGenerator {
	if model == "" {
		model = DefaultOpenRouterModel
	}
	if baseURL == "" {
		baseURL = DefaultOpenRouterURL
	}
	g := NewOpenAIGenerator(model, baseURL, timeout, keys)
	g.name = "openrouter"
	g.extra = []option.RequestOption{
		option.WithHeader("HTTP-Referer", openRouterReferer),
		option.WithHeader("X-Title", openRouterTitle),
	}
	return g
}

func (g *OpenAIGenerator) Name() string {
	return g.name
}

func (g *OpenAIGenerator) Model() string {
	return g.model
}

func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string, limits Limits) (string, error) {
	apiKey, err := resolveKey(g.name, g.keys)
	if err != nil {
		return "", err
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(g.timeout),
	}
	if g.baseURL != "" {
		opts = append(opts, option.WithBaseURL(g.baseURL))
	}
	opts = append(opts, g.extra...)

	client := openai.NewClient(opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxTokens:   openai.Int(int64(limits.MaxOutputTokens)),
		Temperature: openai.Float(limits.Temperature),
	})
	if err != nil {
		return "", NewServiceError(g.name, fmt.Errorf("chat completion failed: %w", err))
	}
	if len(resp.Choices) == 0 {
		return "", NewServiceError(g.name, fmt.Errorf("empty choices"))
	}

	return finish(g.name, resp.Choices[0].Message.Content)
}
