package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	DefaultOllamaModel = "llama3.2"
	DefaultOllamaURL   = "http://localhost:11434"
)

// OllamaGenerator uses a local or self-hosted Ollama server.
//
// Like every adapter it requires a credential before each call and sends it
// as a bearer token, which is what authenticating proxies in front of Ollama
// expect. AllowAnonymous lifts the requirement for a bare local server.
type OllamaGenerator struct {
	model     string
	baseURL   string
	keys      KeySource
	anonymous bool
	client    *http.Client
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	NumPredict  int     `json:"num_predict"`
	Temperature float64 `json:"temperature"`
}

type ollamaResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// NewOllamaGenerator creates an adapter for the Ollama server at baseURL.
func NewOllamaGenerator(model, baseURL string, timeout time.Duration, keys KeySource) *OllamaGenerator {
	if model == "" {
		model = DefaultOllamaModel
	}
	if baseURL == "" {
		baseURL = DefaultOllamaURL
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &OllamaGenerator{
		model:   model,
		baseURL: baseURL,
		keys:    keys,
		client:  &http.Client{Timeout: timeout},
	}
}

// AllowAnonymous lets Generate call the server without a credential when
// none resolves. A key that does resolve is still sent.
func (g *OllamaGenerator) AllowAnonymous() *OllamaGenerator {
	g.anonymous = true
	return g
}

func (g *OllamaGenerator) Name() string {
	return "ollama"
}

func (g *OllamaGenerator) Model() string {
	return g.model
}

func (g *OllamaGenerator) Generate(ctx context.Context, prompt string, limits Limits) (string, error) {
	apiKey, err := resolveKey(g.Name(), g.keys)
	if err != nil && !g.anonymous {
		return "", err
	}

	reqBody := ollamaRequest{
		Model:  g.model,
		Prompt: prompt,
		Stream: false,
		Options: ollamaOptions{
			NumPredict:  limits.MaxOutputTokens,
			Temperature: limits.Temperature,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", NewServiceError(g.Name(), fmt.Errorf("failed to marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/api/generate", g.baseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return "", NewServiceError(g.Name(), fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", apiKey))
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", NewServiceError(g.Name(), fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", NewServiceError(g.Name(), fmt.Errorf("API returned status %d: %s", resp.StatusCode, bytes.TrimSpace(body)))
	}

	var ollamaResp ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&ollamaResp); err != nil {
		return "", NewServiceError(g.Name(), fmt.Errorf("failed to decode response: %w", err))
	}
	if ollamaResp.Error != "" {
		return "", NewServiceError(g.Name(), fmt.Errorf("%s", ollamaResp.Error))
	}

	return finish(g.Name(), ollamaResp.Response)
}
