// Package llm wraps text-generation services behind a single Generate call.
//
// Every adapter resolves its credential before each call, performs exactly one
// outbound request, and keeps no state between calls.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/valpere/lullaby/internal/postprocess"
)

// Limits bounds a single generation call.
type Limits struct {
	MaxOutputTokens int     `mapstructure:"max_tokens" json:"max_tokens"`
	Temperature     float64 `mapstructure:"temperature" json:"temperature"`
}

// Validate checks that the token budget is positive and the temperature lies in [0,1].
func (l Limits) Validate() error {
	if l.MaxOutputTokens <= 0 {
		return fmt.Errorf("max output tokens must be positive, got %d", l.MaxOutputTokens)
	}
	if l.Temperature < 0 || l.Temperature > 1 {
		return fmt.Errorf("temperature must be within [0,1], got %g", l.Temperature)
	}
	return nil
}

// Generator sends a prompt to a text-generation service and returns its text.
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt string, limits Limits) (string, error)
}

// KeySource resolves the API credential. It is consulted before every call so
// a key removed from the environment mid-process is noticed.
type KeySource func() string

// StaticKey returns a KeySource that always yields key.
func StaticKey(key string) KeySource {
	return func() string { return key }
}

// resolveKey returns the trimmed credential or a ConfigurationError.
func resolveKey(provider string, keys KeySource) (string, error) {
	if keys == nil {
		return "", NewConfigurationError(provider, ErrMissingCredential)
	}
	key := strings.TrimSpace(keys())
	if key == "" {
		return "", NewConfigurationError(provider, ErrMissingCredential)
	}
	return key, nil
}

// finish cleans model output and rejects responses with nothing left.
func finish(provider, raw string) (string, error) {
	text := postprocess.Clean(raw)
	if text == "" {
		return "", NewServiceError(provider, fmt.Errorf("empty response from API"))
	}
	return text, nil
}
