// Package config resolves lullaby settings from flags, LULLABY_* environment
// variables, an optional YAML file, and a .env file, in that precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/valpere/lullaby/internal/judge"
	"github.com/valpere/lullaby/internal/llm"
	"github.com/valpere/lullaby/internal/orchestrator"
	"github.com/valpere/lullaby/internal/reviser"
)

const EnvPrefix = "LULLABY"

// Providers lists the supported generation backends.
var Providers = []string{"openai", "openrouter", "gemini", "ollama"}

// providerKeyEnv maps a provider to the environment variables holding its
// credential, checked in order after api_key.
var providerKeyEnv = map[string][]string{
	"openai":     {"OPENAI_API_KEY"},
	"openrouter": {"OPENROUTER_API_KEY"},
	"gemini":     {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
	"ollama":     {"OLLAMA_API_KEY"},
}

type Config struct {
	Provider      string        `mapstructure:"provider"`
	Model         string        `mapstructure:"model"`
	BaseURL       string        `mapstructure:"base_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	Story         llm.Limits    `mapstructure:"story"`
	Judge         llm.Limits    `mapstructure:"judge"`
	Revision      llm.Limits    `mapstructure:"revision"`
	CheckLanguage bool          `mapstructure:"check_language"`
	Ollama        OllamaConfig  `mapstructure:"ollama"`
}

// OllamaConfig holds settings only the Ollama provider reads.
type OllamaConfig struct {
	// AllowAnonymous calls a local server without a credential when none is set.
	AllowAnonymous bool `mapstructure:"allow_anonymous"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("provider", "openai")
	v.SetDefault("model", "")
	v.SetDefault("base_url", "")
	v.SetDefault("timeout", 120*time.Second)
	v.SetDefault("story.max_tokens", orchestrator.DefaultStoryLimits.MaxOutputTokens)
	v.SetDefault("story.temperature", orchestrator.DefaultStoryLimits.Temperature)
	v.SetDefault("judge.max_tokens", judge.DefaultLimits.MaxOutputTokens)
	v.SetDefault("judge.temperature", judge.DefaultLimits.Temperature)
	v.SetDefault("revision.max_tokens", reviser.DefaultLimits.MaxOutputTokens)
	v.SetDefault("revision.temperature", reviser.DefaultLimits.Temperature)
	v.SetDefault("check_language", false)
	v.SetDefault("ollama.allow_anonymous", false)
}

// NewViper returns a viper instance with defaults, LULLABY_ env binding, and
// configFile (when non-empty) read in. A missing .env file is not an error.
func NewViper(configFile string) (*viper.Viper, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return v, nil
}

// Load decodes and validates the settings held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	if _, ok := providerKeyEnv[cfg.Provider]; !ok {
		return nil, fmt.Errorf("unknown provider %q (supported: %s)", cfg.Provider, strings.Join(Providers, ", "))
	}

	for name, l := range map[string]llm.Limits{"story": cfg.Story, "judge": cfg.Judge, "revision": cfg.Revision} {
		if err := l.Validate(); err != nil {
			return nil, fmt.Errorf("invalid %s limits: %w", name, err)
		}
	}
	return &cfg, nil
}

// KeySource returns a credential lookup for provider that re-reads v and the
// environment on every call: api_key (LULLABY_API_KEY) first, then the
// provider's conventional variables.
func KeySource(v *viper.Viper, provider string) llm.KeySource {
	return func() string {
		if key := strings.TrimSpace(v.GetString("api_key")); key != "" {
			return key
		}
		for _, name := range providerKeyEnv[provider] {
			if key := strings.TrimSpace(os.Getenv(name)); key != "" {
				return key
			}
		}
		return ""
	}
}
