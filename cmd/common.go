/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/valpere/lullaby/internal/config"
	"github.com/valpere/lullaby/internal/judge"
	"github.com/valpere/lullaby/internal/llm"
	"github.com/valpere/lullaby/internal/orchestrator"
	"github.com/valpere/lullaby/internal/reviser"
	"github.com/valpere/lullaby/internal/validator"
)

// buildGenerator constructs the generation adapter named by cfg.Provider.
// The credential is looked up on every call, so a missing key surfaces as a
// ConfigurationError from the first Generate rather than here.
func buildGenerator(cfg *config.Config, v *viper.Viper) (llm.Generator, error) {
	keys := config.KeySource(v, cfg.Provider)

	switch cfg.Provider {
	case "openai":
		return llm.NewOpenAIGenerator(cfg.Model, cfg.BaseURL, cfg.Timeout, keys), nil
	case "openrouter":
		return llm.NewOpenRouterGenerator(cfg.Model, cfg.BaseURL, cfg.Timeout, keys), nil
	case "gemini":
		return llm.NewGeminiGenerator(cfg.Model, cfg.BaseURL, cfg.Timeout, keys), nil
	case "ollama":
		gen := llm.NewOllamaGenerator(cfg.Model, cfg.BaseURL, cfg.Timeout, keys)
		if cfg.Ollama.AllowAnonymous {
			gen.AllowAnonymous()
		}
		return gen, nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}

// buildJudge returns a judge using the configured judge limits.
func buildJudge(cfg *config.Config, gen llm.Generator) *judge.Judge {
	return judge.New(gen,
		judge.WithLimits(cfg.Judge),
		judge.WithLogger(logger.Named("judge")))
}

// buildPipeline wires generator, judge, reviser, and checker into an orchestrator.
func buildPipeline(cfg *config.Config, gen llm.Generator) *orchestrator.Orchestrator {
	return orchestrator.New(
		gen,
		buildJudge(cfg, gen),
		reviser.New(gen).WithLimits(cfg.Revision),
		orchestrator.OrchestratorConfig{StoryLimits: cfg.Story},
		orchestrator.WithLogger(logger.Named("pipeline")),
		orchestrator.WithChecker(validator.New(cfg.CheckLanguage)),
	)
}

// commandContext derives the context for a command run; it is cancelled on
// Ctrl-C so an in-flight generation call is abandoned.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt)
}
