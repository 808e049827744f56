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
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/valpere/lullaby/internal/config"
	"github.com/valpere/lullaby/internal/llm"
)

var version = "0.1.0"

var (
	cfgFile string
	verbose bool
	v       *viper.Viper
)

var logger = zap.NewNop()

// flagKeys maps persistent flag names to their viper keys.
var flagKeys = map[string]string{
	"provider": "provider",
	"model":    "model",
	"base-url": "base_url",
	"timeout":  "timeout",

	"ollama-anonymous": "ollama.allow_anonymous",
}

var rootCmd = &cobra.Command{
	Use:   "lullaby",
	Short: "Bedtime story generator with an LLM judge",
	Long: `A CLI application that writes a bedtime story for children aged 5-10,
has an LLM judge score it against a six-category rubric, and revises it once
when any category fails.

Supported providers: OpenAI, OpenRouter, Gemini, Ollama

Use "lullaby tell --help" for story options.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if logger, err = newLogger(verbose); err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}

		if v, err = config.NewViper(cfgFile); err != nil {
			return err
		}
		for name, key := range flagKeys {
			if err := v.BindPFlag(key, cmd.Root().PersistentFlags().Lookup(name)); err != nil {
				return fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.DisableStacktrace = true
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return cfg.Build()
}

// Execute runs the root command and exits with 2 on configuration errors,
// 3 on generation service errors and 1 on anything else.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	var cfgErr *llm.ConfigurationError
	switch {
	case errors.As(err, &cfgErr):
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Set LULLABY_API_KEY or the %s API key variable (see .env).\n", cfgErr.Provider)
		os.Exit(2)
	case llm.IsService(err):
		fmt.Fprintf(os.Stderr, "Service error: %v\n", err)
		os.Exit(3)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringP("provider", "p", "openai", "Generation provider: openai, openrouter, gemini, ollama")
	rootCmd.PersistentFlags().StringP("model", "m", "", "Model name (provider default if empty)")
	rootCmd.PersistentFlags().String("base-url", "", "Provider base URL override")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Per-call timeout (default 2m)")
	rootCmd.PersistentFlags().Bool("ollama-anonymous", false, "Call Ollama without an API key when none is configured")
}
