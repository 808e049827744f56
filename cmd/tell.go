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
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/valpere/lullaby/internal/config"
	"github.com/valpere/lullaby/internal/markdown"
	"github.com/valpere/lullaby/internal/orchestrator"
	"github.com/valpere/lullaby/internal/rubric"
)

var (
	outputFile string
	jsonOutput bool
)

type tellOutput struct {
	RunID         string         `json:"run_id"`
	Request       string         `json:"request"`
	Story         string         `json:"story"`
	Verdict       rubric.Verdict `json:"verdict"`
	Revised       bool           `json:"revised"`
	JudgeFallback bool           `json:"judge_fallback"`
	Warnings      []string       `json:"warnings,omitempty"`
	ElapsedMS     int64          `json:"elapsed_ms"`
}

var tellCmd = &cobra.Command{
	Use:   "tell [request...]",
	Short: "Write, judge, and if needed revise a bedtime story",
	Long: `Write a bedtime story for the given request, have the judge score it
against the rubric, and revise it once if any category fails.

The request is taken from the arguments, or read from stdin when none are given.

Examples:
  lullaby tell a story about a shy turtle
  lullaby tell --provider ollama --model llama3.2 a dragon who is afraid of the dark
  lullaby tell --output story.html a bunny who shares`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := v.BindPFlag("check_language", cmd.Flags().Lookup("check-language")); err != nil {
			return err
		}
		cfg, err := config.Load(v)
		if err != nil {
			return err
		}

		request := strings.Join(args, " ")
		if len(args) == 0 {
			if request, err = readRequest(cmd.InOrStdin(), cmd.ErrOrStderr()); err != nil {
				return err
			}
		}

		gen, err := buildGenerator(cfg, v)
		if err != nil {
			return err
		}

		ctx, stop := commandContext(cmd)
		defer stop()

		result, err := buildPipeline(cfg, gen).Run(ctx, request)
		if err != nil {
			return err
		}

		if outputFile != "" {
			if err := writeStory(outputFile, request, result.Story); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return writeJSON(out, tellOutput{
				RunID:         result.RunID,
				Request:       request,
				Story:         result.Story,
				Verdict:       result.Verdict,
				Revised:       result.Revised,
				JudgeFallback: result.JudgeFallback,
				Warnings:      result.Warnings,
				ElapsedMS:     result.Elapsed.Milliseconds(),
			})
		}
		printResult(out, result)
		return nil
	},
}

// readRequest prompts on w and reads one line from r. An empty line is a valid request.
func readRequest(r io.Reader, w io.Writer) (string, error) {
	fmt.Fprintln(w, "What kind of story do you want to hear?")
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read request: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func printResult(w io.Writer, result *orchestrator.Result) {
	fmt.Fprintln(w, "\n--- Judge Feedback ---")
	for _, c := range rubric.Categories {
		fmt.Fprintf(w, "%-22s %s\n", c, result.Verdict.Status(c))
	}
	for _, s := range result.Verdict.Suggestions {
		fmt.Fprintf(w, "  - %s\n", s)
	}
	if result.Revised {
		fmt.Fprintln(w, "(revised once based on the feedback above)")
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}

	fmt.Fprintln(w, "\n--- Final Story ---")
	fmt.Fprintln(w, result.Story)
}

// writeStory saves the story as plain text, or as a rendered page for .html/.htm paths.
func writeStory(path, request, story string) error {
	data := []byte(story)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		title := request
		if title == "" {
			title = "A Bedtime Story"
		}
		page, err := markdown.Page(title, data)
		if err != nil {
			return fmt.Errorf("failed to render story: %w", err)
		}
		data = []byte(page)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func init() {
	rootCmd.AddCommand(tellCmd)

	tellCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Also write the final story to this file (.html renders a page)")
	tellCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result as JSON")
	tellCmd.Flags().Bool("check-language", false, "Warn when the story language differs from the request language")
}
