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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/valpere/lullaby/internal/config"
	"github.com/valpere/lullaby/internal/rubric"
)

var inputFile string

type judgeOutput struct {
	Verdict       rubric.Verdict `json:"verdict"`
	NeedsRevision bool           `json:"needs_revision"`
	Fallback      bool           `json:"judge_fallback"`
	Failed        []string       `json:"failed"`
}

var judgeCmd = &cobra.Command{
	Use:   "judge",
	Short: "Score an existing story against the rubric",
	Long: `Run only the judge on a story file and report the verdict as JSON,
along with whether the story would be revised.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(v)
		if err != nil {
			return err
		}

		story, err := os.ReadFile(inputFile)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}

		gen, err := buildGenerator(cfg, v)
		if err != nil {
			return err
		}

		ctx, stop := commandContext(cmd)
		defer stop()

		eval, err := buildJudge(cfg, gen).Evaluate(ctx, string(story))
		if err != nil {
			return err
		}

		failed := []string{}
		for _, c := range eval.Verdict.Failed() {
			failed = append(failed, string(c))
		}
		return writeJSON(cmd.OutOrStdout(), judgeOutput{
			Verdict:       eval.Verdict,
			NeedsRevision: rubric.NeedsRevision(eval.Verdict),
			Fallback:      eval.Fallback(),
			Failed:        failed,
		})
	},
}

func init() {
	rootCmd.AddCommand(judgeCmd)

	judgeCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Story file to judge (required)")
	judgeCmd.MarkFlagRequired("input")
}
