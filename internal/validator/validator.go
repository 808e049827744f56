// Package validator runs best-effort shape checks on a finished story.
// Findings are warnings for the caller; they never change the pipeline flow.
package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/valpere/lullaby/internal/detector"
)

// ExpectedParagraphs is the paragraph count the story prompt asks for.
const ExpectedParagraphs = 7

// minDetectionLength is the minimum rune count required to attempt language detection.
// Shorter texts produce unreliable results and are not compared.
const minDetectionLength = 15

var blankLineRe = regexp.MustCompile(`\n\s*\n`)

// Validator checks paragraph count and, optionally, that the story is written
// in the language of the request.
// The language detector is expensive to build; reuse the instance.
type Validator struct {
	det *detector.Detector
}

// New creates a Validator. checkLanguage enables the lingua-backed language
// comparison.
func New(checkLanguage bool) *Validator {
	v := &Validator{}
	if checkLanguage {
		v.det = detector.New()
	}
	return v
}

// Check returns human-readable warnings for story. An empty result means no
// problems were found.
func (v *Validator) Check(request, story string) []string {
	var warnings []string

	if n := CountParagraphs(story); n != ExpectedParagraphs {
		warnings = append(warnings, fmt.Sprintf("story has %d paragraphs, expected %d", n, ExpectedParagraphs))
	}

	if v.det != nil {
		if w := v.checkLanguage(request, story); w != "" {
			warnings = append(warnings, w)
		}
	}

	return warnings
}

func (v *Validator) checkLanguage(request, story string) string {
	request = strings.TrimSpace(request)
	story = strings.TrimSpace(story)
	if len([]rune(request)) < minDetectionLength || len([]rune(story)) < minDetectionLength {
		return ""
	}

	want, ok := v.det.DetectISO(request)
	if !ok {
		return ""
	}
	got, ok := v.det.DetectISO(story)
	if !ok {
		return ""
	}

	if !strings.EqualFold(want, got) {
		return fmt.Sprintf("story language %s differs from request language %s", got, want)
	}
	return ""
}

// CountParagraphs counts non-empty blocks separated by blank lines.
func CountParagraphs(story string) int {
	count := 0
	for _, block := range blankLineRe.Split(strings.ReplaceAll(story, "\r\n", "\n"), -1) {
		if strings.TrimSpace(block) != "" {
			count++
		}
	}
	return count
}
