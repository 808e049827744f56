// Package rubric defines the six-category bedtime-story verdict and the
// decision gate that turns a verdict into a revise / don't-revise answer.
package rubric

import (
	"encoding/json"
	"fmt"
)

// Status is the outcome of one rubric category.
type Status string

const (
	Pass Status = "pass"
	Fail Status = "fail"
)

// Valid reports whether s is one of the two literal statuses.
func (s Status) Valid() bool {
	return s == Pass || s == Fail
}

// Category names one rubric criterion. The string value is the JSON key the
// judge is asked to produce.
type Category string

const (
	AgeAppropriateness  Category = "age_appropriateness"
	EmotionalSafety     Category = "emotional_safety"
	StoryStructure      Category = "story_structure"
	LessonClarity       Category = "lesson_clarity"
	LanguageSimplicity  Category = "language_simplicity"
	NarrativeEngagement Category = "narrative_engagement"
)

// Categories lists the rubric in the order it is presented to the judge.
var Categories = []Category{
	AgeAppropriateness,
	EmotionalSafety,
	StoryStructure,
	LessonClarity,
	LanguageSimplicity,
	NarrativeEngagement,
}

// FallbackSuggestion is the single suggestion carried by Fallback.
const FallbackSuggestion = "Judge response was not valid JSON."

// Verdict is the judge's evaluation of one story.
type Verdict struct {
	AgeAppropriateness  Status   `json:"age_appropriateness"`
	EmotionalSafety     Status   `json:"emotional_safety"`
	StoryStructure      Status   `json:"story_structure"`
	LessonClarity       Status   `json:"lesson_clarity"`
	LanguageSimplicity  Status   `json:"language_simplicity"`
	NarrativeEngagement Status   `json:"narrative_engagement"`
	Suggestions         []string `json:"suggestions"`
}

// AllPass returns a verdict with every category passing and no suggestions.
func AllPass() Verdict {
	return uniform(Pass, []string{})
}

// Fallback is the conservative verdict used when the judge's response cannot
// be parsed: every category fails, so a revision is always triggered.
func Fallback() Verdict {
	return uniform(Fail, []string{FallbackSuggestion})
}

func uniform(s Status, suggestions []string) Verdict {
	return Verdict{
		AgeAppropriateness:  s,
		EmotionalSafety:     s,
		StoryStructure:      s,
		LessonClarity:       s,
		LanguageSimplicity:  s,
		NarrativeEngagement: s,
		Suggestions:         suggestions,
	}
}

// Status returns the status recorded for c, or "" for an unknown category.
func (v Verdict) Status(c Category) Status {
	if p := v.field(c); p != nil {
		return *p
	}
	return ""
}

// With returns a copy of v with category c set to s.
func (v Verdict) With(c Category, s Status) Verdict {
	if p := v.field(c); p != nil {
		*p = s
	}
	v.Suggestions = append([]string(nil), v.Suggestions...)
	if v.Suggestions == nil {
		v.Suggestions = []string{}
	}
	return v
}

func (v *Verdict) field(c Category) *Status {
	switch c {
	case AgeAppropriateness:
		return &v.AgeAppropriateness
	case EmotionalSafety:
		return &v.EmotionalSafety
	case StoryStructure:
		return &v.StoryStructure
	case LessonClarity:
		return &v.LessonClarity
	case LanguageSimplicity:
		return &v.LanguageSimplicity
	case NarrativeEngagement:
		return &v.NarrativeEngagement
	}
	return nil
}

// Failed lists the categories whose status is Fail, in rubric order.
func (v Verdict) Failed() []Category {
	var failed []Category
	for _, c := range Categories {
		if v.Status(c) == Fail {
			failed = append(failed, c)
		}
	}
	return failed
}

// Validate checks that every category holds a literal pass or fail.
func (v Verdict) Validate() error {
	for _, c := range Categories {
		if s := v.Status(c); !s.Valid() {
			return fmt.Errorf("category %s has invalid status %q", c, s)
		}
	}
	return nil
}

// MarshalJSON always emits suggestions as an array, never null.
func (v Verdict) MarshalJSON() ([]byte, error) {
	type plain Verdict
	p := plain(v)
	if p.Suggestions == nil {
		p.Suggestions = []string{}
	}
	return json.Marshal(p)
}
