// Package reviser produces one improved draft of a story from judge feedback.
package reviser

import (
	"context"

	"github.com/valpere/lullaby/internal/llm"
	"github.com/valpere/lullaby/internal/prompt"
	"github.com/valpere/lullaby/internal/rubric"
)

// DefaultLimits give the revision the full story budget at a moderate temperature.
var DefaultLimits = llm.Limits{MaxOutputTokens: 4000, Temperature: 0.3}

// Reviser rewrites a story to address a verdict.
type Reviser interface {
	Revise(ctx context.Context, original string, verdict rubric.Verdict) (string, error)
}

// LLMReviser asks a Generator for the revised story.
type LLMReviser struct {
	gen    llm.Generator
	limits llm.Limits
}

// New creates a reviser backed by gen using DefaultLimits.
func New(gen llm.Generator) *LLMReviser {
	return &LLMReviser{gen: gen, limits: DefaultLimits}
}

// WithLimits returns a copy of r using limits.
func (r *LLMReviser) WithLimits(limits llm.Limits) *LLMReviser {
	c := *r
	c.limits = limits
	return &c
}

// Revise returns the generator's revised story verbatim. The result is not
// judged again.
func (r *LLMReviser) Revise(ctx context.Context, original string, verdict rubric.Verdict) (string, error) {
	return r.gen.Generate(ctx, prompt.Revision(original, verdict), r.limits)
}
