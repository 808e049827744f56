// Package judge scores a story against the bedtime-story rubric using an LLM
// and always yields a well-formed verdict.
package judge

import (
	"context"

	"go.uber.org/zap"

	"github.com/valpere/lullaby/internal/llm"
	"github.com/valpere/lullaby/internal/prompt"
	"github.com/valpere/lullaby/internal/rubric"
)

// DefaultLimits keep the judging call short and near-deterministic.
var DefaultLimits = llm.Limits{MaxOutputTokens: 500, Temperature: 0.0}

// Evaluation is the full outcome of one judging call.
type Evaluation struct {
	Verdict rubric.Verdict
	// Raw is the generator's response text.
	Raw string
	// ParseErr is set when Raw was not a valid verdict and Verdict is the fallback.
	ParseErr error
}

// Fallback reports whether Verdict was substituted for an unparseable response.
func (e *Evaluation) Fallback() bool {
	return e.ParseErr != nil
}

// Judge evaluates stories with a Generator.
type Judge struct {
	gen    llm.Generator
	limits llm.Limits
	logger *zap.Logger
}

// Option configures a Judge.
type Option func(*Judge)

// WithLimits overrides DefaultLimits.
func WithLimits(l llm.Limits) Option {
	return func(j *Judge) { j.limits = l }
}

// WithLogger sets the logger used to report parse fallbacks.
func WithLogger(l *zap.Logger) Option {
	return func(j *Judge) { j.logger = l }
}

// New creates a Judge backed by gen.
func New(gen llm.Generator, opts ...Option) *Judge {
	j := &Judge{
		gen:    gen,
		limits: DefaultLimits,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Judge returns the verdict for story. Only generator errors are returned;
// an unparseable response yields rubric.Fallback().
func (j *Judge) Judge(ctx context.Context, story string) (rubric.Verdict, error) {
	eval, err := j.Evaluate(ctx, story)
	if err != nil {
		return rubric.Verdict{}, err
	}
	return eval.Verdict, nil
}

// Evaluate is Judge with the raw response and parse outcome kept.
func (j *Judge) Evaluate(ctx context.Context, story string) (*Evaluation, error) {
	raw, err := j.gen.Generate(ctx, prompt.Judge(story), j.limits)
	if err != nil {
		return nil, err
	}

	verdict, parseErr := parseVerdict(raw)
	if parseErr != nil {
		j.logger.Warn("judge response not valid, using fallback verdict",
			zap.String("provider", j.gen.Name()),
			zap.Error(parseErr))
		return &Evaluation{Verdict: rubric.Fallback(), Raw: raw, ParseErr: parseErr}, nil
	}

	return &Evaluation{Verdict: verdict, Raw: raw}, nil
}
