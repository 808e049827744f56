// Package orchestrator runs one generate -> judge -> (revise) pipeline per request.
package orchestrator

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/valpere/lullaby/internal"
	"github.com/valpere/lullaby/internal/judge"
	"github.com/valpere/lullaby/internal/llm"
	"github.com/valpere/lullaby/internal/prompt"
	"github.com/valpere/lullaby/internal/reviser"
	"github.com/valpere/lullaby/internal/rubric"
)

// State is a step of the pipeline state machine.
type State string

const (
	Generating State = "generating"
	Judging    State = "judging"
	Revising   State = "revising"
	Done       State = "done"
)

// DefaultStoryLimits are used for the first-draft generation call.
var DefaultStoryLimits = llm.Limits{MaxOutputTokens: 4000, Temperature: 0.1}

// Evaluator is the judging step. *judge.Judge satisfies it.
type Evaluator interface {
	Evaluate(ctx context.Context, story string) (*judge.Evaluation, error)
}

// Checker inspects the final story. *validator.Validator satisfies it.
type Checker interface {
	Check(request, story string) []string
}

type OrchestratorConfig struct {
	StoryLimits llm.Limits
}

// Result is the outcome of one pipeline run.
type Result struct {
	RunID string
	// Story is the final text: the revision when Revised is set, otherwise the first draft.
	Story string
	// Verdict is the verdict of the first draft, which decided whether to revise.
	Verdict rubric.Verdict
	Revised bool
	// JudgeFallback is set when Verdict replaced an unparseable judge response.
	JudgeFallback bool
	Trace         []State
	Warnings      []string
	Elapsed       time.Duration
}

type Orchestrator struct {
	gen     llm.Generator
	judge   Evaluator
	reviser reviser.Reviser
	checker Checker
	config  OrchestratorConfig
	logger  *zap.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithChecker attaches a best-effort story checker whose findings land in Result.Warnings.
func WithChecker(c Checker) Option {
	return func(o *Orchestrator) { o.checker = c }
}

// New wires a pipeline. All collaborators are injected so tests can substitute fakes.
func New(gen llm.Generator, j Evaluator, r reviser.Reviser, config OrchestratorConfig, opts ...Option) *Orchestrator {
	if config.StoryLimits == (llm.Limits{}) {
		config.StoryLimits = DefaultStoryLimits
	}
	o := &Orchestrator{
		gen:     gen,
		judge:   j,
		reviser: r,
		config:  config,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run executes the pipeline for request. Generator failures in any state
// abort the run and are returned unmodified; the failing state is logged.
// At most one revision is made and it is not re-judged.
func (o *Orchestrator) Run(ctx context.Context, request string) (*Result, error) {
	req := internal.StoryRequest{
		ID:        uuid.New().String(),
		Text:      request,
		Timestamp: time.Now(),
	}
	log := o.logger.With(zap.String("run_id", req.ID), zap.String("provider", o.gen.Name()))
	result := &Result{RunID: req.ID}

	result.Trace = append(result.Trace, Generating)
	log.Debug("generating story", zap.Int("request_len", len(req.Text)))
	story, err := o.gen.Generate(ctx, prompt.Story(req.Text), o.config.StoryLimits)
	if err != nil {
		log.Error("story generation failed", zap.Error(err))
		return nil, err
	}

	result.Trace = append(result.Trace, Judging)
	eval, err := o.judge.Evaluate(ctx, story)
	if err != nil {
		log.Error("judging failed", zap.Error(err))
		return nil, err
	}
	result.Verdict = eval.Verdict
	result.JudgeFallback = eval.Fallback()

	failed := eval.Verdict.Failed()
	log.Info("story judged",
		zap.Strings("failed", categoryNames(failed)),
		zap.Bool("fallback", result.JudgeFallback))

	if rubric.NeedsRevision(eval.Verdict) {
		result.Trace = append(result.Trace, Revising)
		revised, err := o.reviser.Revise(ctx, story, eval.Verdict)
		if err != nil {
			log.Error("revision failed", zap.Error(err))
			return nil, err
		}
		story = revised
		result.Revised = true
	}

	result.Trace = append(result.Trace, Done)
	result.Story = story
	if o.checker != nil {
		result.Warnings = o.checker.Check(req.Text, story)
		for _, w := range result.Warnings {
			log.Warn("story check", zap.String("warning", w))
		}
	}
	result.Elapsed = time.Since(req.Timestamp)

	log.Info("pipeline finished",
		zap.Bool("revised", result.Revised),
		zap.Duration("elapsed", result.Elapsed))
	return result, nil
}

func categoryNames(cs []rubric.Category) []string {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = string(c)
	}
	return names
}
