package reviser

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/valpere/lullaby/internal/llm"
	"github.com/valpere/lullaby/internal/llm/llmtest"
	"github.com/valpere/lullaby/internal/rubric"
)

func TestLLMReviser_Revise(t *testing.T) {
	gen := llmtest.Text("A calmer story.\n\nWith paragraphs.")
	verdict := rubric.AllPass().With(rubric.LanguageSimplicity, rubric.Fail)
	verdict.Suggestions = []string{"Use shorter words"}

	revised, err := New(gen).Revise(context.Background(), "Original story.", verdict)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if revised != "A calmer story.\n\nWith paragraphs." {
		t.Errorf("expected generator text verbatim, got %q", revised)
	}

	calls := gen.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected one call, got %d", len(calls))
	}
	if calls[0].Limits != DefaultLimits {
		t.Errorf("expected default limits, got %+v", calls[0].Limits)
	}
	for _, want := range []string{"Original story.", `"language_simplicity": "fail"`, "Use shorter words"} {
		if !strings.Contains(calls[0].Prompt, want) {
			t.Errorf("revision prompt missing %q", want)
		}
	}
}

func TestLLMReviser_Limits(t *testing.T) {
	if DefaultLimits.Temperature <= 0 || DefaultLimits.Temperature >= 1 {
		t.Errorf("expected a moderate temperature, got %g", DefaultLimits.Temperature)
	}

	gen := llmtest.Text("revised")
	custom := llm.Limits{MaxOutputTokens: 2000, Temperature: 0.5}
	base := New(gen)

	if _, err := base.WithLimits(custom).Revise(context.Background(), "s", rubric.Fallback()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gen.Calls()[0].Limits != custom {
		t.Errorf("expected custom limits, got %+v", gen.Calls()[0].Limits)
	}
	if base.limits != DefaultLimits {
		t.Error("WithLimits must not modify the receiver")
	}
}

func TestLLMReviser_Revise_Error(t *testing.T) {
	svcErr := llm.NewServiceError("fake", errors.New("timeout"))
	gen := &llmtest.Generator{Replies: []llmtest.Reply{{Err: svcErr}}}

	_, err := New(gen).Revise(context.Background(), "s", rubric.Fallback())
	if !errors.Is(err, svcErr) {
		t.Errorf("expected service error to propagate, got %v", err)
	}
}

func TestReviserInterface(t *testing.T) {
	var _ Reviser = (*LLMReviser)(nil)
}
