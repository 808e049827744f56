// Package llmtest provides a scripted llm.Generator for tests.
package llmtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/valpere/lullaby/internal/llm"
)

// Call records one Generate invocation.
type Call struct {
	Prompt string
	Limits llm.Limits
}

// Reply is one scripted Generate result.
type Reply struct {
	Text string
	Err  error
}

// Generator returns scripted replies in order and records every call.
// It is safe for concurrent use.
//
// Usage:
//
//	gen := &llmtest.Generator{Replies: []llmtest.Reply{
//	    {Text: "Once upon a time..."},
//	    {Text: `{"age_appropriateness": "pass", ...}`},
//	}}
type Generator struct {
	NameVal string
	Replies []Reply

	mu    sync.Mutex
	calls []Call
}

// Text returns a Generator that answers each call with the next of texts.
func Text(texts ...string) *Generator {
	g := &Generator{}
	for _, t := range texts {
		g.Replies = append(g.Replies, Reply{Text: t})
	}
	return g
}

func (g *Generator) Name() string {
	if g.NameVal == "" {
		return "fake"
	}
	return g.NameVal
}

func (g *Generator) Generate(_ context.Context, prompt string, limits llm.Limits) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	idx := len(g.calls)
	g.calls = append(g.calls, Call{Prompt: prompt, Limits: limits})

	if idx >= len(g.Replies) {
		return "", llm.NewServiceError(g.Name(), fmt.Errorf("no scripted reply for call %d", idx+1))
	}
	r := g.Replies[idx]
	return r.Text, r.Err
}

// Calls returns a copy of the recorded calls.
func (g *Generator) Calls() []Call {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Call(nil), g.calls...)
}

// CallCount returns how many times Generate was called.
func (g *Generator) CallCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}
