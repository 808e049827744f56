package prompt

import (
	"strings"
	"testing"

	"github.com/valpere/lullaby/internal/rubric"
)

func TestStory(t *testing.T) {
	request := "a story about a shy turtle"
	p := Story(request)

	if !strings.Contains(p, `"""`+request+`"""`) {
		t.Error("expected the request embedded verbatim")
	}
	for _, want := range []string{
		"No violence, hitting, bullying, or harm",
		"reinterpreted safely",
		"7 short paragraphs",
		"3-5 simple sentences",
		"warm, calm",
		"Only return the story",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("story prompt missing %q", want)
		}
	}
	for _, role := range Roles {
		if !strings.Contains(p, role) {
			t.Errorf("story prompt missing role %q", role)
		}
	}
	if strings.Index(p, request) < strings.Index(p, "STYLE REQUIREMENTS") {
		t.Error("expected the request after the rules")
	}
}

func TestStory_EmptyRequest(t *testing.T) {
	p := Story("")
	if !strings.Contains(p, `""""""`) {
		t.Error("expected an empty fenced request")
	}
}

func TestStory_Deterministic(t *testing.T) {
	if Story("owls") != Story("owls") {
		t.Error("expected identical prompts for identical input")
	}
}

func TestJudge(t *testing.T) {
	story := "Tilly the turtle was shy."
	p := Judge(story)

	if !strings.Contains(p, story) {
		t.Error("expected story in judge prompt")
	}
	if !strings.Contains(p, "ONLY a JSON object") {
		t.Error("expected JSON-only instruction")
	}
	for _, c := range rubric.Categories {
		if !strings.Contains(p, string(c)+`: "pass" or "fail"`) {
			t.Errorf("judge prompt missing key %s", c)
		}
		if criteria[c] == "" {
			t.Errorf("no criterion text for %s", c)
		}
	}
	if !strings.Contains(p, "- suggestions:") {
		t.Error("expected suggestions key")
	}
}

func TestRevision(t *testing.T) {
	story := "Tilly the turtle was shy."
	verdict := rubric.AllPass().With(rubric.StoryStructure, rubric.Fail)
	verdict.Suggestions = []string{"Split the story into seven paragraphs"}

	p := Revision(story, verdict)

	for _, want := range []string{
		`"""` + story + `"""`,
		`"story_structure": "fail"`,
		`"age_appropriateness": "pass"`,
		"Split the story into seven paragraphs",
		"gentle and emotionally safe",
		"simple words and short sentences",
		"clear beginning, middle, and end",
		"positive lesson",
		"Return ONLY the revised story",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("revision prompt missing %q", want)
		}
	}
}
