package validator

import (
	"strings"
	"testing"
)

func sevenParagraphs() string {
	paragraphs := []string{
		"Tilly was a small turtle who lived by a quiet pond. She had a green shell and kind eyes.",
		"Every morning Tilly ate clover and watched the ducks. She liked the calm water.",
		"One day the pond friends planned a picnic. Tilly felt too shy to join them.",
		"She tried to wave from behind a rock. Nobody saw her little wave.",
		"A friendly frog said hello first. Tilly learned that one small word can open a door.",
		"She said hello back and joined the picnic. Everyone shared berries and laughed softly.",
		"That night Tilly smiled in her shell. Being brave can start with a tiny hello.",
	}
	return strings.Join(paragraphs, "\n\n")
}

func TestCountParagraphs(t *testing.T) {
	tests := []struct {
		name  string
		story string
		want  int
	}{
		{"empty", "", 0},
		{"whitespace", "  \n\n  ", 0},
		{"single", "One paragraph only.", 1},
		{"line breaks inside paragraph", "Line one.\nLine two.", 1},
		{"two paragraphs", "First.\n\nSecond.", 2},
		{"blank line with spaces", "First.\n   \nSecond.", 2},
		{"windows line endings", "First.\r\n\r\nSecond.", 2},
		{"extra blank lines", "First.\n\n\n\nSecond.\n\n", 2},
		{"seven", sevenParagraphs(), 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountParagraphs(tt.story); got != tt.want {
				t.Errorf("CountParagraphs() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCheck_WellShapedStory(t *testing.T) {
	v := New(false)

	if warnings := v.Check("a story about a shy turtle", sevenParagraphs()); len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
}

func TestCheck_WrongParagraphCount(t *testing.T) {
	v := New(false)

	warnings := v.Check("a story about a shy turtle", "Too short.\n\nOnly two paragraphs.")
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %v", warnings)
	}
	if !strings.Contains(warnings[0], "2 paragraphs") {
		t.Errorf("unexpected warning %q", warnings[0])
	}
}

func TestCheck_EmptyStory(t *testing.T) {
	v := New(false)

	if warnings := v.Check("", ""); len(warnings) != 1 {
		t.Errorf("expected a paragraph warning for empty story, got %v", warnings)
	}
}

func TestCheck_LanguageMatch(t *testing.T) {
	v := New(true)

	if warnings := v.Check("A bedtime story about a shy turtle who learns to make friends.", sevenParagraphs()); len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
}

func TestCheck_LanguageMismatch(t *testing.T) {
	v := New(true)

	request := "Казка на ніч про сором'язливу черепаху, яка вчиться дружити."
	warnings := v.Check(request, sevenParagraphs())
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %v", warnings)
	}
	if !strings.Contains(warnings[0], "differs from request language uk") {
		t.Errorf("unexpected warning %q", warnings[0])
	}
}

func TestCheck_ShortRequestSkipsLanguage(t *testing.T) {
	v := New(true)

	if warnings := v.Check("owls", sevenParagraphs()); len(warnings) != 0 {
		t.Errorf("expected no warnings for short request, got %v", warnings)
	}
}
