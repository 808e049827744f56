package markdown

import (
	"strings"
	"testing"
)

func TestToHTML_Paragraphs(t *testing.T) {
	out, err := ToHTML([]byte("First paragraph.\n\nSecond paragraph."))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Count(out, "<p>") != 2 {
		t.Errorf("expected two paragraphs, got %q", out)
	}
}

func TestToHTML_Emphasis(t *testing.T) {
	out, err := ToHTML([]byte("Tilly was **brave**."))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "<strong>brave</strong>") {
		t.Errorf("expected strong tag, got %q", out)
	}
}

func TestToHTML_RawHTMLOmitted(t *testing.T) {
	out, err := ToHTML([]byte("<script>alert(1)</script>\n\nHello."))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "<script>") {
		t.Errorf("expected raw HTML to be omitted, got %q", out)
	}
}

func TestPage(t *testing.T) {
	out, err := Page("Tilly & the pond", []byte("Once upon a time."))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "<!DOCTYPE html>") {
		t.Error("expected an HTML document")
	}
	if !strings.Contains(out, "<title>Tilly &amp; the pond</title>") {
		t.Errorf("expected escaped title, got %q", out)
	}
	if !strings.Contains(out, "<p>Once upon a time.</p>") {
		t.Errorf("expected story body, got %q", out)
	}
}
