package tui

import (
	"strings"
	"testing"

	"prism/session"
)

func TestRenderMarkdown(t *testing.T) {
	out, err := RenderMarkdown("# Heading\n\nSome **bold** text", 60)
	if err != nil {
		t.Fatalf("RenderMarkdown returned error: %v", err)
	}
	for _, want := range []string{"Heading", "bold", "text"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestTruncateQuery(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"line one\nline  two", 20, "line one line two"},
		{"abcdefghij", 5, "abcde..."},
		{"가나다라마", 3, "가나다..."},
	}

	for _, tt := range tests {
		if got := TruncateQuery(tt.in, tt.max); got != tt.want {
			t.Errorf("TruncateQuery(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestStatusPanel(t *testing.T) {
	s := session.New()
	if out := StatusPanel(s, 0); !strings.Contains(out, "Enter a topic") {
		t.Errorf("idle panel = %q", out)
	}

	s.SetDocument("report.pdf", "text")
	out := StatusPanel(s, 0)
	if !strings.Contains(out, "Text extracted") || !strings.Contains(out, "report.pdf") {
		t.Errorf("document panel = %q", out)
	}

	s.RecordAnalysis("How to grow?", "result")
	if out := StatusPanel(s, 0); !strings.Contains(out, "Analysis complete") {
		t.Errorf("analysis panel = %q", out)
	}

	if err := s.Select("critical"); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if err := s.RecordDeepDive("", "first answer"); err != nil {
		t.Fatalf("RecordDeepDive: %v", err)
	}
	out = StatusPanel(s, 0)
	for _, want := range []string{"Critical", "deep dive", "Turns: 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("deep dive panel missing %q:\n%s", want, out)
		}
	}
}
