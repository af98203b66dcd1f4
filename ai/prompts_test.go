package ai

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"prism/apierr"
	"prism/perspective"
)

func TestTemplateFields(t *testing.T) {
	tests := []struct {
		name     string
		tmpl     *Template
		expected []string
	}{
		{
			name:     "multi perspective",
			tmpl:     MultiPerspective,
			expected: []string{FieldUserInput},
		},
		{
			name: "initial deep dive",
			tmpl: InitialDeepDive,
			expected: []string{
				FieldOriginalQuery, FieldPerspectiveDescription, FieldPerspectiveEmoji,
				FieldPerspectiveName, FieldTypicality,
			},
		},
		{
			name: "follow-up deep dive",
			tmpl: FollowUpDeepDive,
			expected: []string{
				FieldFollowUpQuestion, FieldOriginalQuery, FieldPerspectiveDescription,
				FieldPerspectiveEmoji, FieldPerspectiveName, FieldPreviousAnalysis, FieldTypicality,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.tmpl.Fields()
			if strings.Join(got, ",") != strings.Join(tt.expected, ",") {
				t.Errorf("Fields() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRender(t *testing.T) {
	out, err := Render(MultiPerspective, Fields{FieldUserInput: "Should I learn Go?"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(out, "Should I learn Go?") {
		t.Error("rendered prompt should contain the user input")
	}
	for _, p := range perspective.All() {
		if !strings.Contains(out, p.Emoji+" "+p.Name) {
			t.Errorf("rendered prompt missing section for %s", p.Key)
		}
	}
}

func TestRenderMissingField(t *testing.T) {
	_, err := Render(InitialDeepDive, Fields{FieldOriginalQuery: "q"})
	if !errors.Is(err, apierr.ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
	if !strings.Contains(err.Error(), "initial_deep_dive") {
		t.Errorf("error should name the template: %v", err)
	}
}

func TestRenderExtraFieldsIgnored(t *testing.T) {
	_, err := Render(MultiPerspective, Fields{FieldUserInput: "x", "Unused": "y"})
	if err != nil {
		t.Errorf("extra fields should be ignored, got %v", err)
	}
}

func TestSummarizePrevious(t *testing.T) {
	if got := summarizePrevious(""); got != noPreviousAnalysis {
		t.Errorf("summarizePrevious(\"\") = %q", got)
	}

	long := strings.Repeat("가", 1500)
	got := summarizePrevious(long)
	if n := utf8.RuneCountInString(got); n != previousAnalysisLimit {
		t.Errorf("summarizePrevious kept %d runes, want %d", n, previousAnalysisLimit)
	}
	if !utf8.ValidString(got) {
		t.Error("truncation split a rune")
	}
}

func TestDocumentQuery(t *testing.T) {
	text := strings.Repeat("a", 5000)

	t.Run("with question", func(t *testing.T) {
		q := DocumentQuery("  What are the risks?  ", text)
		if !strings.Contains(q, "Question: What are the risks?\n") {
			t.Errorf("question not included: %q", q[:80])
		}
		if strings.Count(q, "a") < documentTextLimit || strings.Contains(q, strings.Repeat("a", documentTextLimit+1)) {
			t.Error("document excerpt should be exactly the first 3000 characters")
		}
	})

	t.Run("blank question", func(t *testing.T) {
		q := DocumentQuery("   ", "short doc")
		if !strings.HasPrefix(q, "[Document analysis request]") || !strings.HasSuffix(q, "short doc") {
			t.Errorf("unexpected query: %q", q)
		}
		if strings.Contains(q, "Question:") {
			t.Error("blank question should use the default wording")
		}
	})
}
