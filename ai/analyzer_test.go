package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"prism/apierr"
)

// fakeCompleter records the last request and returns a canned reply
type fakeCompleter struct {
	messages []Message
	opts     CompletionOptions
	reply    string
	err      error
	calls    int
}

func (f *fakeCompleter) Complete(_ context.Context, messages []Message, opts CompletionOptions) (string, error) {
	f.calls++
	f.messages = messages
	f.opts = opts
	return f.reply, f.err
}

func TestAnalyze(t *testing.T) {
	fake := &fakeCompleter{reply: "analysis"}
	a := NewAnalyzer(fake, DefaultSettings())

	got, err := a.Analyze(context.Background(), "Change jobs?")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if got != "analysis" {
		t.Errorf("Analyze() = %q", got)
	}
	if len(fake.messages) != 2 || fake.messages[0].Role != RoleSystem || fake.messages[1].Role != RoleUser {
		t.Fatalf("unexpected messages: %+v", fake.messages)
	}
	if fake.messages[0].Content != SystemPrompt {
		t.Errorf("system prompt = %q", fake.messages[0].Content)
	}
	if fake.opts.MaxTokens != 2000 || fake.opts.Temperature != 0.7 {
		t.Errorf("options = %+v", fake.opts)
	}
}

func TestDeepDiveInitial(t *testing.T) {
	fake := &fakeCompleter{reply: "deep"}
	a := NewAnalyzer(fake, DefaultSettings())

	_, err := a.DeepDive(context.Background(), DeepDiveRequest{
		Query:            "Start a blog",
		Perspective:      "creative",
		PreviousAnalysis: "earlier",
	})
	if err != nil {
		t.Fatalf("DeepDive() error = %v", err)
	}

	if len(fake.messages) != 2 {
		t.Fatalf("expected system + prompt, got %d messages", len(fake.messages))
	}
	if !strings.Contains(fake.messages[0].Content, "'Creative'") {
		t.Errorf("system message should name the perspective: %q", fake.messages[0].Content)
	}
	prompt := fake.messages[1].Content
	if !strings.Contains(prompt, `"Start a blog"`) || !strings.Contains(prompt, "🔴 **Creative**") {
		t.Errorf("initial prompt missing query or perspective:\n%s", prompt)
	}
	if strings.Contains(prompt, "## The user's follow-up question") {
		t.Error("opening turn should use the initial template")
	}
	if fake.opts.MaxTokens != 1500 {
		t.Errorf("MaxTokens = %d, want 1500", fake.opts.MaxTokens)
	}
}

func TestDeepDiveFollowUpOrder(t *testing.T) {
	fake := &fakeCompleter{reply: "more"}
	a := NewAnalyzer(fake, DefaultSettings())

	history := []Message{
		{Role: RoleAssistant, Content: "first answer"},
		{Role: RoleUser, Content: "why?"},
		{Role: RoleAssistant, Content: "because"},
	}
	_, err := a.DeepDive(context.Background(), DeepDiveRequest{
		Query:       "Team conflict",
		Perspective: "critical",
		FollowUp:    "what are the risks?",
		History:     history,
	})
	if err != nil {
		t.Fatalf("DeepDive() error = %v", err)
	}

	if len(fake.messages) != len(history)+2 {
		t.Fatalf("got %d messages, want %d", len(fake.messages), len(history)+2)
	}
	for i, m := range history {
		if fake.messages[i+1] != m {
			t.Errorf("message %d = %+v, want %+v", i+1, fake.messages[i+1], m)
		}
	}
	last := fake.messages[len(fake.messages)-1]
	if last.Role != RoleUser || !strings.Contains(last.Content, "what are the risks?") {
		t.Errorf("last message should be the follow-up prompt: %+v", last)
	}
	if !strings.Contains(last.Content, noPreviousAnalysis) {
		t.Error("empty previous analysis should be replaced by the placeholder")
	}
}

func TestDeepDiveUnknownPerspective(t *testing.T) {
	fake := &fakeCompleter{}
	a := NewAnalyzer(fake, DefaultSettings())

	_, err := a.DeepDive(context.Background(), DeepDiveRequest{Query: "q", Perspective: "radical"})
	if !errors.Is(err, apierr.ErrUnknownPerspective) {
		t.Fatalf("expected ErrUnknownPerspective, got %v", err)
	}
	if fake.calls != 0 {
		t.Error("no request should be sent for an unknown perspective")
	}
}

func TestAnalyzePropagatesError(t *testing.T) {
	fake := &fakeCompleter{err: apierr.New(apierr.KindAuth, errors.New("401"))}
	a := NewAnalyzer(fake, DefaultSettings())

	_, err := a.Analyze(context.Background(), "q")
	if apierr.KindOf(err) != apierr.KindAuth {
		t.Errorf("expected auth error, got %v", err)
	}
}
