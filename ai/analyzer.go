package ai

import (
	"context"

	"github.com/rotisserie/eris"

	"prism/apierr"
	"prism/perspective"
)

// Default request settings
const (
	DefaultAnalysisMaxTokens = 2000
	DefaultDeepDiveMaxTokens = 1500
	DefaultTemperature       = 0.7
)

// Completer sends a message list and returns the reply text
type Completer interface {
	Complete(ctx context.Context, messages []Message, opts CompletionOptions) (string, error)
}

// Settings controls the requests an Analyzer makes
type Settings struct {
	AnalysisMaxTokens int
	DeepDiveMaxTokens int
	Temperature       float64
}

// DefaultSettings returns the standard request settings
func DefaultSettings() Settings {
	return Settings{
		AnalysisMaxTokens: DefaultAnalysisMaxTokens,
		DeepDiveMaxTokens: DefaultDeepDiveMaxTokens,
		Temperature:       DefaultTemperature,
	}
}

// DeepDiveRequest describes one deep dive turn
type DeepDiveRequest struct {
	Query            string
	Perspective      string
	PreviousAnalysis string

	// FollowUp is empty for the opening turn
	FollowUp string

	// History holds the earlier turns of this deep dive, oldest first
	History []Message
}

// Analyzer builds prompts and sends them through a Completer
type Analyzer struct {
	completer Completer
	settings  Settings
}

// NewAnalyzer creates an Analyzer
func NewAnalyzer(completer Completer, settings Settings) *Analyzer {
	return &Analyzer{completer: completer, settings: settings}
}

// Analyze asks for a four-perspective analysis of query
func (a *Analyzer) Analyze(ctx context.Context, query string) (string, error) {
	messages, err := AnalysisMessages(query)
	if err != nil {
		return "", err
	}
	return a.completer.Complete(ctx, messages, CompletionOptions{
		MaxTokens:   a.settings.AnalysisMaxTokens,
		Temperature: a.settings.Temperature,
	})
}

// DeepDive explores one perspective, continuing any earlier turns
func (a *Analyzer) DeepDive(ctx context.Context, req DeepDiveRequest) (string, error) {
	messages, err := DeepDiveMessages(req)
	if err != nil {
		return "", err
	}
	return a.completer.Complete(ctx, messages, CompletionOptions{
		MaxTokens:   a.settings.DeepDiveMaxTokens,
		Temperature: a.settings.Temperature,
	})
}

// AnalysisMessages returns the messages sent for an analysis
func AnalysisMessages(query string) ([]Message, error) {
	prompt, err := Render(MultiPerspective, Fields{FieldUserInput: query})
	if err != nil {
		return nil, err
	}
	return []Message{
		{Role: RoleSystem, Content: SystemPrompt},
		{Role: RoleUser, Content: prompt},
	}, nil
}

// DeepDiveMessages returns the system message, then req.History in order,
// then the rendered deep dive prompt.
func DeepDiveMessages(req DeepDiveRequest) ([]Message, error) {
	p, ok := perspective.Lookup(req.Perspective)
	if !ok {
		return nil, eris.Wrapf(apierr.ErrUnknownPerspective, "ai: deep dive on %q", req.Perspective)
	}

	fields := perspectiveFields(req.Query, p)
	tmpl := InitialDeepDive
	if req.FollowUp != "" {
		tmpl = FollowUpDeepDive
		fields[FieldPreviousAnalysis] = summarizePrevious(req.PreviousAnalysis)
		fields[FieldFollowUpQuestion] = req.FollowUp
	}

	prompt, err := Render(tmpl, fields)
	if err != nil {
		return nil, err
	}

	messages := make([]Message, 0, len(req.History)+2)
	messages = append(messages, Message{Role: RoleSystem, Content: DeepDiveSystemPrompt(p)})
	messages = append(messages, req.History...)
	messages = append(messages, Message{Role: RoleUser, Content: prompt})
	return messages, nil
}
