package ai

import (
	"fmt"
	"sort"
	"strings"
	"text/template"
	"text/template/parse"

	"github.com/rotisserie/eris"

	"prism/apierr"
	"prism/perspective"
)

// Field names referenced by the prompt templates
const (
	FieldUserInput              = "UserInput"
	FieldOriginalQuery          = "OriginalQuery"
	FieldPerspectiveName        = "PerspectiveName"
	FieldPerspectiveEmoji       = "PerspectiveEmoji"
	FieldTypicality             = "Typicality"
	FieldPerspectiveDescription = "PerspectiveDescription"
	FieldPreviousAnalysis       = "PreviousAnalysis"
	FieldFollowUpQuestion       = "FollowUpQuestion"
)

const (
	previousAnalysisLimit = 1000
	documentTextLimit     = 3000
	noPreviousAnalysis    = "(no previous analysis)"
)

// Fields maps template field names to their values
type Fields map[string]string

// Template is a fixed prompt template. The set of fields it needs is derived
// from the parsed template text.
type Template struct {
	name   string
	tmpl   *template.Template
	fields []string
}

// Name returns the template name
func (t *Template) Name() string {
	return t.name
}

// Fields returns the field names the template references, sorted
func (t *Template) Fields() []string {
	out := make([]string, len(t.fields))
	copy(out, t.fields)
	return out
}

func mustTemplate(name, text string) *Template {
	tmpl := template.Must(template.New(name).Option("missingkey=error").Parse(text))

	seen := make(map[string]bool)
	collectFields(tmpl.Tree.Root, seen)
	fields := make([]string, 0, len(seen))
	for f := range seen {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	return &Template{name: name, tmpl: tmpl, fields: fields}
}

func collectFields(node parse.Node, seen map[string]bool) {
	switch n := node.(type) {
	case *parse.ListNode:
		if n == nil {
			return
		}
		for _, child := range n.Nodes {
			collectFields(child, seen)
		}
	case *parse.ActionNode:
		for _, cmd := range n.Pipe.Cmds {
			for _, arg := range cmd.Args {
				if f, ok := arg.(*parse.FieldNode); ok && len(f.Ident) > 0 {
					seen[f.Ident[0]] = true
				}
			}
		}
	}
}

// Render substitutes fields into t. Every field the template references must
// be present in fields.
func Render(t *Template, fields Fields) (string, error) {
	for _, name := range t.fields {
		if _, ok := fields[name]; !ok {
			return "", eris.Wrapf(apierr.ErrMissingField, "ai: field %s (template %s)", name, t.name)
		}
	}

	var b strings.Builder
	if err := t.tmpl.Execute(&b, map[string]string(fields)); err != nil {
		return "", eris.Wrapf(apierr.ErrMissingField, "ai: template %s: %v", t.name, err)
	}
	return b.String(), nil
}

// SystemPrompt is sent ahead of every multi-perspective analysis
const SystemPrompt = "You are a multi-perspective thinking partner who helps the user broaden their thinking."

// DeepDiveSystemPrompt returns the system message for a deep dive on p
func DeepDiveSystemPrompt(p perspective.Perspective) string {
	return fmt.Sprintf("%s You are currently helping the user explore the '%s' perspective in depth.", SystemPrompt, p.Name)
}

// MultiPerspective asks for an analysis from all four perspectives
var MultiPerspective = mustTemplate("multi_perspective", multiPerspectiveText())

// InitialDeepDive opens a deep dive right after a perspective is chosen
var InitialDeepDive = mustTemplate("initial_deep_dive", `You are a "multi-perspective thinking partner".

The user received a multi-perspective analysis of "{{.OriginalQuery}}"
and chose the **{{.PerspectiveName}}** perspective to explore in more depth.

## Selected perspective
{{.PerspectiveEmoji}} **{{.PerspectiveName}}** (typicality: {{.Typicality}})
{{.PerspectiveDescription}}

---

## Response guidelines

For this perspective, provide:

1. **Concrete steps**: how would one actually apply this perspective?
2. **Real cases or examples**: situations where this approach worked well.
3. **Expected challenges and responses**: what difficulties may come up along this path?
4. **Suggested next steps**: what questions could the user ask to explore further?

Close in an open manner so the user can ask follow-up questions.`)

// FollowUpDeepDive answers a follow-up question inside a deep dive
var FollowUpDeepDive = mustTemplate("follow_up_deep_dive", `You are a "multi-perspective thinking partner".

The user previously received a multi-perspective analysis of "{{.OriginalQuery}}"
and, interested in the **{{.PerspectiveName}}** perspective, wants to explore it further.

## Summary of the previous analysis
{{.PreviousAnalysis}}

## Currently selected perspective
{{.PerspectiveEmoji}} **{{.PerspectiveName}}** (typicality: {{.Typicality}})
{{.PerspectiveDescription}}

## The user's follow-up question
{{.FollowUpQuestion}}

---

## Response guidelines

1. **Center the answer on the selected perspective** and go into depth.
2. Include concrete **examples, ways to act and considerations**.
3. Where useful, mention **connections to or differences from** other perspectives.
4. Include **suggestions for the next step** the user can take.

Answer in a kind, collaborative tone, like a partner thinking it through together.`)

func multiPerspectiveText() string {
	var b strings.Builder
	b.WriteString(`You are a "multi-perspective thinking partner".

Analyze the given topic or question from four perspectives.
Each perspective has a different "typicality" (how common the approach is).

## Analysis format
`)
	for _, p := range perspective.All() {
		fmt.Fprintf(&b, "\n### %s %s perspective (typicality: %s)\n", p.Emoji, p.Name, p.Typicality)
		fmt.Fprintf(&b, "%s.\n", p.Description)
		b.WriteString("- **Core idea**: [the main claim or approach of this perspective]\n")
		b.WriteString("- **Strengths**: [what this perspective has going for it]\n")
		b.WriteString("- **Limitations**: [constraints or drawbacks of this perspective]\n")
	}
	b.WriteString(`
---

## The user's topic/question:
{{.UserInput}}

Analyze it from the four perspectives using the format above.
Make sure each perspective offers a distinct view
so the user can explore a range of possibilities.`)
	return b.String()
}

// perspectiveFields fills the perspective fields shared by both deep dive templates
func perspectiveFields(query string, p perspective.Perspective) Fields {
	return Fields{
		FieldOriginalQuery:          query,
		FieldPerspectiveName:        p.Name,
		FieldPerspectiveEmoji:       p.Emoji,
		FieldTypicality:             p.Typicality,
		FieldPerspectiveDescription: p.Description,
	}
}

// summarizePrevious truncates a previous analysis for the follow-up prompt
func summarizePrevious(analysis string) string {
	if analysis == "" {
		return noPreviousAnalysis
	}
	return truncateRunes(analysis, previousAnalysisLimit)
}

// DocumentQuery builds the analysis query for extracted document text. Only
// the start of the document is included.
func DocumentQuery(question, text string) string {
	excerpt := truncateRunes(text, documentTextLimit)
	question = strings.TrimSpace(question)
	if question == "" {
		return "[Document analysis request]\n\nAnalyze the key points of the following document from multiple perspectives:\n\n" + excerpt
	}
	return fmt.Sprintf("[Document analysis request]\n\nQuestion: %s\n\nDocument content:\n%s", question, excerpt)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
