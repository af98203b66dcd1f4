package docparse

import (
	"encoding/json"
	"testing"
)

func TestRecoverText(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		text   string
		source string
	}{
		{
			name:   "content html",
			body:   `{"content":{"html":"<p>Hi</p><br>there"}}`,
			text:   "Hi \nthere",
			source: SourceContentHTML,
		},
		{
			name:   "content html self-closing br and repeated newlines",
			body:   `{"content":{"html":"<p>a</p><BR/><br /><br>\tb"}}`,
			text:   "a \n b",
			source: SourceContentHTML,
		},
		{
			name:   "content html wins over content text",
			body:   `{"content":{"html":"<p>from html</p>","text":"from text"}}`,
			text:   "from html",
			source: SourceContentHTML,
		},
		{
			name:   "empty content html skips content text but falls through to top-level text",
			body:   `{"content":{"html":"<p></p>","text":"ignored"},"text":"top"}`,
			text:   "top",
			source: SourceText,
		},
		{
			name:   "content text",
			body:   `{"content":{"text":"plain"}}`,
			text:   "plain",
			source: SourceContentText,
		},
		{
			name:   "content markdown",
			body:   `{"content":{"markdown":"# md"}}`,
			text:   "# md",
			source: SourceContentMarkdown,
		},
		{
			name:   "content string",
			body:   `{"content":"raw"}`,
			text:   "raw",
			source: SourceContent,
		},
		{
			name:   "top-level text before elements",
			body:   `{"text":"t","elements":[{"text":"e"}]}`,
			text:   "t",
			source: SourceText,
		},
		{
			name:   "elements text and content",
			body:   `{"elements":[{"text":"one"},{"content":{"text":"two"}},{"content":"three"},{"category":"figure"}]}`,
			text:   "one\ntwo\nthree",
			source: SourceElements,
		},
		{
			name:   "pages text and words",
			body:   `{"pages":[{"text":"page one"},{"words":[{"text":"w1"},{"text":"w2"}]}]}`,
			text:   "page one\nw1 w2",
			source: SourcePages,
		},
		{
			name:   "empty elements fall through to pages",
			body:   `{"elements":[],"pages":[{"text":"p"}]}`,
			text:   "p",
			source: SourcePages,
		},
		{
			name:   "top-level html collapses all whitespace",
			body:   `{"html":"<div>a<br>\n\n b</div>"}`,
			text:   "a b",
			source: SourceHTML,
		},
		{
			name:   "content html attribute containing a bracket",
			body:   `{"content":{"html":"<p title=\"a>b\">Hi</p>"}}`,
			text:   "Hi",
			source: SourceContentHTML,
		},
		{
			name:   "content html comment dropped",
			body:   `{"content":{"html":"<!-- x > y -->Hi<br>there"}}`,
			text:   "Hi\nthere",
			source: SourceContentHTML,
		},
		{
			name:   "content html entities decoded",
			body:   `{"content":{"html":"<p>R&amp;D &lt;draft&gt;</p>"}}`,
			text:   "R&D <draft>",
			source: SourceContentHTML,
		},
		{
			name:   "top-level html comment and entities",
			body:   `{"html":"<div class=\"x>y\"><!-- note -->Q&amp;A</div>"}`,
			text:   "Q&A",
			source: SourceHTML,
		},
		{
			name:   "markdown only",
			body:   `{"markdown": "**hi**"}`,
			text:   "**hi**",
			source: SourceMarkdown,
		},
		{
			name:   "html before markdown",
			body:   `{"html":"<b>h</b>","markdown":"m"}`,
			text:   "h",
			source: SourceHTML,
		},
		{
			name: "nothing recognizable",
			body: `{"usage":{"pages":2}}`,
			text: "",
		},
		{
			name: "non-string values ignored",
			body: `{"text":42,"markdown":null}`,
			text: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body map[string]any
			if err := json.Unmarshal([]byte(tt.body), &body); err != nil {
				t.Fatalf("bad fixture: %v", err)
			}
			text, source := recoverText(body)
			if text != tt.text {
				t.Errorf("text = %q, want %q", text, tt.text)
			}
			if tt.text != "" && source != tt.source {
				t.Errorf("source = %q, want %q", source, tt.source)
			}
		})
	}
}
