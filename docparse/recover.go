package docparse

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

var (
	inlineSpace = regexp.MustCompile(`[ \t]+`)
	newlines    = regexp.MustCompile(`\n+`)
)

// recoverText walks a Document Parse response and returns the first non-empty
// text it finds along with the field it came from. The lookup order is fixed:
// content, text, elements, pages, html, markdown.
func recoverText(body map[string]any) (text, source string) {
	steps := []func(map[string]any) (string, string){
		fromContent,
		fromString(SourceText),
		fromElements,
		fromPages,
		fromHTML,
		fromString(SourceMarkdown),
	}
	for _, step := range steps {
		if text, source = step(body); text != "" {
			return strings.TrimSpace(text), source
		}
	}
	return "", ""
}

func fromContent(body map[string]any) (string, string) {
	switch content := body["content"].(type) {
	case map[string]any:
		// Only the first present key is consulted
		if v, ok := content["html"]; ok {
			s, _ := v.(string)
			return cleanContentHTML(s), SourceContentHTML
		}
		if v, ok := content["text"]; ok {
			s, _ := v.(string)
			return s, SourceContentText
		}
		if v, ok := content["markdown"]; ok {
			s, _ := v.(string)
			return s, SourceContentMarkdown
		}
	case string:
		return content, SourceContent
	}
	return "", ""
}

func fromString(key string) func(map[string]any) (string, string) {
	return func(body map[string]any) (string, string) {
		s, _ := body[key].(string)
		return s, key
	}
}

func fromElements(body map[string]any) (string, string) {
	elements, ok := body["elements"].([]any)
	if !ok {
		return "", ""
	}

	var texts []string
	for _, e := range elements {
		el, ok := e.(map[string]any)
		if !ok {
			continue
		}
		if s, ok := el["text"].(string); ok {
			texts = append(texts, s)
		}
		switch c := el["content"].(type) {
		case map[string]any:
			if s, ok := c["text"].(string); ok {
				texts = append(texts, s)
			}
		case string:
			texts = append(texts, c)
		}
	}
	return strings.Join(texts, "\n"), SourceElements
}

func fromPages(body map[string]any) (string, string) {
	pages, ok := body["pages"].([]any)
	if !ok {
		return "", ""
	}

	var texts []string
	for _, p := range pages {
		page, ok := p.(map[string]any)
		if !ok {
			continue
		}
		if s, ok := page["text"].(string); ok {
			texts = append(texts, s)
		}
		words, _ := page["words"].([]any)
		var pageWords []string
		for _, w := range words {
			word, ok := w.(map[string]any)
			if !ok {
				continue
			}
			if s, ok := word["text"].(string); ok {
				pageWords = append(pageWords, s)
			}
		}
		if len(pageWords) > 0 {
			texts = append(texts, strings.Join(pageWords, " "))
		}
	}
	return strings.Join(texts, "\n"), SourcePages
}

func fromHTML(body map[string]any) (string, string) {
	s, _ := body["html"].(string)
	if s == "" {
		return "", ""
	}
	return cleanHTML(s), SourceHTML
}

// cleanContentHTML strips tags from content.html, keeping line breaks
func cleanContentHTML(s string) string {
	s = htmlText(s, true)
	s = inlineSpace.ReplaceAllString(s, " ")
	s = newlines.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}

// cleanHTML strips tags and collapses all whitespace to single spaces
func cleanHTML(s string) string {
	return strings.Join(strings.Fields(htmlText(s, false)), " ")
}

// htmlText replaces every tag with a space (or a newline for <br> when
// keepBreaks is set), drops comments and decodes entities in text
func htmlText(s string, keepBreaks bool) string {
	z := html.NewTokenizer(strings.NewReader(s))
	var sb strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return sb.String()
		case html.TextToken:
			sb.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if keepBreaks && string(name) == "br" {
				sb.WriteByte('\n')
			} else {
				sb.WriteByte(' ')
			}
		case html.EndTagToken, html.DoctypeToken:
			sb.WriteByte(' ')
		case html.CommentToken:
		}
	}
}

// topLevelKeys returns the response keys, sorted
func topLevelKeys(body map[string]any) []string {
	keys := make([]string, 0, len(body))
	for k := range body {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
