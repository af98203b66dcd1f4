// Package export turns a session into a Markdown document and writes it to
// disk.
package export

import (
	"fmt"
	"strings"
	"time"

	"prism/ai"
	"prism/session"
)

// TimestampLayout is the minute-resolution timestamp shown in the header
const TimestampLayout = "2006-01-02 15:04"

// Block headings used in the deep dive section
const (
	FollowUpHeading = "### 💬 Follow-up question"
	AnswerHeading   = "### 🔮 Answer"
)

// Document is a rendered export ready to be written
type Document struct {
	Filename    string
	Content     string
	Query       string
	Perspective string
	Generated   time.Time
}

// Build renders s into a Document named after its query
func Build(s *session.Session, now time.Time) *Document {
	doc := &Document{
		Filename:  SafeFilename(s.Query, now),
		Content:   RenderMarkdown(s, now),
		Query:     s.Query,
		Generated: now,
	}
	if p, ok := s.Perspective(); ok {
		doc.Perspective = p.Key
	}
	return doc
}

// InputSource describes where the analyzed text came from
func InputSource(s *session.Session) string {
	if s.UploadedFileName != "" {
		return "📄 Document: " + s.UploadedFileName
	}
	return "💬 Text input"
}

// RenderMarkdown renders the query, the analysis and, in deep dive mode, every
// conversation turn in order
func RenderMarkdown(s *session.Session, now time.Time) string {
	var sb strings.Builder

	sb.WriteString("# 🔮 PRISM Analysis\n\n")
	sb.WriteString(fmt.Sprintf("> Generated: %s\n", now.Format(TimestampLayout)))
	sb.WriteString(fmt.Sprintf("> Input: %s\n", InputSource(s)))
	sb.WriteString("> Powered by Upstage Solar API\n\n")
	sb.WriteString("---\n\n")

	sb.WriteString("## 📋 Topic\n\n")
	sb.WriteString(fmt.Sprintf("**%s**\n\n", s.Query))
	sb.WriteString("---\n\n")

	sb.WriteString("## 📊 Multi-perspective analysis\n\n")
	sb.WriteString(s.LastResult)
	sb.WriteString("\n\n")

	if d, ok := s.DeepDive(); ok && len(d.History) > 0 {
		sb.WriteString("---\n\n")
		sb.WriteString(fmt.Sprintf("## %s %s deep dive\n\n", d.Perspective.Emoji, d.Perspective.Name))
		for _, msg := range d.History {
			heading := AnswerHeading
			if msg.Role == ai.RoleUser {
				heading = FollowUpHeading
			}
			sb.WriteString(heading)
			sb.WriteString("\n\n")
			sb.WriteString(msg.Content)
			sb.WriteString("\n\n")
		}
	}

	sb.WriteString("---\n\n")
	sb.WriteString("*This analysis was generated by PRISM, a multi-perspective thinking partner.*\n")
	sb.WriteString("*AI analysis is reference material. The final judgment is yours.*\n")

	return sb.String()
}
