package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/rotisserie/eris"

	"prism/session"
)

const defaultWrap = 80

// RenderMarkdown renders md for the terminal, wrapped at width. On renderer
// failure the raw Markdown is returned with the error.
func RenderMarkdown(md string, width int) (string, error) {
	if width <= 0 {
		width = defaultWrap
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md, eris.Wrap(err, "tui: create markdown renderer")
	}

	out, err := renderer.Render(md)
	if err != nil {
		return md, eris.Wrap(err, "tui: render markdown")
	}
	return out, nil
}

// TruncateQuery shortens a query for captions
func TruncateQuery(q string, n int) string {
	q = strings.Join(strings.Fields(q), " ")
	r := []rune(q)
	if len(r) <= n {
		return q
	}
	return string(r[:n]) + "..."
}

// StatusPanel summarizes the session: mode, perspective, turn count and
// document
func StatusPanel(s *session.Session, width int) string {
	var lines []string

	switch s.Status() {
	case session.StatusDeepDive:
		p, _ := s.Perspective()
		lines = append(lines,
			PerspectiveBadge(p)+BodyStyle.Render(" deep dive in progress"),
			MutedStyle.Render(fmt.Sprintf("Turns: %d", s.TurnCount())),
		)
	case session.StatusAnalysisDone:
		lines = append(lines, SuccessStyle.Render("Analysis complete ✨"))
		lines = append(lines, MutedStyle.Render("Pick a perspective to dig deeper, or save the result."))
	case session.StatusDocumentReady:
		lines = append(lines, InfoStyle.Render("📄 Text extracted"))
		lines = append(lines, MutedStyle.Render("Enter an analysis question to begin."))
	default:
		lines = append(lines, InfoStyle.Render("Enter a topic or upload a document"))
	}

	if s.UploadedFileName != "" {
		lines = append(lines, MutedStyle.Render("📄 "+s.UploadedFileName))
	}
	if s.Query != "" && s.UploadedFileName == "" {
		lines = append(lines, MutedStyle.Render("Topic: "+TruncateQuery(s.Query, 80)))
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 2)
	if width > 0 {
		style = style.Width(width)
	}

	return style.Render(TitleStyle.UnsetMarginBottom().Render("📌 Status") + "\n" + strings.Join(lines, "\n"))
}
