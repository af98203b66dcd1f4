package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rotisserie/eris"
)

// clipboardWriteAll is swapped out in tests
var clipboardWriteAll = clipboard.WriteAll

// CopyToClipboard places text on the system clipboard
func CopyToClipboard(text string) error {
	if err := clipboardWriteAll(text); err != nil {
		return eris.Wrap(err, "tui: copy to clipboard")
	}
	return nil
}

// PagerModel is a scrollable view over rendered Markdown
type PagerModel struct {
	title    string
	markdown string
	copyText string

	viewport viewport.Model
	ready    bool
	width    int
	height   int

	status   string
	quitting bool
}

// NewPagerModel creates a pager for md. copyText is what 'c' places on the
// clipboard; when empty the Markdown source is used.
func NewPagerModel(title, md, copyText string) PagerModel {
	if copyText == "" {
		copyText = md
	}
	m := PagerModel{
		title:    title,
		markdown: md,
		copyText: copyText,
		width:    80,
		height:   24,
	}
	m.viewport = viewport.New(m.width, m.viewportHeight())
	m.viewport.SetContent(m.rendered())
	return m
}

// Init initializes the model
func (m PagerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m PagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = m.viewportHeight()
		m.viewport.SetContent(m.rendered())
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "c":
			if err := CopyToClipboard(m.copyText); err != nil {
				m.status = ErrorStyle.Render("Copy failed: " + err.Error())
			} else {
				m.status = SuccessStyle.Render("Copied to clipboard ✓")
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the pager
func (m PagerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	scroll := MutedStyle.Render(fmt.Sprintf("%3.f%%", m.viewport.ScrollPercent()*100))
	help := KeyHelp([]KeyBinding{
		{Key: "↑/↓", Desc: "scroll"},
		{Key: "c", Desc: "copy"},
		{Key: "q", Desc: "back"},
	})
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Bottom, help, "  ", scroll))
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
	}
	return b.String()
}

// IsQuitting returns true if the user closed the pager
func (m PagerModel) IsQuitting() bool {
	return m.quitting
}

// Status returns the last status line, e.g. the copy result
func (m PagerModel) Status() string {
	return m.status
}

func (m PagerModel) viewportHeight() int {
	// title, help and status lines
	h := m.height - 5
	if h < 3 {
		h = 3
	}
	return h
}

func (m PagerModel) rendered() string {
	out, err := RenderMarkdown(m.markdown, m.width-2)
	if err != nil {
		return m.markdown
	}
	return out
}

// RunPager shows md in a full-screen pager until the user closes it
func RunPager(title, md, copyText string) error {
	p := tea.NewProgram(NewPagerModel(title, md, copyText), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return eris.Wrap(err, "tui: run pager")
	}
	return nil
}
