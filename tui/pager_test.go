package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func stubClipboard(t *testing.T, err error) *string {
	t.Helper()
	var got string
	orig := clipboardWriteAll
	clipboardWriteAll = func(text string) error {
		got = text
		return err
	}
	t.Cleanup(func() { clipboardWriteAll = orig })
	return &got
}

// TestNewPagerModel tests the defaults of a new pager
func TestNewPagerModel(t *testing.T) {
	m := NewPagerModel("Result", "# Title\n\nbody", "")

	if m.width != 80 {
		t.Errorf("Expected default width to be 80, got %d", m.width)
	}
	if m.height != 24 {
		t.Errorf("Expected default height to be 24, got %d", m.height)
	}
	if m.copyText != "# Title\n\nbody" {
		t.Errorf("Expected copy text to fall back to the markdown, got %q", m.copyText)
	}
	if m.Init() != nil {
		t.Error("Expected Init to return nil")
	}
}

// TestPagerModelWindowSize tests resizing
func TestPagerModelWindowSize(t *testing.T) {
	m := NewPagerModel("Result", "text", "")

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	pm := updated.(PagerModel)

	if pm.width != 120 || pm.height != 40 {
		t.Errorf("Expected 120x40, got %dx%d", pm.width, pm.height)
	}
	if pm.viewport.Width != 120 {
		t.Errorf("Expected viewport width 120, got %d", pm.viewport.Width)
	}
	if pm.viewport.Height != 35 {
		t.Errorf("Expected viewport height 35, got %d", pm.viewport.Height)
	}
}

// TestPagerModelQuit tests the quit keys
func TestPagerModelQuit(t *testing.T) {
	keys := []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	}

	for _, key := range keys {
		t.Run(key.String(), func(t *testing.T) {
			m := NewPagerModel("Result", "text", "")
			updated, cmd := m.Update(key)
			pm := updated.(PagerModel)

			if !pm.IsQuitting() {
				t.Error("Expected pager to be quitting")
			}
			if cmd == nil {
				t.Error("Expected a quit command")
			}
			if pm.View() != "" {
				t.Error("Expected empty view after quitting")
			}
		})
	}
}

// TestPagerModelCopy tests copying with 'c'
func TestPagerModelCopy(t *testing.T) {
	got := stubClipboard(t, nil)

	m := NewPagerModel("Result", "rendered", "# export")
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	pm := updated.(PagerModel)

	if *got != "# export" {
		t.Errorf("Expected clipboard to receive the copy text, got %q", *got)
	}
	if !strings.Contains(pm.Status(), "Copied") {
		t.Errorf("Expected copy confirmation, got %q", pm.Status())
	}
	if pm.IsQuitting() {
		t.Error("Copy should not close the pager")
	}
}

// TestPagerModelCopyFailure tests the status after a clipboard error
func TestPagerModelCopyFailure(t *testing.T) {
	stubClipboard(t, errors.New("no clipboard"))

	m := NewPagerModel("Result", "rendered", "")
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	pm := updated.(PagerModel)

	if !strings.Contains(pm.Status(), "no clipboard") {
		t.Errorf("Expected failure status, got %q", pm.Status())
	}
}

// TestPagerModelView tests that View shows title and help
func TestPagerModelView(t *testing.T) {
	m := NewPagerModel("PRISM Result", "hello world", "")
	view := m.View()

	for _, want := range []string{"PRISM Result", "hello", "copy", "back"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected view to contain %q", want)
		}
	}
}
