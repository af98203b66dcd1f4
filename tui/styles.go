// Package tui provides the terminal UI for PRISM using Charm libraries
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"prism/perspective"
)

// Color palette
var (
	// Primary colors
	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"} // Violet
	ColorSecondary = lipgloss.AdaptiveColor{Light: "#0EA5E9", Dark: "#38BDF8"} // Sky blue
	ColorAccent    = lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#FBBF24"} // Amber

	// Semantic colors
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#10B981", Dark: "#34D399"} // Emerald
	ColorWarning = lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#FBBF24"} // Amber
	ColorError   = lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#F87171"} // Red
	ColorInfo    = lipgloss.AdaptiveColor{Light: "#6366F1", Dark: "#818CF8"} // Indigo

	// Neutral colors
	ColorText   = lipgloss.AdaptiveColor{Light: "#1E293B", Dark: "#F1F5F9"}
	ColorSubtle = lipgloss.AdaptiveColor{Light: "#64748B", Dark: "#94A3B8"}
	ColorMuted  = lipgloss.AdaptiveColor{Light: "#94A3B8", Dark: "#64748B"}
	ColorBorder = lipgloss.AdaptiveColor{Light: "#CBD5E1", Dark: "#334155"}
)

// perspectiveColors maps a perspective's color name to a terminal color
var perspectiveColors = map[string]lipgloss.AdaptiveColor{
	"blue":   {Light: "#2563EB", Dark: "#60A5FA"},
	"green":  {Light: "#059669", Dark: "#34D399"},
	"orange": {Light: "#D97706", Dark: "#FBBF24"},
	"red":    {Light: "#DC2626", Dark: "#F87171"},
}

// Base styles
var (
	// Text styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			MarginBottom(1)

	BodyStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// Status styles
	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)

	// Component styles
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2).
			MarginTop(1).
			MarginBottom(1)

	// Badge styles
	BadgeStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Background(ColorPrimary).
			Foreground(lipgloss.Color("#FFFFFF"))

	BadgeSuccessStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(ColorSuccess).
				Foreground(lipgloss.Color("#FFFFFF"))
)

// PrismASCII is the application banner
var PrismASCII = `
  ___ ___ ___ ___ __  __
 | _ \ _ \_ _/ __|  \/  |
 |  _/   /| |\__ \ |\/| |
 |_| |_|_\___|___/_|  |_|
`

// GetHeader returns the styled banner and tagline
func GetHeader() string {
	banner := lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Render(PrismASCII)
	tagline := SubtitleStyle.Render("Multi-perspective thinking partner · explore a map of possibilities, not a single answer")
	return banner + "\n" + tagline
}

// PerspectiveStyle returns a style colored for p
func PerspectiveStyle(p perspective.Perspective) lipgloss.Style {
	color, ok := perspectiveColors[p.Color]
	if !ok {
		color = ColorPrimary
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color)
}

// PerspectiveBadge renders "🔵 Traditional" in the perspective's color
func PerspectiveBadge(p perspective.Perspective) string {
	return PerspectiveStyle(p).Render(p.Label())
}

// Card renders a card component
func Card(title, content string, width int) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		MarginBottom(1)

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(1, 2).
		Width(width)

	return cardStyle.Render(titleStyle.Render(title) + "\n" + BodyStyle.Render(content))
}

// KeyBinding is one entry of the key help line
type KeyBinding struct {
	Key  string
	Desc string
}

// KeyHelp renders keyboard shortcut help in the given order
func KeyHelp(keys []KeyBinding) string {
	helpStyle := lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(ColorSubtle).
		Bold(true)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, keyStyle.Render(k.Key)+MutedStyle.Render(" "+k.Desc))
	}

	sep := lipgloss.NewStyle().Foreground(ColorBorder).Render(" | ")
	return helpStyle.Render(strings.Join(parts, sep))
}
