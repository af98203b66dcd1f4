package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// ActivityType represents the type of activity entry
type ActivityType string

const (
	// ActivityRequest indicates an outgoing API request
	ActivityRequest ActivityType = "request"
	// ActivityResponse indicates a completed API call
	ActivityResponse ActivityType = "response"
	// ActivityStatus indicates a status update
	ActivityStatus ActivityType = "status"
	// ActivityError indicates a failed call
	ActivityError ActivityType = "error"
)

// Service names shown in the feed
const (
	ServiceSolar         = "Upstage Solar"
	ServiceDocumentParse = "Document Parse"
)

// ActivityEntry is one line of the activity feed
type ActivityEntry struct {
	Timestamp time.Time
	Type      ActivityType

	// Service is the remote API the entry refers to
	Service string

	Title string

	// Detail is shown muted after the title, e.g. "3 messages" or "report.pdf"
	Detail string

	Latency time.Duration

	// Err holds the user-facing error text for ActivityError entries
	Err string
}

// ActivityFeed keeps the recent API activity of a session
type ActivityFeed struct {
	Entries []ActivityEntry

	// Height is the number of entries RenderFeedBox shows
	Height int

	// MaxEntries limits the number of entries kept (0 = unlimited)
	MaxEntries int

	now func() time.Time
}

// NewActivityFeed creates a feed showing the last height entries
func NewActivityFeed(height int) *ActivityFeed {
	return &ActivityFeed{
		Entries:    make([]ActivityEntry, 0),
		Height:     height,
		MaxEntries: 50,
		now:        time.Now,
	}
}

// Add appends an entry, trimming the oldest entries past MaxEntries
func (f *ActivityFeed) Add(e ActivityEntry) {
	if e.Timestamp.IsZero() {
		e.Timestamp = f.now()
	}

	f.Entries = append(f.Entries, e)

	if f.MaxEntries > 0 && len(f.Entries) > f.MaxEntries {
		f.Entries = f.Entries[len(f.Entries)-f.MaxEntries:]
	}
}

// AddRequest records an outgoing call
func (f *ActivityFeed) AddRequest(service, title, detail string) {
	f.Add(ActivityEntry{Type: ActivityRequest, Service: service, Title: title, Detail: detail})
}

// AddResponse records a finished call
func (f *ActivityFeed) AddResponse(service, title string, latency time.Duration) {
	f.Add(ActivityEntry{Type: ActivityResponse, Service: service, Title: title, Latency: latency})
}

// AddStatus records a local status change
func (f *ActivityFeed) AddStatus(title string) {
	f.Add(ActivityEntry{Type: ActivityStatus, Title: title})
}

// AddError records a failed call
func (f *ActivityFeed) AddError(service, title string, err error) {
	f.Add(ActivityEntry{Type: ActivityError, Service: service, Title: title, Err: ErrorMessage(err)})
}

// Track records a request, runs fn, then records its response or error.
// The error from fn is returned unchanged.
func (f *ActivityFeed) Track(service, title, detail string, fn func() error) error {
	f.AddRequest(service, title, detail)
	start := f.now()
	if err := fn(); err != nil {
		f.AddError(service, title, err)
		return err
	}
	f.AddResponse(service, title, f.now().Sub(start))
	return nil
}

// Clear removes all entries
func (f *ActivityFeed) Clear() {
	f.Entries = make([]ActivityEntry, 0)
}

// Render renders all entries to a string
func (f *ActivityFeed) Render() string {
	if len(f.Entries) == 0 {
		return MutedStyle.Render("  No activity yet")
	}

	lines := make([]string, 0, len(f.Entries))
	for _, e := range f.Entries {
		lines = append(lines, renderEntry(e))
	}
	return strings.Join(lines, "\n")
}

// Tail renders only the last n entries
func (f *ActivityFeed) Tail(n int) string {
	if n <= 0 || n >= len(f.Entries) {
		return f.Render()
	}
	lines := make([]string, 0, n)
	for _, e := range f.Entries[len(f.Entries)-n:] {
		lines = append(lines, renderEntry(e))
	}
	return strings.Join(lines, "\n")
}

func renderEntry(e ActivityEntry) string {
	icon, style := entryStyle(e.Type)
	timestamp := MutedStyle.Render(e.Timestamp.Format("15:04:05"))

	title := e.Title
	if e.Service != "" {
		title = e.Service + ": " + title
	}

	var suffix string
	switch {
	case e.Err != "":
		suffix = " " + ErrorStyle.UnsetBold().Render("- "+e.Err)
	case e.Latency > 0:
		suffix = " " + MutedStyle.Render(fmt.Sprintf("(%.1fs)", e.Latency.Seconds()))
	case e.Detail != "":
		suffix = " " + MutedStyle.Render("("+e.Detail+")")
	}

	return fmt.Sprintf("%s %s %s%s", timestamp, style.Render(icon), style.Render(title), suffix)
}

func entryStyle(t ActivityType) (string, lipgloss.Style) {
	switch t {
	case ActivityRequest:
		return "[>]", lipgloss.NewStyle().Foreground(ColorSecondary)
	case ActivityResponse:
		return "[<]", lipgloss.NewStyle().Foreground(ColorSuccess)
	case ActivityError:
		return "[!]", lipgloss.NewStyle().Foreground(ColorError)
	default:
		return "[-]", lipgloss.NewStyle().Foreground(ColorPrimary)
	}
}

// RenderFeedBox renders the feed in a styled box under a title
func RenderFeedBox(feed *ActivityFeed, title string, width int) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(width).
		Padding(0, 1)

	return TitleStyle.Render(title) + "\n" + boxStyle.Render(feed.Tail(feed.Height))
}
