// Package session tracks one interactive session: the current query and
// result, the uploaded document and the deep dive conversation.
package session

import (
	"errors"
	"slices"

	"github.com/rotisserie/eris"

	"prism/ai"
	"prism/apierr"
	"prism/perspective"
)

// ErrNotInDeepDive is returned when a deep dive turn is recorded in analysis mode
var ErrNotInDeepDive = errors.New("session is not in deep dive mode")

// Mode is either Analysis or DeepDive
type Mode interface {
	Name() string
	isMode()
}

// Analysis is the default mode: showing the multi-perspective result
type Analysis struct{}

func (Analysis) Name() string { return "analysis" }
func (Analysis) isMode()      {}

// DeepDive is a follow-up conversation focused on one perspective
type DeepDive struct {
	Perspective perspective.Perspective

	// History holds the deep dive turns, oldest first
	History []ai.Message

	// Result is the latest assistant answer, empty until the first turn
	Result string
}

func (DeepDive) Name() string { return "deep_dive" }
func (DeepDive) isMode()      {}

// Status summarizes what the session is doing
type Status int

const (
	StatusIdle Status = iota
	StatusDocumentReady
	StatusAnalysisDone
	StatusDeepDive
)

func (s Status) String() string {
	switch s {
	case StatusDocumentReady:
		return "document ready"
	case StatusAnalysisDone:
		return "analysis done"
	case StatusDeepDive:
		return "deep dive"
	default:
		return "idle"
	}
}

// Session is the state of one interactive session. It is not safe for
// concurrent use.
type Session struct {
	// Input is the draft question, pre-filled when an example is chosen
	Input string

	Query            string
	LastResult       string
	ExtractedText    string
	UploadedFileName string

	mode Mode
}

// New returns an empty session in analysis mode
func New() *Session {
	return &Session{mode: Analysis{}}
}

// Mode returns the current mode. A returned DeepDive owns its History slice.
func (s *Session) Mode() Mode {
	if d, ok := s.mode.(DeepDive); ok {
		d.History = slices.Clone(d.History)
		return d
	}
	return Analysis{}
}

// DeepDive returns the deep dive state and whether the session is in one
func (s *Session) DeepDive() (DeepDive, bool) {
	d, ok := s.Mode().(DeepDive)
	return d, ok
}

// Perspective returns the selected perspective in deep dive mode
func (s *Session) Perspective() (perspective.Perspective, bool) {
	d, ok := s.mode.(DeepDive)
	if !ok {
		return perspective.Perspective{}, false
	}
	return d.Perspective, true
}

// Select enters a deep dive on key, starting a fresh conversation. Unknown
// keys leave the session unchanged.
func (s *Session) Select(key string) error {
	p, ok := perspective.Lookup(key)
	if !ok {
		return eris.Wrapf(apierr.ErrUnknownPerspective, "session: select %q", key)
	}
	s.mode = DeepDive{Perspective: p}
	return nil
}

// ResetToAnalysis leaves any deep dive, dropping its conversation
func (s *Session) ResetToAnalysis() {
	s.mode = Analysis{}
}

// StartNew clears everything and returns to analysis mode
func (s *Session) StartNew() {
	s.LastResult = ""
	s.Query = ""
	s.ExtractedText = ""
	s.UploadedFileName = ""
	s.Input = ""
	s.ResetToAnalysis()
}

// RecordAnalysis stores a completed analysis and returns to analysis mode
func (s *Session) RecordAnalysis(query, result string) {
	s.Query = query
	s.LastResult = result
	s.ResetToAnalysis()
}

// RecordDeepDive appends a deep dive turn. followUp is empty for the opening
// turn, in which case only the answer is recorded.
func (s *Session) RecordDeepDive(followUp, answer string) error {
	d, ok := s.mode.(DeepDive)
	if !ok {
		return ErrNotInDeepDive
	}

	history := slices.Clone(d.History)
	if followUp != "" {
		history = append(history, ai.Message{Role: ai.RoleUser, Content: followUp})
	}
	history = append(history, ai.Message{Role: ai.RoleAssistant, Content: answer})

	d.History = history
	d.Result = answer
	s.mode = d
	return nil
}

// NeedsInitialDeepDive reports whether a deep dive was selected but has no
// answer yet
func (s *Session) NeedsInitialDeepDive() bool {
	d, ok := s.mode.(DeepDive)
	return ok && d.Result == ""
}

// DeepDiveRequest builds the request for the next deep dive turn
func (s *Session) DeepDiveRequest(followUp string) (ai.DeepDiveRequest, error) {
	d, ok := s.mode.(DeepDive)
	if !ok {
		return ai.DeepDiveRequest{}, ErrNotInDeepDive
	}
	return ai.DeepDiveRequest{
		Query:            s.Query,
		Perspective:      d.Perspective.Key,
		PreviousAnalysis: s.LastResult,
		FollowUp:         followUp,
		History:          slices.Clone(d.History),
	}, nil
}

// SetDocument caches text extracted from an uploaded document
func (s *Session) SetDocument(fileName, text string) {
	s.UploadedFileName = fileName
	s.ExtractedText = text
}

// ClearDocument forgets the uploaded document
func (s *Session) ClearDocument() {
	s.UploadedFileName = ""
	s.ExtractedText = ""
}

// SetInput replaces the draft question
func (s *Session) SetInput(text string) {
	s.Input = text
}

// HasDocument reports whether extracted text is available
func (s *Session) HasDocument() bool {
	return s.ExtractedText != ""
}

// TurnCount returns the number of assistant answers in the deep dive
func (s *Session) TurnCount() int {
	d, ok := s.mode.(DeepDive)
	if !ok {
		return 0
	}
	n := 0
	for _, m := range d.History {
		if m.Role == ai.RoleAssistant {
			n++
		}
	}
	return n
}

// Status summarizes the session for display
func (s *Session) Status() Status {
	if _, ok := s.mode.(DeepDive); ok {
		return StatusDeepDive
	}
	switch {
	case s.LastResult != "":
		return StatusAnalysisDone
	case s.ExtractedText != "":
		return StatusDocumentReady
	default:
		return StatusIdle
	}
}
