package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/interpretive-systems/poslookup/internal/tui/ansi"
)

// StatusBar manages the bottom status bar.
type StatusBar struct {
	message   string
	lastPick  string
	keyBuffer string
	shown     int
	total     int
	query     string
	style     lipgloss.Style
}

// NewStatusBar creates a new status bar.
func NewStatusBar() *StatusBar {
	return &StatusBar{style: lipgloss.NewStyle().Faint(true)}
}

// SetMessage shows a transient message such as a load error.
func (s *StatusBar) SetMessage(msg string) {
	s.message = msg
}

// SetLastSelection records the label of the last picked item.
func (s *StatusBar) SetLastSelection(label string) {
	s.lastPick = label
}

// SetKeyBuffer updates the pending count display.
func (s *StatusBar) SetKeyBuffer(buf string) {
	s.keyBuffer = buf
}

// SetCounts updates the result summary.
func (s *StatusBar) SetCounts(shown, total int, query string) {
	s.shown = shown
	s.total = total
	s.query = query
}

// Render renders the status bar in exactly width cells.
func (s *StatusBar) Render(width int) string {
	left := "f1: help"
	if s.keyBuffer != "" {
		left = s.keyBuffer
	}
	switch {
	case s.message != "":
		left += "  |  " + s.message
	case s.lastPick != "":
		left += "  |  picked: " + s.lastPick
	}

	right := fmt.Sprintf("%d of %d", s.shown, s.total)
	if s.query != "" {
		right += fmt.Sprintf("  %q", s.query)
	}
	return ansi.SplitRight(s.style.Render(left), s.style.Render(right), width)
}
