package components

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/interpretive-systems/poslookup/internal/tui/ansi"
)

// ClearGlyph is drawn at the right edge of a non-empty input.
const ClearGlyph = "×"

// SearchInput is the controlled query field. The caller owns the query
// state; SearchInput only reports edits.
type SearchInput struct {
	input      textinput.Model
	glyphStyle lipgloss.Style
}

// NewSearchInput creates an unfocused input.
func NewSearchInput(placeholder string) *SearchInput {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = placeholder
	ti.Cursor.SetMode(cursor.CursorStatic)
	return &SearchInput{
		input:      ti,
		glyphStyle: lipgloss.NewStyle().Faint(true),
	}
}

// SetGlyphStyle styles the clear affordance.
func (s *SearchInput) SetGlyphStyle(st lipgloss.Style) {
	s.glyphStyle = st
}

// Update feeds msg to the text field and reports whether the text changed.
func (s *SearchInput) Update(msg tea.Msg) (bool, tea.Cmd) {
	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s.input.Value() != before, cmd
}

// Value returns the current text.
func (s *SearchInput) Value() string {
	return s.input.Value()
}

// SetValue replaces the text and moves the cursor to the end.
func (s *SearchInput) SetValue(v string) {
	s.input.SetValue(v)
	s.input.CursorEnd()
}

// Focus gives the input keyboard focus.
func (s *SearchInput) Focus() tea.Cmd {
	return s.input.Focus()
}

// Blur removes keyboard focus.
func (s *SearchInput) Blur() {
	s.input.Blur()
}

// Focused reports whether the input has keyboard focus.
func (s *SearchInput) Focused() bool {
	return s.input.Focused()
}

// View renders the field in exactly width cells, with the clear glyph in
// the last two cells when there is text to clear.
func (s *SearchInput) View(width int) string {
	if width < 4 {
		return ansi.PadExact(s.input.View(), width)
	}
	s.input.Width = max(width-2-lipgloss.Width(s.input.Prompt)-1, 1)
	field := ansi.PadExact(s.input.View(), width-2)
	glyph := "  "
	if s.input.Value() != "" {
		glyph = " " + s.glyphStyle.Render(ClearGlyph)
	}
	return field + glyph
}

// ClearHit reports whether column x of an input drawn width cells wide
// falls on the clear glyph.
func (s *SearchInput) ClearHit(x, width int) bool {
	return s.input.Value() != "" && width >= 4 && x >= width-2 && x < width
}
