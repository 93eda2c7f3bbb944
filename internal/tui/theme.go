package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/interpretive-systems/poslookup/internal/prefs"
	"github.com/interpretive-systems/poslookup/internal/search"
)

// Theme defines customizable colors for rendering.
type Theme struct {
	HighlightFG string
	HighlightBG string
	CursorFG    string
	Divider     string
	Dim         string
}

// DefaultTheme is the built-in palette.
func DefaultTheme() Theme {
	return Theme{
		HighlightFG: "0",
		HighlightBG: "11",
		CursorFG:    "12",
		Divider:     "240",
		Dim:         "245",
	}
}

// ThemeFrom overlays the configured colors on the defaults. Empty fields
// keep the default.
func ThemeFrom(p prefs.Theme) Theme {
	t := DefaultTheme()
	if p.HighlightFG != "" {
		t.HighlightFG = p.HighlightFG
	}
	if p.HighlightBG != "" {
		t.HighlightBG = p.HighlightBG
	}
	if p.CursorFG != "" {
		t.CursorFG = p.CursorFG
	}
	if p.Divider != "" {
		t.Divider = p.Divider
	}
	if p.Dim != "" {
		t.Dim = p.Dim
	}
	return t
}

func (t Theme) DividerText(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Divider)).Render(s)
}

func (t Theme) DimStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Dim))
}

func (t Theme) CursorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.CursorFG))
}

// Highlighter styles query matches in result labels.
func (t Theme) Highlighter() search.Highlighter {
	h := search.NewHighlighter()
	h.Match = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.HighlightFG)).
		Background(lipgloss.Color(t.HighlightBG))
	return h
}
