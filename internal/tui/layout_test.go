package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interpretive-systems/poslookup/internal/prefs"
)

func TestLayout_Widths(t *testing.T) {
	l := NewLayout()
	l.SetSize(100, 30)

	assert.Equal(t, 45, l.LeftWidth())
	assert.Equal(t, 54, l.RightWidth())

	l.AdjustLeftWidth(-100)
	assert.Equal(t, minPaneWidth, l.LeftWidth())
	l.AdjustLeftWidth(1000)
	assert.Equal(t, 80, l.LeftWidth())

	l.SetSize(30, 10)
	assert.Equal(t, 1, l.RightWidth())
}

func TestLayout_BodyRow(t *testing.T) {
	l := NewLayout()
	l.SetSize(80, 10)

	assert.Equal(t, -1, l.BodyRow(1, 0))
	assert.Equal(t, 0, l.BodyRow(2, 0))
	assert.Equal(t, 5, l.BodyRow(7, 0))
	assert.Equal(t, -1, l.BodyRow(8, 0))
	assert.Equal(t, -1, l.BodyRow(6, 2))
}

func TestLayout_RenderFrame(t *testing.T) {
	l := NewLayout()
	l.SetSize(40, 8)

	out := l.RenderFrame("left", "right", []string{"a"}, []string{"b", "c"}, []string{"help"}, "bottom", DefaultTheme())
	lines := strings.Split(ansi.Strip(out), "\n")

	require.Len(t, lines, 8)
	for _, line := range lines[:len(lines)-1] {
		assert.Equal(t, 40, lipgloss.Width(line))
	}
	assert.True(t, strings.HasPrefix(lines[0], "left"))
	assert.True(t, strings.HasSuffix(lines[0], "right"))
	assert.Equal(t, "a", strings.TrimSpace(strings.Split(lines[2], "│")[0]))
	assert.Equal(t, "c", strings.TrimSpace(strings.Split(lines[3], "│")[1]))
	assert.Equal(t, "help", strings.TrimSpace(lines[5]))
	assert.Equal(t, "bottom", lines[7])
}

func TestThemeFrom(t *testing.T) {
	th := ThemeFrom(prefs.Theme{HighlightBG: "214"})

	assert.Equal(t, "214", th.HighlightBG)
	assert.Equal(t, DefaultTheme().HighlightFG, th.HighlightFG)
	assert.Equal(t, "x", ansi.Strip(th.DividerText("x")))
	assert.Equal(t, "Suit", ansi.Strip(th.Highlighter().Render("Suit", "u")))
}
