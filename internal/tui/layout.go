package tui

import (
	"strings"

	"github.com/interpretive-systems/poslookup/internal/tui/ansi"
)

const (
	minPaneWidth = 20
	// bodyTop is the screen row of the first body line, below the top bar
	// and its rule.
	bodyTop = 2
)

// Layout manages screen layout calculations.
type Layout struct {
	width     int
	height    int
	leftWidth int
}

// NewLayout creates a new layout manager.
func NewLayout() *Layout {
	return &Layout{}
}

// SetSize updates the layout dimensions.
func (l *Layout) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// Width returns the total width.
func (l *Layout) Width() int {
	return l.width
}

// Height returns the total height.
func (l *Layout) Height() int {
	return l.height
}

// LeftWidth returns the search pane width. Until adjusted it takes a bit
// under half the screen.
func (l *Layout) LeftWidth() int {
	w := l.leftWidth
	if w == 0 {
		w = l.width * 45 / 100
	}
	return max(w, minPaneWidth)
}

// RightWidth returns the detail pane width.
func (l *Layout) RightWidth() int {
	return max(l.width-l.LeftWidth()-1, 1)
}

// ContentHeight returns the rows available to the panes.
func (l *Layout) ContentHeight(overlayHeight int) int {
	// top bar + top rule + bottom rule + bottom bar + overlays
	return max(l.height-4-overlayHeight, 1)
}

// AdjustLeftWidth moves the divider by delta columns.
func (l *Layout) AdjustLeftWidth(delta int) {
	maxLeft := max(l.width-minPaneWidth, minPaneWidth)
	l.leftWidth = min(max(l.LeftWidth()+delta, minPaneWidth), maxLeft)
}

// BodyRow converts a screen row to a body line, or -1 outside the body.
func (l *Layout) BodyRow(y, overlayHeight int) int {
	row := y - bodyTop
	if row < 0 || row >= l.ContentHeight(overlayHeight) {
		return -1
	}
	return row
}

// RenderFrame renders the top bar, both panes, an optional overlay and the
// bottom bar.
func (l *Layout) RenderFrame(
	topLeft, topRight string,
	leftLines, rightLines []string,
	overlayLines []string,
	bottomBar string,
	theme Theme,
) string {
	var b strings.Builder

	b.WriteString(ansi.SplitRight(topLeft, topRight, l.width))
	b.WriteByte('\n')
	b.WriteString(theme.DividerText(strings.Repeat("─", l.width)))
	b.WriteByte('\n')

	leftW := l.LeftWidth()
	rightW := l.RightWidth()
	sep := theme.DividerText("│")
	rows := l.ContentHeight(len(overlayLines))
	for i := range rows {
		var left, right string
		if i < len(leftLines) {
			left = leftLines[i]
		}
		if i < len(rightLines) {
			right = rightLines[i]
		}
		b.WriteString(ansi.PadExact(left, leftW))
		b.WriteString(sep)
		b.WriteString(ansi.PadExact(right, rightW))
		if i < rows-1 {
			b.WriteByte('\n')
		}
	}

	for _, line := range overlayLines {
		b.WriteByte('\n')
		b.WriteString(ansi.PadExact(line, l.width))
	}

	b.WriteByte('\n')
	b.WriteString(theme.DividerText(strings.Repeat("─", l.width)))
	b.WriteByte('\n')
	b.WriteString(bottomBar)

	return b.String()
}
