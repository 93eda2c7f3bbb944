package ansi

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// VisualWidth returns the display width of s in cells, ignoring escape codes.
func VisualWidth(s string) int {
	return ansi.StringWidth(s)
}

// ClipToWidth truncates s to at most w cells without an ellipsis.
func ClipToWidth(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return ansi.Truncate(s, w, "")
}

// PadExact pads or truncates s to exactly w cells, keeping escape codes.
func PadExact(s string, w int) string {
	if w <= 0 {
		return ""
	}
	vw := VisualWidth(s)
	switch {
	case vw == w:
		return s
	case vw < w:
		return s + strings.Repeat(" ", w-vw)
	default:
		return ansi.Truncate(s, w, "…")
	}
}

// TruncateToWidth truncates s to width cells, marking the cut with an ellipsis.
func TruncateToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}

// SplitRight lays out left and right in exactly width cells with right
// flush to the edge. Right wins when space runs out.
func SplitRight(left, right string, width int) string {
	rightW := VisualWidth(right)
	if rightW >= width {
		return TruncateToWidth(right, width)
	}
	avail := width - rightW - 1
	return PadExact(left, avail) + " " + right
}
