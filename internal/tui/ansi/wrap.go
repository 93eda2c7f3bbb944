package ansi

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// WrapLine wraps a single line to width cells on word boundaries, breaking
// long words, and keeps escape codes intact.
func WrapLine(s string, width int) []string {
	if width <= 0 {
		return []string{""}
	}
	return strings.Split(ansi.Wrap(s, width, ""), "\n")
}

// WrapLines wraps every line.
func WrapLines(lines []string, width int) []string {
	result := make([]string, 0, len(lines)*2)
	for _, line := range lines {
		result = append(result, WrapLine(line, width)...)
	}
	return result
}
