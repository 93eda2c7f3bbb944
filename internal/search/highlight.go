package search

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// Segment is a run of text that either matches the query or does not.
type Segment struct {
	Text  string
	Match bool
}

// Segments splits s into alternating non-matching and matching runs using a
// literal, case-insensitive, left-to-right scan for query. Matches do not
// overlap. Concatenating the segment texts always reproduces s byte for byte.
// A blank query yields s as a single non-matching segment.
func Segments(s, query string) []Segment {
	if s == "" {
		return nil
	}
	if strings.TrimSpace(query) == "" {
		return []Segment{{Text: s}}
	}

	q := lowerRunes(query)
	// offsets[i] is the byte offset of rune i; the final entry is len(s).
	offsets := make([]int, 0, len(s)+1)
	lower := make([]rune, 0, len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		offsets = append(offsets, i)
		lower = append(lower, unicode.ToLower(r))
		i += size
	}
	offsets = append(offsets, len(s))

	var out []Segment
	start := 0
	for i := 0; i+len(q) <= len(lower); {
		if !runesEqual(lower[i:i+len(q)], q) {
			i++
			continue
		}
		if i > start {
			out = append(out, Segment{Text: s[offsets[start]:offsets[i]]})
		}
		end := i + len(q)
		out = append(out, Segment{Text: s[offsets[i]:offsets[end]], Match: true})
		i = end
		start = end
	}
	if start < len(lower) {
		out = append(out, Segment{Text: s[offsets[start]:]})
	}
	return out
}

func lowerRunes(s string) []rune {
	rs := []rune(s)
	for i, r := range rs {
		rs[i] = unicode.ToLower(r)
	}
	return rs
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Highlighter renders text with query matches visually distinguished.
type Highlighter struct {
	// Base applies to every segment.
	Base lipgloss.Style
	// Match is layered over Base on matching segments.
	Match lipgloss.Style
}

// NewHighlighter creates a highlighter with black-on-yellow matches.
func NewHighlighter() Highlighter {
	return Highlighter{
		Base:  lipgloss.NewStyle(),
		Match: lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11")),
	}
}

// Render returns s with every occurrence of query highlighted.
func (h Highlighter) Render(s, query string) string {
	segs := Segments(s, query)
	if len(segs) == 0 {
		return ""
	}
	matchStyle := h.Match.Inherit(h.Base)

	var b strings.Builder
	for _, seg := range segs {
		if seg.Match {
			b.WriteString(matchStyle.Render(seg.Text))
			continue
		}
		b.WriteString(h.Base.Render(seg.Text))
	}
	return b.String()
}
