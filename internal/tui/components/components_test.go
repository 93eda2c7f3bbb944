package components

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interpretive-systems/poslookup/internal/search"
)

func typeText(s *SearchInput, text string) bool {
	changed, _ := s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return changed
}

func TestSearchInput_TypingAndClear(t *testing.T) {
	in := NewSearchInput("Search...")
	assert.False(t, typeText(in, "v"), "unfocused input ignores keys")

	in.Focus()
	require.True(t, in.Focused())
	assert.True(t, typeText(in, "vi"))
	assert.Equal(t, "vi", in.Value())

	view := ansi.Strip(in.View(20))
	assert.Equal(t, 20, lipgloss.Width(view))
	assert.True(t, strings.HasSuffix(view, ClearGlyph))
	assert.True(t, in.ClearHit(19, 20))
	assert.False(t, in.ClearHit(5, 20))

	changed, _ := in.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.False(t, changed, "cursor moves are not edits")

	in.SetValue("")
	assert.False(t, in.ClearHit(19, 20))
	assert.Contains(t, ansi.Strip(in.View(20)), "Search...")

	in.Blur()
	assert.False(t, in.Focused())
}

func newList(items []search.Item, query string) *ResultList[search.Item] {
	l := NewResultList[search.Item](search.NewHighlighter())
	l.SetResults(items, query)
	return l
}

func TestResultList_RendersRows(t *testing.T) {
	l := newList([]search.Item{
		{"id": "p1", "name": "Visa Card"},
		{"_id": "x", "title": "Visa Debit"},
		{"phone": "555-0100"},
	}, "visa")

	lines := l.Lines(30, 5)

	require.Len(t, lines, 3)
	assert.Equal(t, "> Visa Card", strings.TrimRight(ansi.Strip(lines[0]), " "))
	assert.Equal(t, "  Visa Debit", strings.TrimRight(ansi.Strip(lines[1]), " "))
	assert.Equal(t, "  555-0100", strings.TrimRight(ansi.Strip(lines[2]), " "))
	for _, line := range lines {
		assert.Equal(t, 30, lipgloss.Width(line))
	}
	assert.Equal(t, []string{"p1", "x", "row-2"}, l.Keys())
}

func TestResultList_NoResults(t *testing.T) {
	l := newList(nil, "zzz")

	lines := l.Lines(20, 5)

	require.Len(t, lines, 1)
	assert.Contains(t, ansi.Strip(lines[0]), NoResults)
	_, ok := l.Current()
	assert.False(t, ok)
}

func TestResultList_CursorScrolling(t *testing.T) {
	items := make([]search.Item, 10)
	for i := range items {
		items[i] = search.Item{"name": string(rune('a' + i))}
	}
	l := newList(items, "")
	l.Lines(10, 3)

	assert.True(t, l.Move(4))
	lines := l.Lines(10, 3)
	assert.Equal(t, "> e", strings.TrimRight(ansi.Strip(lines[2]), " "))

	i, ok := l.RowAt(0)
	require.True(t, ok)
	assert.Equal(t, 2, i)
	_, ok = l.RowAt(3)
	assert.False(t, ok)

	assert.True(t, l.Move(-100))
	assert.Equal(t, 0, l.Cursor())
	assert.False(t, l.Move(-1))
	l.Move(100)
	assert.Equal(t, 9, l.Cursor())
}

func TestResultList_RenderFunc(t *testing.T) {
	l := newList([]search.Item{{"name": "Suit", "price": 12.5}}, "suit")
	l.SetRenderFunc(func(item search.Item, query string, width int) string {
		return item["name"].(string) + " / " + query
	})

	lines := l.Lines(20, 2)

	assert.Equal(t, "> Suit / suit", strings.TrimRight(ansi.Strip(lines[0]), " "))
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		key  string
		v    any
		want string
	}{
		{"price", 1234.5, "$1,234.50"},
		{"total", 12, "$12.00"},
		{"Price", -3.25, "-$3.25"},
		{"visits", 12345, "12,345"},
		{"visits", int64(7), "7"},
		{"ratio", 0.25, "0.25"},
		{"qty", 3.0, "3"},
		{"name", "Suit", "Suit"},
		{"rush", true, "yes"},
		{"note", nil, "-"},
		{"tags", []any{"a", "b"}, `["a","b"]`},
		{"price", "call", "call"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatValue(tt.key, tt.v), "%s=%v", tt.key, tt.v)
	}

	assert.Equal(t, "3 hours ago", FormatValue("last_visit", time.Now().Add(-3*time.Hour)))
}

func TestDetail(t *testing.T) {
	d := NewDetail()
	d.SetSize(30, 6)

	assert.Contains(t, ansi.Strip(strings.Join(d.Lines(), "\n")), "Nothing selected")

	d.SetItem("Dry Clean Suit", search.Item{"sku": "7788", "price": 12.5, "name": "Dry Clean Suit"})
	plain := ansi.Strip(strings.Join(d.Lines(), "\n"))

	assert.Contains(t, plain, "Dry Clean Suit")
	assert.Contains(t, plain, "price  $12.50")
	assert.Less(t, strings.Index(plain, "name"), strings.Index(plain, "price"))
	assert.Less(t, strings.Index(plain, "price"), strings.Index(plain, "sku"))
	for _, l := range d.Lines() {
		assert.Equal(t, 30, lipgloss.Width(l))
	}

	d.Clear()
	assert.Nil(t, d.Item())
}

func TestStatusBar(t *testing.T) {
	s := NewStatusBar()
	s.SetCounts(2, 40, "visa")
	s.SetLastSelection("Visa Card")

	out := ansi.Strip(s.Render(60))

	assert.Equal(t, 60, lipgloss.Width(out))
	assert.True(t, strings.HasPrefix(out, "f1: help  |  picked: Visa Card"))
	assert.True(t, strings.HasSuffix(out, `2 of 40  "visa"`))

	s.SetKeyBuffer("3")
	s.SetMessage("load failed")
	out = ansi.Strip(s.Render(60))
	assert.True(t, strings.HasPrefix(out, "3  |  load failed"))
}
