package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/interpretive-systems/poslookup/internal/search"
	"github.com/interpretive-systems/poslookup/internal/tui/ansi"
)

// NoResults is shown when a non-empty query matched nothing.
const NoResults = "No results"

// RenderFunc draws one result row's content in at most width cells. query
// is the normalized committed query for highlighting.
type RenderFunc[T search.Record] func(item T, query string, width int) string

// ResultList is the selectable list under the search input.
type ResultList[T search.Record] struct {
	items  []T
	query  string
	cursor int
	offset int
	height int

	render      RenderFunc[T]
	highlighter search.Highlighter
	cursorStyle lipgloss.Style
	dimStyle    lipgloss.Style
}

// NewResultList creates an empty list that labels rows with
// search.DisplayLabel highlighted by h.
func NewResultList[T search.Record](h search.Highlighter) *ResultList[T] {
	return &ResultList[T]{
		highlighter: h,
		cursorStyle: lipgloss.NewStyle().Bold(true),
		dimStyle:    lipgloss.NewStyle().Faint(true),
	}
}

// SetRenderFunc overrides the default row label.
func (r *ResultList[T]) SetRenderFunc(fn RenderFunc[T]) {
	r.render = fn
}

// SetStyles sets the cursor-row and placeholder styles.
func (r *ResultList[T]) SetStyles(cursor, dim lipgloss.Style) {
	r.cursorStyle = cursor
	r.dimStyle = dim
}

// SetResults replaces the rows and resets the cursor to the top.
func (r *ResultList[T]) SetResults(items []T, query string) {
	r.items = items
	r.query = query
	r.cursor = 0
	r.offset = 0
}

// Items returns the rows.
func (r *ResultList[T]) Items() []T {
	return r.items
}

// Len is the number of rows.
func (r *ResultList[T]) Len() int {
	return len(r.items)
}

// Cursor returns the cursor row index.
func (r *ResultList[T]) Cursor() int {
	return r.cursor
}

// Current returns the row under the cursor.
func (r *ResultList[T]) Current() (T, bool) {
	return r.At(r.cursor)
}

// At returns row i.
func (r *ResultList[T]) At(i int) (T, bool) {
	if i < 0 || i >= len(r.items) {
		var zero T
		return zero, false
	}
	return r.items[i], true
}

// Keys returns the stable key of every row.
func (r *ResultList[T]) Keys() []string {
	keys := make([]string, len(r.items))
	for i, it := range r.items {
		keys[i] = search.RowKey(it, i)
	}
	return keys
}

// SetHeight sets the number of visible rows.
func (r *ResultList[T]) SetHeight(h int) {
	r.height = h
	r.ensureVisible()
}

// Move shifts the cursor by delta, clamped, and scrolls to keep it in view.
func (r *ResultList[T]) Move(delta int) bool {
	if len(r.items) == 0 {
		return false
	}
	next := min(max(r.cursor+delta, 0), len(r.items)-1)
	changed := next != r.cursor
	r.cursor = next
	r.ensureVisible()
	return changed
}

func (r *ResultList[T]) ensureVisible() {
	if r.height <= 0 {
		return
	}
	if r.cursor < r.offset {
		r.offset = r.cursor
	}
	if r.cursor >= r.offset+r.height {
		r.offset = r.cursor - r.height + 1
	}
}

// RowAt maps a line of the last rendered view to a row index.
func (r *ResultList[T]) RowAt(line int) (int, bool) {
	if line < 0 || (r.height > 0 && line >= r.height) {
		return 0, false
	}
	i := r.offset + line
	if i >= len(r.items) {
		return 0, false
	}
	return i, true
}

// Lines renders at most height rows, each exactly width cells wide.
func (r *ResultList[T]) Lines(width, height int) []string {
	r.height = height
	r.ensureVisible()
	if height <= 0 {
		return nil
	}
	if len(r.items) == 0 {
		return []string{ansi.PadExact(r.dimStyle.Render("  "+NoResults), width)}
	}

	end := min(r.offset+height, len(r.items))
	lines := make([]string, 0, end-r.offset)
	for i := r.offset; i < end; i++ {
		prefix := "  "
		if i == r.cursor {
			prefix = r.cursorStyle.Render("> ")
		}
		body := r.renderRow(r.items[i], max(width-2, 0))
		lines = append(lines, ansi.PadExact(prefix+body, width))
	}
	return lines
}

func (r *ResultList[T]) renderRow(item T, width int) string {
	if r.render != nil {
		return ansi.TruncateToWidth(r.render(item, r.query, width), width)
	}
	return ansi.TruncateToWidth(r.highlighter.Render(search.DisplayLabel(item), r.query), width)
}
