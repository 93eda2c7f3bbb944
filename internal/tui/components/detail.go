package components

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/interpretive-systems/poslookup/internal/search"
	"github.com/interpretive-systems/poslookup/internal/tui/ansi"
)

// Detail shows every field of the selected record in a scrollable pane.
type Detail struct {
	viewport viewport.Model
	item     search.Item
	title    string
	keyStyle lipgloss.Style
	dimStyle lipgloss.Style
}

// NewDetail creates an empty pane.
func NewDetail() *Detail {
	return &Detail{
		viewport: viewport.New(0, 0),
		keyStyle: lipgloss.NewStyle().Bold(true),
		dimStyle: lipgloss.NewStyle().Faint(true),
	}
}

// SetStyles sets the field-name and placeholder styles.
func (d *Detail) SetStyles(key, dim lipgloss.Style) {
	d.keyStyle = key
	d.dimStyle = dim
	d.refresh()
}

// SetSize resizes the pane and rewraps its content.
func (d *Detail) SetSize(width, height int) {
	d.viewport.Width = width
	d.viewport.Height = height
	d.refresh()
}

// SetItem shows item under title.
func (d *Detail) SetItem(title string, item search.Item) {
	d.title = title
	d.item = item
	d.viewport.GotoTop()
	d.refresh()
}

// Clear empties the pane.
func (d *Detail) Clear() {
	d.item = nil
	d.title = ""
	d.refresh()
}

// Item returns the record on display, nil when empty.
func (d *Detail) Item() search.Item {
	return d.item
}

// ScrollDown scrolls by n lines.
func (d *Detail) ScrollDown(n int) {
	d.viewport.ScrollDown(n)
}

// ScrollUp scrolls by n lines.
func (d *Detail) ScrollUp(n int) {
	d.viewport.ScrollUp(n)
}

// Lines returns the visible lines, each exactly the pane width.
func (d *Detail) Lines() []string {
	view := d.viewport.View()
	if view == "" {
		return nil
	}
	lines := strings.Split(view, "\n")
	for i, l := range lines {
		lines[i] = ansi.PadExact(l, d.viewport.Width)
	}
	return lines
}

func (d *Detail) refresh() {
	d.viewport.SetContent(strings.Join(d.content(d.viewport.Width), "\n"))
}

func (d *Detail) content(width int) []string {
	if width <= 0 {
		return nil
	}
	if d.item == nil {
		return []string{d.dimStyle.Render("Nothing selected")}
	}

	keys := make([]string, 0, len(d.item))
	keyW := 0
	for k := range d.item {
		keys = append(keys, k)
		keyW = max(keyW, lipgloss.Width(k))
	}
	sort.Strings(keys)

	lines := []string{d.keyStyle.Render(d.title), ""}
	indent := strings.Repeat(" ", keyW+2)
	for _, k := range keys {
		label := d.keyStyle.Render(k) + strings.Repeat(" ", keyW-lipgloss.Width(k)) + "  "
		wrapped := ansi.WrapLine(FormatValue(k, d.item[k]), max(width-keyW-2, 1))
		for i, w := range wrapped {
			if i == 0 {
				lines = append(lines, label+w)
				continue
			}
			lines = append(lines, indent+w)
		}
	}
	return lines
}
