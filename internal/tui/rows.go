package tui

import (
	"github.com/interpretive-systems/poslookup/internal/catalog"
	"github.com/interpretive-systems/poslookup/internal/search"
	"github.com/interpretive-systems/poslookup/internal/tui/ansi"
	"github.com/interpretive-systems/poslookup/internal/tui/components"
)

// renderRow draws the highlighted label with the record kind, and the price
// for products, flush right.
func (s *State) renderRow(item search.Item, query string, width int) string {
	label := s.highlighter.Render(search.DisplayLabel(item), query)

	kind := catalog.KindOf(item)
	right := kind.String()
	switch kind {
	case catalog.KindProduct:
		right = components.FormatValue("price", item["price"])
	case catalog.KindCustomer:
		if phone, ok := item["phone"].(string); ok && phone != search.DisplayLabel(item) {
			right = phone
		}
	}
	if width < minPaneWidth {
		return label
	}
	return ansi.SplitRight(label, s.Theme.DimStyle().Render(right), width)
}
