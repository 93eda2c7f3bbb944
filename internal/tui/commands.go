package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/interpretive-systems/poslookup/internal/search"
)

// LoadFunc produces the item collection.
type LoadFunc func(ctx context.Context) ([]search.Item, error)

// loadCatalog runs load off the event loop.
func loadCatalog(ctx context.Context, load LoadFunc) tea.Cmd {
	return func() tea.Msg {
		items, err := load(ctx)
		return catalogMsg{items: items, err: err}
	}
}

// debounceAfter returns the ticket to the model after d.
func debounceAfter(d time.Duration, t search.DebounceTicket) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return debounceMsg{ticket: t}
	})
}

// blurAfter returns the blur ticket to the model after d.
func blurAfter(d time.Duration, t search.BlurTicket) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return blurMsg{ticket: t}
	})
}
