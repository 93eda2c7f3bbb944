package tui

import "github.com/interpretive-systems/poslookup/internal/search"

// debounceMsg delivers a filter ticket once the quiet period has passed.
type debounceMsg struct {
	ticket search.DebounceTicket
}

// blurMsg delivers a blur ticket once the grace window has passed.
type blurMsg struct {
	ticket search.BlurTicket
}

// catalogMsg contains the loaded item collection.
type catalogMsg struct {
	items []search.Item
	err   error
}
