package tui

import (
	"github.com/go-logr/logr"

	"github.com/interpretive-systems/poslookup/internal/search"
	"github.com/interpretive-systems/poslookup/internal/tui/components"
)

// State holds all application state.
type State struct {
	Search *search.Controller[search.Item]

	// UI State
	Width    int
	Height   int
	ShowHelp bool
	Loading  bool
	Total    int
	Selected search.Item

	// Components
	Input     *components.SearchInput
	Results   *components.ResultList[search.Item]
	Detail    *components.Detail
	StatusBar *components.StatusBar

	Theme Theme
	Log   logr.Logger

	highlighter search.Highlighter
	// pressRow is the result row under the last left-button press, -1 if none.
	pressRow int
}

// NewState wires the search controller to the components. onSelect, when
// set, runs after the detail pane shows the picked item.
func NewState(cfg search.Config, items []search.Item, theme Theme, log logr.Logger, onSelect func(search.Item)) *State {
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	s := &State{
		Theme:     theme,
		Log:       log,
		Total:     len(items),
		Detail:    components.NewDetail(),
		StatusBar: components.NewStatusBar(),
		pressRow:  -1,

		highlighter: theme.Highlighter(),
	}
	s.Search = search.NewController(cfg, items, search.Options[search.Item]{
		OnSelect: func(item search.Item) {
			s.Selected = item
			label := search.DisplayLabel(item)
			s.Detail.SetItem(label, item)
			s.StatusBar.SetLastSelection(label)
			s.StatusBar.SetMessage("")
			if onSelect != nil {
				onSelect(item)
			}
		},
		Logger: log,
	})

	s.Input = components.NewSearchInput(s.Search.Config().Placeholder)
	s.Input.SetGlyphStyle(theme.DimStyle())

	s.Results = components.NewResultList[search.Item](s.highlighter)
	s.Results.SetStyles(theme.CursorStyle(), theme.DimStyle())
	s.Results.SetRenderFunc(s.renderRow)

	s.Detail.SetStyles(theme.CursorStyle(), theme.DimStyle())
	s.StatusBar.SetCounts(0, s.Total, "")
	return s
}
