package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/go-logr/logr"

	"github.com/interpretive-systems/poslookup/internal/search"
)

// Options configures the lookup screen.
type Options struct {
	Config search.Config
	Theme  Theme
	// Items is the initial collection; Load, when set, replaces it once it
	// returns.
	Items    []search.Item
	Load     LoadFunc
	Logger   logr.Logger
	OnSelect func(search.Item)
}

// Program is the Bubble Tea model of the lookup screen.
type Program struct {
	ctx        context.Context
	load       LoadFunc
	state      *State
	layout     *Layout
	keyHandler *KeyHandler
}

// New builds the model without starting it.
func New(ctx context.Context, opts Options) Program {
	st := NewState(opts.Config, opts.Items, opts.Theme, opts.Logger, opts.OnSelect)
	st.Loading = opts.Load != nil
	return Program{
		ctx:        ctx,
		load:       opts.Load,
		state:      st,
		layout:     NewLayout(),
		keyHandler: NewKeyHandler(),
	}
}

// Run instantiates and runs the Bubble Tea program.
func Run(ctx context.Context, opts Options) error {
	m := New(ctx, opts)
	defer m.state.Search.Dispose()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run lookup: %w", err)
	}
	return nil
}

// State exposes the model state, mainly for the caller after Run.
func (p Program) State() *State {
	return p.state
}

func (p Program) Init() tea.Cmd {
	cmds := []tea.Cmd{p.focusInput()}
	if p.load != nil {
		p.state.StatusBar.SetMessage("loading catalog…")
		cmds = append(cmds, loadCatalog(p.ctx, p.load))
	}
	return tea.Batch(cmds...)
}

func (p Program) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	s := p.state
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.Width, s.Height = msg.Width, msg.Height
		p.layout.SetSize(msg.Width, msg.Height)
		p.recalc()
		return p, nil

	case tea.KeyMsg:
		return p, p.handleKey(msg)

	case tea.MouseMsg:
		return p, p.handleMouse(msg)

	case debounceMsg:
		if s.Search.Commit(msg.ticket) {
			p.syncResults()
		}
		return p, nil

	case blurMsg:
		s.Search.ExpireBlur(msg.ticket)
		return p, nil

	case catalogMsg:
		s.Loading = false
		if msg.err != nil {
			s.Log.Error(msg.err, "catalog load failed")
			s.StatusBar.SetMessage("catalog: " + msg.err.Error())
			return p, nil
		}
		s.Search.SetItems(msg.items)
		s.Total = len(msg.items)
		s.StatusBar.SetMessage("loaded " + humanize.Comma(int64(s.Total)) + " items")
		p.syncResults()
		return p, nil
	}
	return p, nil
}

func (p Program) handleKey(msg tea.KeyMsg) tea.Cmd {
	s := p.state
	if s.ShowHelp {
		switch msg.String() {
		case "ctrl+c":
			return p.quit()
		case "f1", "?", "esc", "q":
			s.ShowHelp = false
			p.recalc()
		}
		return nil
	}

	action, count := p.keyHandler.Handle(msg, s.Input.Focused())
	s.StatusBar.SetKeyBuffer(p.keyHandler.KeyBuffer())

	switch action {
	case ActionQuit:
		return p.quit()
	case ActionToggleHelp:
		s.ShowHelp = true
		p.recalc()
	case ActionInput:
		changed, cmd := s.Input.Update(msg)
		if !changed {
			return cmd
		}
		return tea.Batch(cmd, p.changeQuery(s.Input.Value()))
	case ActionFocusInput:
		return p.focusInput()
	case ActionBlurInput:
		return p.blurInput()
	case ActionClear:
		return p.clearQuery()
	case ActionCursorUp:
		s.Results.Move(-count)
	case ActionCursorDown:
		s.Results.Move(count)
	case ActionSelect:
		return p.selectCurrent()
	case ActionScrollDown:
		s.Detail.ScrollDown(count)
	case ActionScrollUp:
		s.Detail.ScrollUp(count)
	case ActionAdjustLeftNarrower:
		p.layout.AdjustLeftWidth(-2 * count)
		p.recalc()
	case ActionAdjustLeftWider:
		p.layout.AdjustLeftWidth(2 * count)
		p.recalc()
	}
	return nil
}

// handleMouse implements tap-to-select. A press on a result row blurs the
// input, which starts the grace window; the matching release on the same
// row selects it before the results hide.
func (p Program) handleMouse(msg tea.MouseMsg) tea.Cmd {
	s := p.state
	leftW := p.layout.LeftWidth()
	inLeft := msg.X < leftW
	row := p.layout.BodyRow(msg.Y, len(p.overlayLines()))

	switch msg.Button {
	case tea.MouseButtonWheelDown:
		if inLeft {
			s.Results.Move(1)
		} else {
			s.Detail.ScrollDown(3)
		}
		return nil
	case tea.MouseButtonWheelUp:
		if inLeft {
			s.Results.Move(-1)
		} else {
			s.Detail.ScrollUp(3)
		}
		return nil
	case tea.MouseButtonLeft:
	default:
		return nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		s.pressRow = -1
		if inLeft && row == 0 {
			if s.Input.ClearHit(msg.X, leftW) {
				return p.clearQuery()
			}
			if !s.Input.Focused() {
				return p.focusInput()
			}
			return nil
		}
		if inLeft && row > 0 && s.Search.ResultsVisible() {
			if i, ok := s.Results.RowAt(row - 1); ok {
				s.pressRow = i
			}
		}
		if s.Input.Focused() {
			return p.blurInput()
		}
	case tea.MouseActionRelease:
		pressed := s.pressRow
		s.pressRow = -1
		if pressed < 0 || !inLeft || row < 1 || !s.Search.ResultsVisible() {
			return nil
		}
		if i, ok := s.Results.RowAt(row - 1); ok && i == pressed {
			if item, ok := s.Results.At(i); ok {
				return p.selectItem(item)
			}
		}
	}
	return nil
}

func (p Program) changeQuery(text string) tea.Cmd {
	ctrl := p.state.Search
	t := ctrl.ChangeQuery(text)
	return debounceAfter(ctrl.Config().Debounce, t)
}

func (p Program) focusInput() tea.Cmd {
	s := p.state
	cmd := s.Input.Focus()
	s.Search.Focus()
	return cmd
}

func (p Program) blurInput() tea.Cmd {
	s := p.state
	s.Input.Blur()
	t := s.Search.Blur()
	return blurAfter(s.Search.Config().BlurGrace, t)
}

func (p Program) clearQuery() tea.Cmd {
	s := p.state
	s.Input.SetValue("")
	return tea.Batch(p.focusInput(), p.changeQuery(""))
}

// selectCurrent picks the cursor row. A query still inside its quiet period
// is committed first so Enter always acts on what was typed.
func (p Program) selectCurrent() tea.Cmd {
	s := p.state
	if s.Search.Pending() && s.Search.Flush() {
		p.syncResults()
	}
	if !s.Search.ResultsVisible() {
		return nil
	}
	item, ok := s.Results.Current()
	if !ok {
		return nil
	}
	return p.selectItem(item)
}

func (p Program) selectItem(item search.Item) tea.Cmd {
	s := p.state
	s.Log.Info("item selected", "key", search.RowKey(item, s.Results.Cursor()))
	t, scheduled := s.Search.Select(item)
	s.Input.SetValue(s.Search.RawQuery())
	s.Input.Blur()
	if !scheduled {
		return nil
	}
	return debounceAfter(s.Search.Config().Debounce, t)
}

func (p Program) quit() tea.Cmd {
	p.state.Search.Dispose()
	return tea.Quit
}

// syncResults copies the controller's results into the list.
func (p Program) syncResults() {
	s := p.state
	committed := s.Search.CommittedQuery()
	s.Results.SetResults(s.Search.Results(), search.Normalize(committed))
	s.StatusBar.SetCounts(len(s.Search.Results()), s.Total, strings.TrimSpace(committed))
}

// recalc resizes the panes after a size or overlay change.
func (p Program) recalc() {
	s := p.state
	h := p.layout.ContentHeight(len(p.overlayLines()))
	s.Results.SetHeight(max(h-1, 0))
	s.Detail.SetSize(p.layout.RightWidth(), h)
}

func (p Program) View() string {
	s := p.state
	if s.Width == 0 || s.Height == 0 {
		return "Loading..."
	}

	overlay := p.overlayLines()
	h := p.layout.ContentHeight(len(overlay))
	leftW := p.layout.LeftWidth()

	left := []string{s.Input.View(leftW)}
	if s.Search.ResultsVisible() {
		left = append(left, s.Results.Lines(leftW, max(h-1, 0))...)
	}

	return p.layout.RenderFrame(
		p.topLeft(), p.topRight(),
		left, s.Detail.Lines(),
		overlay,
		s.StatusBar.Render(s.Width),
		s.Theme,
	)
}

func (p Program) topLeft() string {
	s := p.state
	if s.Loading {
		return "Lookup | loading…"
	}
	return "Lookup | " + humanize.Comma(int64(s.Total)) + " items"
}

func (p Program) topRight() string {
	if p.state.Input.Focused() {
		return "typing"
	}
	return "browse"
}

func (p Program) overlayLines() []string {
	if !p.state.ShowHelp {
		return nil
	}
	dim := p.state.Theme.DimStyle()
	lines := []string{
		"typing   ↑/↓ move  enter select  esc/tab browse  ctrl+l clear",
		"browse   / or i search  j/k scroll detail  </> resize  q quit",
		"mouse    click a result to select it, × clears the query",
	}
	for i, l := range lines {
		lines[i] = dim.Render(l)
	}
	return lines
}
