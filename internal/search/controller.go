package search

import (
	"strings"

	"github.com/go-logr/logr"
)

// State is the result-list display state.
type State int

const (
	// Idle: results hidden, nothing in flight.
	Idle State = iota
	// ResultsShown: the input has (or just had) focus and results may show.
	ResultsShown
	// Committing: a selection is being delivered.
	Committing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case ResultsShown:
		return "results-shown"
	case Committing:
		return "committing"
	default:
		return "unknown"
	}
}

// DebounceTicket identifies one scheduled filter pass. Only the most recently
// issued ticket can commit.
type DebounceTicket uint64

// BlurTicket identifies one scheduled blur-hide.
type BlurTicket uint64

// Options carries the host callbacks of a controller.
type Options[T Record] struct {
	// OnSelect receives the picked item, untransformed.
	OnSelect func(item T)
	// OnChangeText is notified of every raw keystroke.
	OnChangeText func(text string)
	Logger       logr.Logger
}

// Controller owns one search session: raw and committed query, the filtered
// result list and the show/hide/select protocol. It never schedules timers
// itself; drivers deliver tickets back after Config.Debounce or
// Config.BlurGrace has elapsed. A Controller is not safe for concurrent use.
type Controller[T Record] struct {
	cfg   Config
	opts  Options[T]
	log   logr.Logger
	items []T

	raw       string
	committed string
	pending   string
	results   []T
	shown     bool
	state     State

	debounceGen     uint64
	debouncePending bool
	blurGen         uint64
	blurPending     bool
	disposed        bool
}

// NewController starts a session over items.
func NewController[T Record](cfg Config, items []T, opts Options[T]) *Controller[T] {
	log := opts.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return &Controller[T]{
		cfg:   cfg.WithDefaults(),
		opts:  opts,
		log:   log,
		items: items,
	}
}

// Config returns the effective configuration.
func (c *Controller[T]) Config() Config {
	return c.cfg
}

// Reconfigure swaps the configuration and re-filters. Query state is kept.
func (c *Controller[T]) Reconfigure(cfg Config) {
	if c.disposed {
		return
	}
	c.cfg = cfg.WithDefaults()
	c.refilter()
}

// SetItems replaces the candidate collection and re-filters against it.
func (c *Controller[T]) SetItems(items []T) {
	if c.disposed {
		return
	}
	c.items = items
	c.refilter()
}

// ChangeQuery records a keystroke. The raw query updates immediately, any
// pending filter pass is superseded and a new ticket is returned; deliver it
// to Commit after Config().Debounce.
func (c *Controller[T]) ChangeQuery(text string) DebounceTicket {
	if c.disposed {
		return 0
	}
	c.raw = text
	if c.opts.OnChangeText != nil {
		c.opts.OnChangeText(text)
	}
	return c.schedule(text)
}

// Commit applies the pending query if t is still the current ticket and
// reports whether it did.
func (c *Controller[T]) Commit(t DebounceTicket) bool {
	if c.disposed || !c.debouncePending || uint64(t) != c.debounceGen {
		return false
	}
	c.debouncePending = false
	c.committed = c.pending
	c.refilter()
	c.log.V(1).Info("query committed", "query", c.committed, "results", len(c.results))
	return true
}

// Flush commits a pending query immediately.
func (c *Controller[T]) Flush() bool {
	if !c.debouncePending {
		return false
	}
	return c.Commit(DebounceTicket(c.debounceGen))
}

// Pending reports whether a filter pass is waiting for its ticket.
func (c *Controller[T]) Pending() bool {
	return c.debouncePending
}

// Focus shows the result list and cancels a pending blur-hide.
func (c *Controller[T]) Focus() {
	if c.disposed {
		return
	}
	c.shown = true
	c.state = ResultsShown
	c.blurPending = false
}

// Blur starts the grace window; deliver the ticket to ExpireBlur after
// Config().BlurGrace.
func (c *Controller[T]) Blur() BlurTicket {
	if c.disposed {
		return 0
	}
	c.blurGen++
	c.blurPending = true
	return BlurTicket(c.blurGen)
}

// ExpireBlur hides the results if t is current and no selection or refocus
// happened during the grace window.
func (c *Controller[T]) ExpireBlur(t BlurTicket) bool {
	if c.disposed || !c.blurPending || uint64(t) != c.blurGen {
		return false
	}
	c.blurPending = false
	if c.state != ResultsShown {
		return false
	}
	c.shown = false
	c.state = Idle
	return true
}

// Select delivers item to OnSelect, shows its label in the input and hides
// the results without waiting for the grace window. When the label changes
// the raw query a new filter pass is scheduled and its ticket returned.
// Panics from OnSelect are not recovered.
func (c *Controller[T]) Select(item T) (DebounceTicket, bool) {
	if c.disposed {
		return 0, false
	}
	c.state = Committing
	c.blurPending = false
	if c.opts.OnSelect != nil {
		c.opts.OnSelect(item)
	}

	var (
		t         DebounceTicket
		scheduled bool
	)
	if label, ok := SelectionText(item, c.cfg.Keys); ok {
		c.raw = label
		t, scheduled = c.schedule(label), true
	}
	c.shown = false
	c.state = Idle
	c.log.V(1).Info("item selected", "label", c.raw)
	return t, scheduled
}

// Dispose ends the session. Later ticket deliveries are silent no-ops.
func (c *Controller[T]) Dispose() {
	c.disposed = true
	c.debouncePending = false
	c.blurPending = false
}

// Disposed reports whether Dispose was called.
func (c *Controller[T]) Disposed() bool {
	return c.disposed
}

// RawQuery is the text currently in the input.
func (c *Controller[T]) RawQuery() string {
	return c.raw
}

// CommittedQuery is the text the results were computed from.
func (c *Controller[T]) CommittedQuery() string {
	return c.committed
}

// Results returns the visible results. Callers must not modify the slice.
func (c *Controller[T]) Results() []T {
	return c.results
}

// ResultsVisible reports whether the list should be drawn. It is always
// false while the committed query is blank.
func (c *Controller[T]) ResultsVisible() bool {
	return c.shown && strings.TrimSpace(c.committed) != ""
}

// State returns the display state.
func (c *Controller[T]) State() State {
	return c.state
}

func (c *Controller[T]) schedule(text string) DebounceTicket {
	c.debounceGen++
	c.debouncePending = true
	c.pending = text
	return DebounceTicket(c.debounceGen)
}

func (c *Controller[T]) refilter() {
	c.results = Filter(c.items, c.committed, c.cfg.Keys, c.cfg.MaxResults)
}
