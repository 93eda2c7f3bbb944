package search

import (
	"sync"
	"time"
)

// Timer is a cancellable scheduled callback.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks. The default uses time.AfterFunc.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SessionOption configures a Session.
type SessionOption func(*sessionOptions)

type sessionOptions struct {
	clock    Clock
	onUpdate func()
}

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c Clock) SessionOption {
	return func(o *sessionOptions) { o.clock = c }
}

// WithUpdateHook registers fn to run after a timer changes session state.
// It is called without the session lock held.
func WithUpdateHook(fn func()) SessionOption {
	return func(o *sessionOptions) { o.onUpdate = fn }
}

// Snapshot is a copy of a session's observable state.
type Snapshot[T Record] struct {
	RawQuery       string
	CommittedQuery string
	Results        []T
	Visible        bool
	State          State
}

// Session drives a Controller with real timers. It is safe for concurrent
// use; host callbacks run with the session lock held and must not call back
// into the session.
type Session[T Record] struct {
	mu       sync.Mutex
	ctrl     *Controller[T]
	clock    Clock
	onUpdate func()
	debounce Timer
	blur     Timer
	closed   bool
}

// NewSession creates a session over items.
func NewSession[T Record](cfg Config, items []T, opts Options[T], sopts ...SessionOption) *Session[T] {
	o := sessionOptions{clock: realClock{}}
	for _, fn := range sopts {
		fn(&o)
	}
	return &Session[T]{
		ctrl:     NewController(cfg, items, opts),
		clock:    o.clock,
		onUpdate: o.onUpdate,
	}
}

// ChangeQuery records a keystroke and restarts the debounce timer.
func (s *Session[T]) ChangeQuery(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.armDebounce(s.ctrl.ChangeQuery(text))
}

// Flush commits a pending query without waiting for the timer.
func (s *Session[T]) Flush() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	stop(s.debounce)
	s.debounce = nil
	return s.ctrl.Flush()
}

// Focus shows the results.
func (s *Session[T]) Focus() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	stop(s.blur)
	s.blur = nil
	s.ctrl.Focus()
}

// Blur hides the results once the grace window elapses.
func (s *Session[T]) Blur() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	t := s.ctrl.Blur()
	stop(s.blur)
	s.blur = s.clock.AfterFunc(s.ctrl.Config().BlurGrace, func() {
		s.fire(func() bool { return s.ctrl.ExpireBlur(t) })
	})
}

// Select picks item.
func (s *Session[T]) Select(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	stop(s.blur)
	s.blur = nil
	if t, ok := s.ctrl.Select(item); ok {
		s.armDebounce(t)
	}
}

// SetItems replaces the candidate collection.
func (s *Session[T]) SetItems(items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.ctrl.SetItems(items)
}

// Snapshot returns the current state.
func (s *Session[T]) Snapshot() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot[T]{
		RawQuery:       s.ctrl.RawQuery(),
		CommittedQuery: s.ctrl.CommittedQuery(),
		Results:        append([]T(nil), s.ctrl.Results()...),
		Visible:        s.ctrl.ResultsVisible(),
		State:          s.ctrl.State(),
	}
}

// Close cancels outstanding timers and disposes the controller. Timers that
// already fired become no-ops.
func (s *Session[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	stop(s.debounce)
	stop(s.blur)
	s.debounce, s.blur = nil, nil
	s.ctrl.Dispose()
}

func (s *Session[T]) armDebounce(t DebounceTicket) {
	stop(s.debounce)
	s.debounce = s.clock.AfterFunc(s.ctrl.Config().Debounce, func() {
		s.fire(func() bool { return s.ctrl.Commit(t) })
	})
}

func (s *Session[T]) fire(apply func() bool) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	changed := apply()
	hook := s.onUpdate
	s.mu.Unlock()

	if changed && hook != nil {
		hook()
	}
}

func stop(t Timer) {
	if t != nil {
		t.Stop()
	}
}
