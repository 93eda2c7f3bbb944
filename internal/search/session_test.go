package search

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTimer struct {
	clock   *fakeClock
	at      time.Duration
	seq     int
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	was := !t.stopped && !t.fired
	t.stopped = true
	return was
}

// fakeClock fires callbacks synchronously from Advance, in deadline order.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &fakeTimer{clock: c, at: c.now + d, seq: c.seq, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()

	for {
		c.mu.Lock()
		var due []*fakeTimer
		for _, t := range c.timers {
			if !t.stopped && !t.fired && t.at <= target {
				due = append(due, t)
			}
		}
		if len(due) == 0 {
			c.now = target
			c.mu.Unlock()
			return
		}
		sort.Slice(due, func(i, j int) bool {
			if due[i].at != due[j].at {
				return due[i].at < due[j].at
			}
			return due[i].seq < due[j].seq
		})
		next := due[0]
		next.fired = true
		c.now = next.at
		c.mu.Unlock()
		next.f()
	}
}

// fireAll runs every timer callback even if it was stopped, like one that was
// already queued when Stop lost the race.
func (c *fakeClock) fireAll() {
	c.mu.Lock()
	timers := append([]*fakeTimer(nil), c.timers...)
	c.mu.Unlock()
	for _, t := range timers {
		t.f()
	}
}

func newTestSession(t *testing.T, onSelect func(Item)) (*Session[Item], *fakeClock, *int) {
	t.Helper()
	clock := &fakeClock{}
	updates := new(int)
	s := NewSession(Config{}, catalog(), Options[Item]{OnSelect: onSelect},
		WithClock(clock),
		WithUpdateHook(func() { *updates++ }),
	)
	return s, clock, updates
}

func TestSession_DebounceCoalescing(t *testing.T) {
	s, clock, updates := newTestSession(t, nil)
	s.Focus()

	s.ChangeQuery("c")
	clock.Advance(100 * time.Millisecond)
	s.ChangeQuery("ca")
	clock.Advance(100 * time.Millisecond)
	s.ChangeQuery("cas")

	clock.Advance(299 * time.Millisecond)
	assert.Empty(t, s.Snapshot().CommittedQuery)
	assert.Zero(t, *updates)

	clock.Advance(time.Millisecond)
	snap := s.Snapshot()
	assert.Equal(t, "cas", snap.CommittedQuery)
	assert.True(t, snap.Visible)
	require.Len(t, snap.Results, 1)
	assert.Equal(t, "Cash", snap.Results[0]["name"])
	assert.Equal(t, 1, *updates, "one filter pass for the burst")
}

func TestSession_Flush(t *testing.T) {
	s, clock, _ := newTestSession(t, nil)

	s.ChangeQuery("visa")
	require.True(t, s.Flush())
	assert.Equal(t, "visa", s.Snapshot().CommittedQuery)

	clock.Advance(time.Second)
	assert.Equal(t, "visa", s.Snapshot().CommittedQuery)
	assert.False(t, s.Flush())
}

func TestSession_BlurHidesAfterGrace(t *testing.T) {
	s, clock, _ := newTestSession(t, nil)
	s.Focus()
	s.ChangeQuery("cash")
	clock.Advance(300 * time.Millisecond)

	s.Blur()
	clock.Advance(199 * time.Millisecond)
	assert.True(t, s.Snapshot().Visible)

	clock.Advance(time.Millisecond)
	assert.False(t, s.Snapshot().Visible)
	assert.Equal(t, Idle, s.Snapshot().State)
}

func TestSession_SelectWithinGrace(t *testing.T) {
	var picked []Item
	s, clock, _ := newTestSession(t, func(it Item) { picked = append(picked, it) })
	s.Focus()
	s.ChangeQuery("visa")
	clock.Advance(300 * time.Millisecond)
	item := s.Snapshot().Results[0]

	s.Blur()
	clock.Advance(50 * time.Millisecond)
	s.Select(item)
	clock.Advance(time.Second)

	require.Len(t, picked, 1)
	snap := s.Snapshot()
	assert.Equal(t, "Visa Card", snap.RawQuery)
	assert.Equal(t, "Visa Card", snap.CommittedQuery)
	assert.False(t, snap.Visible)
	assert.Equal(t, Idle, snap.State)
}

func TestSession_CloseCancelsTimers(t *testing.T) {
	s, clock, updates := newTestSession(t, nil)
	s.Focus()
	s.ChangeQuery("cash")
	s.Blur()

	s.Close()
	clock.Advance(time.Second)
	clock.fireAll()

	snap := s.Snapshot()
	assert.Empty(t, snap.CommittedQuery)
	assert.Empty(t, snap.Results)
	assert.Zero(t, *updates)

	s.ChangeQuery("more")
	s.Focus()
	s.Select(Item{"name": "x"})
	assert.Equal(t, "cash", s.Snapshot().RawQuery)
	s.Close()
}

func TestSession_SetItems(t *testing.T) {
	s, clock, _ := newTestSession(t, nil)
	s.ChangeQuery("press")
	clock.Advance(300 * time.Millisecond)
	assert.Empty(t, s.Snapshot().Results)

	s.SetItems([]Item{{"name": "Pressing"}, {"name": "Press only"}})
	assert.Len(t, s.Snapshot().Results, 2)
}

func TestSession_RealClock(t *testing.T) {
	done := make(chan struct{}, 1)
	s := NewSession(Config{Debounce: 5 * time.Millisecond}, catalog(), Options[Item]{},
		WithUpdateHook(func() { done <- struct{}{} }),
	)
	defer s.Close()

	s.ChangeQuery("ada")

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("debounce never fired")
	}
	assert.Equal(t, "ada", s.Snapshot().CommittedQuery)
}
