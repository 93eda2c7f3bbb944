package search

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalog() []Item {
	return []Item{
		{"id": "p1", "name": "Visa Card", "sku": "4000"},
		{"id": "p2", "name": "Cash", "sku": "1000"},
		{"id": "p3", "name": "Dry Clean Suit", "sku": "7788", "price": 12.5},
		{"id": "c1", "name": "Ada Lovelace", "phone": "555-0100"},
	}
}

func newTestController(t *testing.T, cfg Config, onSelect func(Item)) *Controller[Item] {
	t.Helper()
	return NewController(cfg, catalog(), Options[Item]{OnSelect: onSelect})
}

func TestConfig_WithDefaults(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, []string{"name"}, cfg.Keys)
	assert.Equal(t, 300*time.Millisecond, cfg.Debounce)
	assert.Equal(t, 200*time.Millisecond, cfg.BlurGrace)
	assert.Equal(t, 20, cfg.MaxResults)
	assert.Equal(t, "Search...", cfg.Placeholder)

	keys := []string{"name", "sku"}
	cfg = Config{Keys: keys}.WithDefaults()
	keys[0] = "mutated"
	assert.Equal(t, []string{"name", "sku"}, cfg.Keys)

	assert.Equal(t, []string{}, Config{Keys: []string{}}.WithDefaults().Keys)
}

func TestController_DebounceCoalescing(t *testing.T) {
	c := newTestController(t, Config{}, nil)

	t1 := c.ChangeQuery("v")
	t2 := c.ChangeQuery("vi")
	t3 := c.ChangeQuery("vis")

	assert.Equal(t, "vis", c.RawQuery())
	assert.False(t, c.Commit(t1))
	assert.False(t, c.Commit(t2))
	assert.Empty(t, c.CommittedQuery())

	require.True(t, c.Commit(t3))
	assert.Equal(t, "vis", c.CommittedQuery())
	assert.Len(t, c.Results(), 1)

	assert.False(t, c.Commit(t3), "a ticket commits once")
}

func TestController_OnChangeTextIsSynchronous(t *testing.T) {
	var seen []string
	c := NewController(Config{}, catalog(), Options[Item]{
		OnChangeText: func(s string) { seen = append(seen, s) },
	})

	c.ChangeQuery("c")
	c.ChangeQuery("ca")

	assert.Equal(t, []string{"c", "ca"}, seen)
	assert.Empty(t, c.CommittedQuery())
}

func TestController_CaseInsensitiveAndMultiKey(t *testing.T) {
	c := newTestController(t, Config{Keys: []string{"name", "sku"}}, nil)
	c.Focus()

	c.Commit(c.ChangeQuery("VISA"))
	require.Len(t, c.Results(), 1)
	assert.Equal(t, "p1", c.Results()[0]["id"])

	c.Commit(c.ChangeQuery("77"))
	require.Len(t, c.Results(), 1)
	assert.Equal(t, "p3", c.Results()[0]["id"])
	assert.True(t, c.ResultsVisible())
}

func TestController_ResultCap(t *testing.T) {
	items := make([]Item, 0, 50)
	for i := range 50 {
		items = append(items, Item{"name": fmt.Sprintf("Item %d", i)})
	}
	c := NewController(Config{}, items, Options[Item]{})

	c.Commit(c.ChangeQuery("Item"))

	require.Len(t, c.Results(), 20)
	assert.Equal(t, "Item 0", c.Results()[0]["name"])
	assert.Equal(t, "Item 19", c.Results()[19]["name"])

	c.Reconfigure(Config{MaxResults: 5})
	assert.Len(t, c.Results(), 5)
	assert.Equal(t, "Item", c.CommittedQuery(), "reconfigure keeps the query")
}

func TestController_EmptyQueryClears(t *testing.T) {
	c := newTestController(t, Config{}, nil)
	c.Focus()
	c.Commit(c.ChangeQuery("cash"))
	require.True(t, c.ResultsVisible())

	c.Commit(c.ChangeQuery("   "))

	assert.Empty(t, c.Results())
	assert.False(t, c.ResultsVisible())
	assert.Equal(t, ResultsShown, c.State())
}

func TestController_FocusWithoutQueryStaysHidden(t *testing.T) {
	c := newTestController(t, Config{}, nil)

	c.Focus()

	assert.Equal(t, ResultsShown, c.State())
	assert.False(t, c.ResultsVisible())
}

func TestController_BlurGrace(t *testing.T) {
	c := newTestController(t, Config{}, nil)
	c.Focus()
	c.Commit(c.ChangeQuery("cash"))

	bt := c.Blur()
	assert.True(t, c.ResultsVisible(), "results stay up during the grace window")

	require.True(t, c.ExpireBlur(bt))
	assert.False(t, c.ResultsVisible())
	assert.Equal(t, Idle, c.State())
}

func TestController_RefocusCancelsBlur(t *testing.T) {
	c := newTestController(t, Config{}, nil)
	c.Focus()
	c.Commit(c.ChangeQuery("cash"))

	bt := c.Blur()
	c.Focus()

	assert.False(t, c.ExpireBlur(bt))
	assert.True(t, c.ResultsVisible())
}

func TestController_StaleBlurTicket(t *testing.T) {
	c := newTestController(t, Config{}, nil)
	c.Focus()
	c.Commit(c.ChangeQuery("cash"))

	first := c.Blur()
	second := c.Blur()

	assert.False(t, c.ExpireBlur(first))
	assert.True(t, c.ExpireBlur(second))
}

func TestController_SelectWithinGrace(t *testing.T) {
	var picked []Item
	c := newTestController(t, Config{}, func(it Item) { picked = append(picked, it) })
	c.Focus()
	c.Commit(c.ChangeQuery("visa"))
	require.Len(t, c.Results(), 1)
	item := c.Results()[0]

	bt := c.Blur()
	dt, scheduled := c.Select(item)

	require.Len(t, picked, 1)
	assert.Equal(t, "p1", picked[0]["id"])
	assert.Equal(t, "Visa Card", c.RawQuery())
	assert.False(t, c.ResultsVisible())
	assert.Equal(t, Idle, c.State())

	assert.False(t, c.ExpireBlur(bt), "grace timer was cancelled by the selection")
	assert.Len(t, picked, 1)

	require.True(t, scheduled)
	require.True(t, c.Commit(dt))
	assert.Equal(t, "Visa Card", c.CommittedQuery())
	assert.False(t, c.ResultsVisible(), "results stay hidden until refocus")
}

func TestController_SelectWithoutLabel(t *testing.T) {
	c := newTestController(t, Config{Keys: []string{"sku"}}, nil)
	c.ChangeQuery("zz")

	_, scheduled := c.Select(Item{"sku": 9})

	assert.False(t, scheduled)
	assert.Equal(t, "zz", c.RawQuery())
}

func TestController_SelectPanicPropagates(t *testing.T) {
	c := newTestController(t, Config{}, func(Item) { panic("boom") })

	assert.PanicsWithValue(t, "boom", func() { c.Select(Item{"name": "x"}) })
}

func TestController_DisposedIsSilent(t *testing.T) {
	var picked int
	c := newTestController(t, Config{}, func(Item) { picked++ })
	c.Focus()
	dt := c.ChangeQuery("cash")
	bt := c.Blur()

	c.Dispose()

	assert.True(t, c.Disposed())
	assert.False(t, c.Commit(dt))
	assert.False(t, c.ExpireBlur(bt))
	assert.Zero(t, c.ChangeQuery("more"))
	assert.False(t, c.Flush())
	_, scheduled := c.Select(Item{"name": "x"})
	assert.False(t, scheduled)
	assert.Zero(t, picked)
	assert.Empty(t, c.CommittedQuery())
}

func TestController_Flush(t *testing.T) {
	c := newTestController(t, Config{}, nil)
	assert.False(t, c.Flush())

	c.ChangeQuery("dry")
	assert.True(t, c.Pending())
	assert.True(t, c.Flush())
	assert.False(t, c.Pending())
	assert.Equal(t, "dry", c.CommittedQuery())
	assert.Len(t, c.Results(), 1)
}

func TestController_SetItems(t *testing.T) {
	c := newTestController(t, Config{}, nil)
	c.Commit(c.ChangeQuery("cash"))
	require.Len(t, c.Results(), 1)

	c.SetItems(nil)
	assert.Empty(t, c.Results())

	c.SetItems([]Item{{"name": "Cash drawer"}, {"name": "Petty cash"}})
	assert.Len(t, c.Results(), 2)
}

func TestController_RegexMetacharacters(t *testing.T) {
	items := []Item{{"name": "a.c"}, {"name": "abc"}, {"name": "[x]"}}
	c := NewController(Config{}, items, Options[Item]{})

	c.Commit(c.ChangeQuery("a.c"))
	assert.Len(t, c.Results(), 1)

	c.Commit(c.ChangeQuery("["))
	require.Len(t, c.Results(), 1)
	assert.Equal(t, "[x]", c.Results()[0]["name"])
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "results-shown", ResultsShown.String())
	assert.Equal(t, "committing", Committing.String())
	assert.Equal(t, "unknown", State(9).String())
}
