package search

import "time"

const (
	DefaultDebounce    = 300 * time.Millisecond
	DefaultBlurGrace   = 200 * time.Millisecond
	DefaultMaxResults  = 20
	DefaultPlaceholder = "Search..."
)

// DefaultKeys returns the key list used when none is configured.
func DefaultKeys() []string {
	return []string{"name"}
}

// Config holds per-session search settings.
type Config struct {
	// Keys are the record fields tested against the query, in order.
	// A nil slice selects DefaultKeys; an empty non-nil slice matches nothing.
	Keys []string
	// Debounce is the quiet period between the last keystroke and the
	// filter pass.
	Debounce time.Duration
	// BlurGrace delays hiding the results after the input loses focus so a
	// tap on a row can still select it.
	BlurGrace time.Duration
	// MaxResults caps the visible result list.
	MaxResults  int
	Placeholder string
}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() Config {
	return Config{}.WithDefaults()
}

// WithDefaults fills zero fields with defaults. Keys are copied so the
// caller's slice can be reused.
func (c Config) WithDefaults() Config {
	if c.Keys == nil {
		c.Keys = DefaultKeys()
	} else {
		c.Keys = append([]string{}, c.Keys...)
	}
	if c.Debounce <= 0 {
		c.Debounce = DefaultDebounce
	}
	if c.BlurGrace <= 0 {
		c.BlurGrace = DefaultBlurGrace
	}
	if c.MaxResults <= 0 {
		c.MaxResults = DefaultMaxResults
	}
	if c.Placeholder == "" {
		c.Placeholder = DefaultPlaceholder
	}
	return c
}
