// Package prefs loads the operator's configuration from TOML files.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/interpretive-systems/poslookup/internal/search"
)

// ErrInvalid marks a configuration value outside its allowed range.
var ErrInvalid = errors.New("invalid configuration")

// LocalFile is the per-directory config file name.
const LocalFile = "poslookup.toml"

// Prefs is the full configuration.
type Prefs struct {
	Search  Search  `koanf:"search" toml:"search"`
	Catalog Catalog `koanf:"catalog" toml:"catalog"`
	Theme   Theme   `koanf:"theme" toml:"theme"`
}

// Search holds the predictive search settings. Zero values mean default.
type Search struct {
	Keys        []string `koanf:"keys" toml:"keys"`
	DebounceMS  int      `koanf:"debounce_ms" toml:"debounce_ms"`
	MaxResults  int      `koanf:"max_results" toml:"max_results"`
	BlurGraceMS int      `koanf:"blur_grace_ms" toml:"blur_grace_ms"`
	Placeholder string   `koanf:"placeholder" toml:"placeholder,omitempty"`
}

// Catalog selects the item sources.
type Catalog struct {
	Paths       []string `koanf:"paths" toml:"paths"`
	Where       string   `koanf:"where" toml:"where,omitempty"`
	SQLiteTable string   `koanf:"sqlite_table" toml:"sqlite_table,omitempty"`
}

// Theme overrides terminal colors. Empty fields keep the built-in palette.
type Theme struct {
	HighlightFG string `koanf:"highlight_fg" toml:"highlight_fg,omitempty"`
	HighlightBG string `koanf:"highlight_bg" toml:"highlight_bg,omitempty"`
	CursorFG    string `koanf:"cursor_fg" toml:"cursor_fg,omitempty"`
	Divider     string `koanf:"divider" toml:"divider,omitempty"`
	Dim         string `koanf:"dim" toml:"dim,omitempty"`
}

// UserFile is the config file under the XDG config directory.
func UserFile() string {
	return filepath.Join(xdg.ConfigHome, "poslookup", "config.toml")
}

// Paths lists the files Load consults, lowest priority first.
func Paths(explicit string) []string {
	paths := []string{UserFile(), LocalFile}
	if explicit != "" {
		paths = append(paths, explicit)
	}
	return paths
}

// Load merges every existing file from Paths(explicit); later files win.
// A missing explicit file is an error, missing default files are skipped.
func Load(explicit string) (*Prefs, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return nil, fmt.Errorf("config %s: %w", explicit, err)
		}
	}
	return LoadFiles(Paths(explicit)...)
}

// LoadFiles merges the given files in order, skipping those that do not exist.
func LoadFiles(paths ...string) (*Prefs, error) {
	k := koanf.New(".")
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	p := &Prefs{}
	if err := k.Unmarshal("", p); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	for i, path := range p.Catalog.Paths {
		p.Catalog.Paths[i] = expandPath(path)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate rejects negative durations and limits.
func (p *Prefs) Validate() error {
	var errs []error
	if p.Search.DebounceMS < 0 {
		errs = append(errs, fmt.Errorf("%w: search.debounce_ms must not be negative, got %d", ErrInvalid, p.Search.DebounceMS))
	}
	if p.Search.BlurGraceMS < 0 {
		errs = append(errs, fmt.Errorf("%w: search.blur_grace_ms must not be negative, got %d", ErrInvalid, p.Search.BlurGraceMS))
	}
	if p.Search.MaxResults < 0 {
		errs = append(errs, fmt.Errorf("%w: search.max_results must not be negative, got %d", ErrInvalid, p.Search.MaxResults))
	}
	for _, key := range p.Search.Keys {
		if strings.TrimSpace(key) == "" {
			errs = append(errs, fmt.Errorf("%w: search.keys contains a blank key", ErrInvalid))
			break
		}
	}
	return errors.Join(errs...)
}

// SearchConfig converts the [search] table into a search.Config with
// defaults applied.
func (p *Prefs) SearchConfig() search.Config {
	cfg := search.Config{
		Keys:        p.Search.Keys,
		Debounce:    time.Duration(p.Search.DebounceMS) * time.Millisecond,
		BlurGrace:   time.Duration(p.Search.BlurGraceMS) * time.Millisecond,
		MaxResults:  p.Search.MaxResults,
		Placeholder: p.Search.Placeholder,
	}
	return cfg.WithDefaults()
}

// Default returns a Prefs populated with the built-in defaults, the content
// written by Save for a fresh config.
func Default() *Prefs {
	cfg := search.DefaultConfig()
	return &Prefs{
		Search: Search{
			Keys:        cfg.Keys,
			DebounceMS:  int(cfg.Debounce / time.Millisecond),
			MaxResults:  cfg.MaxResults,
			BlurGraceMS: int(cfg.BlurGrace / time.Millisecond),
			Placeholder: cfg.Placeholder,
		},
		Catalog: Catalog{
			Paths:       []string{},
			SQLiteTable: "items",
		},
	}
}

// Save writes p to path as TOML, creating parent directories. An existing
// file is only replaced when overwrite is set.
func Save(path string, p *Prefs, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config %s: %w", path, os.ErrExist)
		}
	}
	b, err := gotoml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
