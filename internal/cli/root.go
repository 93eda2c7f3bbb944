// Package cli wires the cobra commands to the search core, the catalog
// loaders and the lookup screen.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/interpretive-systems/poslookup/internal/catalog"
	"github.com/interpretive-systems/poslookup/internal/logger"
	"github.com/interpretive-systems/poslookup/internal/prefs"
	"github.com/interpretive-systems/poslookup/internal/search"
	"github.com/interpretive-systems/poslookup/internal/tui"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	catalogs   []string
	where      string
	table      string
	keys       []string
	debounce   time.Duration
	blurGrace  time.Duration
	maxResults int
	logFile    string
	verbose    bool
}

// settings is the effective configuration after flags override the files.
type settings struct {
	search   search.Config
	catalogs []string
	where    string
	table    string
	theme    tui.Theme
}

// Execute runs the root command.
func Execute() error {
	if err := newRootCmd().Execute(); err != nil {
		return fmt.Errorf("execute: %w", err)
	}
	return nil
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "poslookup",
		Short:         "Predictive lookup for the counter",
		Long:          "poslookup: find products, services and customers as you type.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := logger.InfoLevel
			if g.verbose {
				level = logger.DebugLevel
			}
			lgr, err := logger.Setup(logger.Options{Level: level, Path: g.logFile})
			if err != nil {
				return fmt.Errorf("logger: %w", err)
			}
			lgr = logger.WithValues(lgr, logger.CommandKey, cmd.Name())
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(logger.WithLogger(ctx, lgr))
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLookup(cmd, g, false)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "Config file, merged over the user and local config")
	pf.StringSliceVarP(&g.catalogs, "catalog", "c", nil, "Catalog file (.json, .yaml, .toml, .db); repeatable")
	pf.StringVar(&g.where, "where", "", "CEL predicate over `item` that records must satisfy")
	pf.StringVar(&g.table, "table", "", "SQLite table to read (default \"items\")")
	pf.StringSliceVarP(&g.keys, "keys", "k", nil, "Record fields to search, in order (default \"name\")")
	pf.DurationVar(&g.debounce, "debounce", 0, "Quiet period before filtering (default 300ms)")
	pf.DurationVar(&g.blurGrace, "blur-grace", 0, "Delay before results hide on blur (default 200ms)")
	pf.IntVar(&g.maxResults, "max-results", 0, "Maximum results shown (default 20)")
	pf.StringVar(&g.logFile, "log-file", "", "Log file, \"-\" for stderr (default under $XDG_STATE_HOME)")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "Debug logging")

	root.AddCommand(
		newLookupCmd(g),
		newQueryCmd(g),
		newScanCmd(g),
		newConfigCmd(g),
	)
	return root
}

// resolve merges the config files with the flags the user actually set.
func resolve(cmd *cobra.Command, g *globalFlags) (*settings, error) {
	p, err := prefs.Load(g.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("keys") {
		p.Search.Keys = g.keys
	}
	if flags.Changed("max-results") {
		p.Search.MaxResults = g.maxResults
	}
	if flags.Changed("debounce") {
		p.Search.DebounceMS = int(g.debounce / time.Millisecond)
	}
	if flags.Changed("blur-grace") {
		p.Search.BlurGraceMS = int(g.blurGrace / time.Millisecond)
	}
	if flags.Changed("catalog") {
		p.Catalog.Paths = g.catalogs
	}
	if flags.Changed("where") {
		p.Catalog.Where = g.where
	}
	if flags.Changed("table") {
		p.Catalog.SQLiteTable = g.table
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &settings{
		search:   p.SearchConfig(),
		catalogs: p.Catalog.Paths,
		where:    p.Catalog.Where,
		table:    p.Catalog.SQLiteTable,
		theme:    tui.ThemeFrom(p.Theme),
	}, nil
}

// loadItems reads every configured catalog and applies the where clause.
func (s *settings) loadItems(ctx context.Context, log logr.Logger) ([]search.Item, error) {
	if len(s.catalogs) == 0 {
		return nil, fmt.Errorf("no catalog: pass --catalog or set [catalog] paths in %s", prefs.UserFile())
	}

	var pred *catalog.Predicate
	if s.where != "" {
		p, err := catalog.Compile(s.where)
		if err != nil {
			return nil, fmt.Errorf("where: %w", err)
		}
		pred = p
	}

	loader := &catalog.Loader{Table: s.table, Log: log}
	items, err := loader.LoadAll(ctx, s.catalogs...)
	if err != nil {
		return nil, err
	}
	if pred != nil {
		items = pred.Filter(items, log)
	}
	log.Info("catalog ready", "paths", s.catalogs, "records", len(items))
	return items, nil
}
