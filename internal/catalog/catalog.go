// Package catalog loads the item collection the search runs over: products,
// services and customers kept in JSON, YAML, TOML or SQLite files.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
	gotoml "github.com/pelletier/go-toml/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"

	"github.com/interpretive-systems/poslookup/internal/search"
)

var (
	// ErrUnsupportedFormat is returned for unknown extensions and for files
	// that are neither a list of records nor a table with an items list.
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
	// ErrNotFound is returned when a catalog path does not exist.
	ErrNotFound = errors.New("catalog not found")
)

// DefaultTable is the SQLite table read when none is configured.
const DefaultTable = "items"

// Loader reads catalogs from disk.
type Loader struct {
	// Table is the SQLite table to read; empty means DefaultTable.
	Table string
	Log   logr.Logger
}

// Load reads a single catalog with the default loader.
func Load(ctx context.Context, path string) ([]search.Item, error) {
	return (&Loader{}).Load(ctx, path)
}

// LoadAll reads every path concurrently with the default loader.
func LoadAll(ctx context.Context, paths ...string) ([]search.Item, error) {
	return (&Loader{}).LoadAll(ctx, paths...)
}

// LoadAll reads every path concurrently and concatenates the records in
// argument order. The first error cancels the remaining loads.
func (l *Loader) LoadAll(ctx context.Context, paths ...string) ([]search.Item, error) {
	parts := make([][]search.Item, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			items, err := l.Load(gctx, path)
			if err != nil {
				return err
			}
			parts[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var total int
	for _, p := range parts {
		total += len(p)
	}
	out := make([]search.Item, 0, total)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out, nil
}

// Load reads one catalog, choosing the decoder from the file extension.
func (l *Loader) Load(ctx context.Context, path string) ([]search.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	var (
		items []search.Item
		err   error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		items, err = decodeFile(path, func(b []byte, v *any) error { return json.Unmarshal(b, v) })
	case ".yaml", ".yml":
		items, err = decodeFile(path, func(b []byte, v *any) error { return yaml.Unmarshal(b, v) })
	case ".toml":
		items, err = decodeFile(path, func(b []byte, v *any) error { return gotoml.Unmarshal(b, v) })
	case ".db", ".sqlite", ".sqlite3":
		items, err = l.loadSQLite(ctx, path)
	default:
		return nil, fmt.Errorf("%s: %w %q", path, ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}

	for i, it := range items {
		items[i] = normalizeMap(it)
	}
	l.logger().V(1).Info("catalog loaded", "path", path, "records", len(items))
	return items, nil
}

func (l *Loader) logger() logr.Logger {
	if l.Log.GetSink() == nil {
		return logr.Discard()
	}
	return l.Log
}

func decodeFile(path string, decode func([]byte, *any) error) ([]search.Item, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var doc any
	if err := decode(b, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	items, err := records(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

// records accepts a list of maps or a map holding such a list under "items".
func records(doc any) ([]search.Item, error) {
	switch v := doc.(type) {
	case nil:
		return nil, nil
	case []any:
		return recordList(v)
	case map[string]any:
		list, ok := v["items"]
		if !ok {
			return nil, fmt.Errorf("%w: no items list", ErrUnsupportedFormat)
		}
		if list == nil {
			return nil, nil
		}
		l, ok := list.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: items is %T, want a list", ErrUnsupportedFormat, list)
		}
		return recordList(l)
	default:
		return nil, fmt.Errorf("%w: top level is %T", ErrUnsupportedFormat, doc)
	}
}

func recordList(list []any) ([]search.Item, error) {
	out := make([]search.Item, 0, len(list))
	for i, e := range list {
		m, ok := e.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: record %d is %T", ErrUnsupportedFormat, i, e)
		}
		out = append(out, search.Item(m))
	}
	return out, nil
}

func (l *Loader) loadSQLite(ctx context.Context, path string) ([]search.Item, error) {
	table := l.Table
	if table == "" {
		table = DefaultTable
	}

	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, "SELECT * FROM "+quoteIdent(table))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", path, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns %s: %w", path, err)
	}

	var out []search.Item
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", path, err)
		}
		item := make(search.Item, len(cols))
		for i, c := range cols {
			if vals[i] == nil {
				continue
			}
			if b, ok := vals[i].([]byte); ok {
				item[c] = string(b)
				continue
			}
			item[c] = vals[i]
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return out, nil
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// normalizeMap returns m with every string value in NFC form.
func normalizeMap(m search.Item) search.Item {
	for k, v := range m {
		m[k] = normalizeValue(v)
	}
	return m
}

func normalizeValue(v any) any {
	switch x := v.(type) {
	case string:
		return norm.NFC.String(x)
	case map[string]any:
		for k, e := range x {
			x[k] = normalizeValue(e)
		}
		return x
	case []any:
		for i, e := range x {
			x[i] = normalizeValue(e)
		}
		return x
	default:
		return v
	}
}
