// Package search implements debounced predictive search over an in-memory
// collection of records: the query controller, the multi-key filter, the
// highlight segmenter and the label/key helpers used by result lists.
package search

// Record is the constraint for searchable items: any mapping from field
// name to value. Items are never mutated by this package.
type Record interface {
	~map[string]any
}

// Item is the concrete record type produced by catalogs.
type Item = map[string]any
