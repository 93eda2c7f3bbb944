package search

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Normalize trims and lower-cases a query the way Filter does before
// matching.
func Normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Filter returns the items for which at least one of keys matches query,
// in their original order, truncated to limit entries. A blank query
// yields no results. limit <= 0 disables the cap.
func Filter[T Record](items []T, query string, keys []string, limit int) []T {
	q := Normalize(query)
	if q == "" || len(keys) == 0 {
		return nil
	}

	out := make([]T, 0, min(len(items), capHint(limit)))
	for _, it := range items {
		if !Matches(it, q, keys) {
			continue
		}
		out = append(out, it)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// Matches reports whether any key of item matches the normalized query.
// Keys are tried in order and the first match wins.
func Matches[T Record](item T, normalized string, keys []string) bool {
	for _, k := range keys {
		v, ok := item[k]
		if !ok {
			continue
		}
		if MatchValue(v, normalized) {
			return true
		}
	}
	return false
}

// MatchValue tests a single field value. Strings match by case-insensitive
// literal containment, numbers by containment in their decimal form; every
// other type never matches.
func MatchValue(v any, normalized string) bool {
	if s, ok := v.(string); ok {
		return strings.Contains(strings.ToLower(s), normalized)
	}
	if s, ok := formatNumber(v); ok {
		return strings.Contains(s, normalized)
	}
	return false
}

// formatNumber renders numeric values in plain decimal notation.
func formatNumber(v any) (string, bool) {
	switch n := v.(type) {
	case int:
		return strconv.FormatInt(int64(n), 10), true
	case int8:
		return strconv.FormatInt(int64(n), 10), true
	case int16:
		return strconv.FormatInt(int64(n), 10), true
	case int32:
		return strconv.FormatInt(int64(n), 10), true
	case int64:
		return strconv.FormatInt(n, 10), true
	case uint:
		return strconv.FormatUint(uint64(n), 10), true
	case uint8:
		return strconv.FormatUint(uint64(n), 10), true
	case uint16:
		return strconv.FormatUint(uint64(n), 10), true
	case uint32:
		return strconv.FormatUint(uint64(n), 10), true
	case uint64:
		return strconv.FormatUint(n, 10), true
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64), true
	case json.Number:
		return n.String(), true
	}
	return "", false
}

func capHint(limit int) int {
	if limit <= 0 || limit > 64 {
		return 64
	}
	return limit
}
