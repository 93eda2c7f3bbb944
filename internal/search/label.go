package search

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// labelKeys is the preference order for a row's default display label.
var labelKeys = []string{"name", "title", "label", "fullName", "customerName", "phone", "email", "sku"}

// idKeys is the preference order for a row's stable key.
var idKeys = []string{"id", "_id", "key"}

// DisplayLabel returns the first populated field among the label keys, or
// a JSON dump of the record when none is set.
func DisplayLabel[T Record](item T) string {
	if s, ok := firstPopulated(item, labelKeys); ok {
		return s
	}
	b, err := json.Marshal(map[string]any(item))
	if err != nil {
		return fmt.Sprint(map[string]any(item))
	}
	return string(b)
}

// RowKey returns a stable list key for item: its id, then an alternate
// identifier, then a position-derived key.
func RowKey[T Record](item T, index int) string {
	if s, ok := firstPopulated(item, idKeys); ok {
		return s
	}
	return "row-" + strconv.Itoa(index)
}

// SelectionText returns the first non-empty string value among keys, the
// text an input shows after item is picked.
func SelectionText[T Record](item T, keys []string) (string, bool) {
	for _, k := range keys {
		if s, ok := item[k].(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

func firstPopulated[T Record](item T, keys []string) (string, bool) {
	for _, k := range keys {
		v, ok := item[k]
		if !ok || v == nil {
			continue
		}
		if s, ok := stringify(v); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

func stringify(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case fmt.Stringer:
		return x.String(), true
	}
	if s, ok := formatNumber(v); ok {
		return s, true
	}
	return "", false
}
