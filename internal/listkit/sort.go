// Package listkit holds the generic sorting and pagination helpers the admin
// views use to slice and search entity lists.
package listkit

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var collator = collate.New(language.English)

// ValueForSort resolves a possibly underscore-joined attribute path:
// "a__b" reads obj["a"]["b"]. Attributes ending in "_date" default to the
// maximum representable integer when absent so undated items sort last
// ascending and first descending.
func ValueForSort(attribute string, obj map[string]any) any {
	var current any = obj
	for _, part := range strings.Split(attribute, "__") {
		m, ok := current.(map[string]any)
		if !ok {
			current = nil
			break
		}
		current = m[part]
	}
	if isEmptyValue(current) && strings.HasSuffix(attribute, "_date") {
		return int64(math.MaxInt64)
	}
	return current
}

// SortObjects returns a new, stably sorted copy of items ordered by
// attribute. Numeric values compare numerically, everything else as strings
// under locale-aware collation. Empty values always trail: reverse flips the
// ordering among non-empty values but never promotes empties.
func SortObjects(items []map[string]any, attribute string, reverse bool) []map[string]any {
	sorted := make([]map[string]any, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return OrderValues(ValueForSort(attribute, sorted[i]), ValueForSort(attribute, sorted[j]), reverse) < 0
	})
	return sorted
}

// OrderValues compares two sort values under the empties-trail rule. The
// result is negative when a sorts before b.
func OrderValues(a, b any, reverse bool) int {
	emptyA, emptyB := isEmptyValue(a), isEmptyValue(b)
	switch {
	case emptyA && emptyB:
		return 0
	case emptyA:
		return 1
	case emptyB:
		return -1
	}
	c := compareValues(a, b)
	if reverse {
		c = -c
	}
	return c
}

func compareValues(a, b any) int {
	na, okA := numeric(a)
	nb, okB := numeric(b)
	if okA && okB {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
		return 0
	}
	return collator.CompareString(stringValue(a), stringValue(b))
}

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func stringValue(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case bool:
		if s {
			return "true"
		}
		return "false"
	}
	return ""
}

func isEmptyValue(v any) bool {
	switch value := v.(type) {
	case nil:
		return true
	case string:
		return value == ""
	case []any:
		return len(value) == 0
	case map[string]any:
		return len(value) == 0
	}
	return false
}
