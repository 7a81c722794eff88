package pathwalk

import (
	"sort"
	"strings"
)

// Lookup fetches the value at a dotted path ("user.contact.email"),
// treating every segment as guarded: absence anywhere along the way yields
// nil, never an error. This is the convenience most callers want when they
// don't care why a chain stopped; use ParsePath and Evaluate for guard
// control, index steps, and calls.
func Lookup(root any, path string) any {
	if path == "" {
		return root
	}
	current := root
	for _, part := range strings.Split(path, ".") {
		rec, ok := AsRecord(current)
		if !ok {
			return nil
		}
		v, exists := rec[part]
		if !exists {
			return nil
		}
		current = v
	}
	return current
}

// Has reports whether the dotted path resolves to a present key, even one
// holding an explicit nil. It differs from Lookup != nil exactly for such
// keys.
func Has(root any, path string) bool {
	if path == "" {
		return true
	}
	current := root
	parts := strings.Split(path, ".")
	for i, part := range parts {
		rec, ok := AsRecord(current)
		if !ok {
			return false
		}
		v, exists := rec[part]
		if !exists {
			return false
		}
		if i == len(parts)-1 {
			return true
		}
		current = v
	}
	return true
}

// Keys returns the keys of a record in sorted order.
// The returned slice is a fresh copy.
func Keys(record map[string]any) []string {
	keys := make([]string, 0, len(record))
	for k := range record {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
