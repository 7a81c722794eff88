package pathwalk

import (
	"encoding/json"
	"fmt"
	"strings"
)

// OutputMode selects how FormatResult renders a value.
type OutputMode int

const (
	// HumanReadable renders indented JSON.
	HumanReadable OutputMode = iota
	// Compact renders records as key:value lines and scalars bare.
	Compact
)

// FormatResult renders an evaluation or merge result.
//
// Absence markers are rendered distinctly from a literal null: in Compact
// mode they print as "<missing>" / "<empty>", in JSON mode as an object
// {"absent": "missing"} / {"absent": "empty"} — a bare null only ever means
// the JSON encoding of a present nil-valued entry inside a record.
func FormatResult(result any, mode OutputMode) ([]byte, error) {
	if a, ok := result.(Absence); ok {
		if mode == Compact {
			return []byte("<" + a.String() + ">"), nil
		}
		return json.Marshal(map[string]any{"absent": a.String()})
	}

	if mode == HumanReadable {
		return json.MarshalIndent(result, "", "  ")
	}

	switch v := result.(type) {
	case map[string]any:
		return formatRecord(v), nil
	case string:
		return []byte(v), nil
	default:
		return []byte(formatValue(v)), nil
	}
}

// formatRecord renders a record as key:value pairs, one per line, in
// sorted key order for deterministic output.
func formatRecord(m map[string]any) []byte {
	var b strings.Builder
	for _, key := range Keys(m) {
		b.WriteString(key)
		b.WriteByte(':')
		b.WriteString(escapeKV(m[key]))
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// escapeKV converts a value to the value part of key:value format.
// Nil values become empty string. Embedded newlines are escaped so each
// pair stays on one logical line.
func escapeKV(val any) string {
	if val == nil {
		return ""
	}
	s := formatValue(val)
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	return s
}

// formatValue converts a value to its compact string representation.
// Sequences and nested records are JSON-encoded, which reads better than
// fmt's Go-syntax output (["a","b"] vs [a b]). Scalars use fmt.
func formatValue(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case []any, map[string]any:
		b, err := json.Marshal(v)
		if err == nil {
			return string(b)
		}
		return fmt.Sprintf("%v", v)
	default:
		return fmt.Sprintf("%v", val)
	}
}
