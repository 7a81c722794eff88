package pathwalk

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormatResultCompact(t *testing.T) {
	tests := []struct {
		name   string
		result any
		want   string
	}{
		{
			name:   "record as sorted key:value lines",
			result: map[string]any{"b": 2, "a": "x"},
			want:   "a:x\nb:2\n",
		},
		{
			name:   "string bare",
			result: "hello",
			want:   "hello",
		},
		{
			name:   "integer bare",
			result: 42,
			want:   "42",
		},
		{
			name:   "sequence as JSON",
			result: []any{"a", "b"},
			want:   `["a","b"]`,
		},
		{
			name:   "missing marker",
			result: Missing,
			want:   "<missing>",
		},
		{
			name:   "empty marker",
			result: Empty,
			want:   "<empty>",
		},
		{
			name:   "nil entry renders empty",
			result: map[string]any{"phone": nil},
			want:   "phone:\n",
		},
		{
			name:   "nested record JSON-encoded in value position",
			result: map[string]any{"tags": map[string]any{"env": "prod"}},
			want:   "tags:{\"env\":\"prod\"}\n",
		},
		{
			name:   "newlines escaped in value position",
			result: map[string]any{"note": "line1\nline2"},
			want:   "note:line1\\nline2\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatResult(tt.result, Compact)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatResultJSON(t *testing.T) {
	got, err := FormatResult(map[string]any{"a": 1, "b": []any{"x"}}, HumanReadable)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Round-trip to confirm valid, lossless JSON.
	var back map[string]any
	if err := json.Unmarshal(got, &back); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, got)
	}
	want := map[string]any{"a": float64(1), "b": []any{"x"}}
	if diff := cmp.Diff(want, back); diff != "" {
		t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(string(got), "\n") {
		t.Error("HumanReadable output is not indented")
	}
}

func TestFormatResultAbsenceJSON(t *testing.T) {
	// Absence is reported distinctly from a literal null.
	got, err := FormatResult(Missing, HumanReadable)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != `{"absent":"missing"}` {
		t.Errorf("got %s, want {\"absent\":\"missing\"}", got)
	}

	got, err = FormatResult(Empty, HumanReadable)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != `{"absent":"empty"}` {
		t.Errorf("got %s, want {\"absent\":\"empty\"}", got)
	}
}
