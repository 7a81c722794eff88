package pathwalk

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Chain
		wantErr string
	}{
		// --- Valid paths ---
		{
			name:  "bare identifier",
			input: "user",
			want:  Chain{Property("user")},
		},
		{
			name:  "dotted properties",
			input: "user.contact.email",
			want:  Chain{Property("user"), Property("contact"), Property("email")},
		},
		{
			name:  "guarded property",
			input: "user?.name",
			want:  Chain{Property("user"), Property("name").Guard()},
		},
		{
			name:  "guards mixed with plain access",
			input: "a?.b.c?.d",
			want: Chain{
				Property("a"),
				Property("b").Guard(),
				Property("c"),
				Property("d").Guard(),
			},
		},
		{
			name:  "index",
			input: "items[0]",
			want:  Chain{Property("items"), Index(0)},
		},
		{
			name:  "guarded index",
			input: "items?.[2]",
			want:  Chain{Property("items"), Index(2).Guard()},
		},
		{
			name:  "negative index parses",
			input: "items[-1]",
			want:  Chain{Property("items"), Index(-1)},
		},
		{
			name:  "dollar root alone",
			input: "$",
			want:  nil,
		},
		{
			name:  "dollar root with index",
			input: "$[1]",
			want:  Chain{Index(1)},
		},
		{
			name:  "dollar root with property",
			input: "$.name",
			want:  Chain{Property("name")},
		},
		{
			name:  "empty call",
			input: "fn()",
			want:  Chain{Property("fn"), Call()},
		},
		{
			name:  "guarded call",
			input: "obj.fn?.()",
			want:  Chain{Property("obj"), Property("fn"), Call().Guard()},
		},
		{
			name:  "call with literal args",
			input: `fn("x", 3, true, false, null)`,
			want:  Chain{Property("fn"), Call("x", 3, true, false, nil)},
		},
		{
			name:  "call with negative integer arg",
			input: "fn(-7)",
			want:  Chain{Property("fn"), Call(-7)},
		},
		{
			name:  "string arg with escapes",
			input: `fn("a\"b\n")`,
			want:  Chain{Property("fn"), Call("a\"b\n")},
		},
		{
			name:  "chain after call",
			input: "make().name",
			want:  Chain{Property("make"), Call(), Property("name")},
		},
		{
			name:  "hyphenated identifier",
			input: "my-field.sub_field",
			want:  Chain{Property("my-field"), Property("sub_field")},
		},
		{
			name:  "whitespace tolerated",
			input: " user . name ",
			want:  Chain{Property("user"), Property("name")},
		},
		{
			name:  "kitchen sink",
			input: `config?.servers[0]?.start?.("fast", 2)`,
			want: Chain{
				Property("config"),
				Property("servers").Guard(),
				Index(0),
				Property("start").Guard(),
				Call("fast", 2).Guard(),
			},
		},

		// --- Syntax errors ---
		{
			name:    "empty input",
			input:   "",
			wantErr: "empty path",
		},
		{
			name:    "leading dot",
			input:   ".name",
			wantErr: "expected path root",
		},
		{
			name:    "trailing dot",
			input:   "user.",
			wantErr: "expected identifier",
		},
		{
			name:    "double dot",
			input:   "user..name",
			wantErr: "expected identifier",
		},
		{
			name:    "bare question mark",
			input:   "user?name",
			wantErr: "expected '.' after '?'",
		},
		{
			name:    "dangling guard",
			input:   "user?.",
			wantErr: "expected step after '?.'",
		},
		{
			name:    "unclosed index",
			input:   "items[0",
			wantErr: "expected ']'",
		},
		{
			name:    "non-integer index",
			input:   "items[x]",
			wantErr: "expected integer",
		},
		{
			name:    "empty index",
			input:   "items[]",
			wantErr: "expected integer",
		},
		{
			name:    "unclosed call",
			input:   `fn("x"`,
			wantErr: "expected ')'",
		},
		{
			name:    "bad call argument",
			input:   "fn(name)",
			wantErr: "expected argument literal",
		},
		{
			name:    "trailing comma in call",
			input:   "fn(1,)",
			wantErr: "expected argument literal",
		},
		{
			name:    "unterminated string",
			input:   `fn("oops`,
			wantErr: "unterminated string literal",
		},
		{
			name:    "junk after path",
			input:   "user name",
			wantErr: "expected access step",
		},
		{
			name:    "unexpected character",
			input:   "user@host",
			wantErr: "unexpected character",
		},
		{
			name:    "bare literal root",
			input:   "42",
			wantErr: "expected path root",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePath(tt.input)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("got chain %v, want error containing %q", got, tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error %q does not contain %q", err.Error(), tt.wantErr)
				}
				var perr *ParseError
				if !errors.As(err, &perr) {
					t.Fatalf("got %T, want *ParseError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("chain mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParsePathErrorPositions(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
		wantCol  int
	}{
		{name: "error at start", input: ".name", wantLine: 1, wantCol: 1},
		{name: "error mid-path", input: "user..name", wantLine: 1, wantCol: 6},
		{name: "error after whitespace", input: "user @", wantLine: 1, wantCol: 6},
		{name: "error on second line", input: "user.\nname[x]", wantLine: 2, wantCol: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePath(tt.input)
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("got %v, want *ParseError", err)
			}
			if perr.Pos.Line != tt.wantLine || perr.Pos.Column != tt.wantCol {
				t.Errorf("position = %d:%d, want %d:%d",
					perr.Pos.Line, perr.Pos.Column, tt.wantLine, tt.wantCol)
			}
		})
	}
}

func TestParseThenEvaluate(t *testing.T) {
	doc := testDoc()

	tests := []struct {
		path string
		want any
	}{
		{path: "user.name", want: "ada"},
		{path: "user?.contact?.email", want: "ada@example.com"},
		{path: "user.tags[1]", want: "ops"},
		{path: "user.tags[5]", want: Missing},
		{path: "user?.address?.city", want: Missing},
		{path: "user.contact.phone", want: Empty},
		{path: `greet("ada")`, want: "hello, ada"},
		{path: "$", want: nil}, // whole root; checked separately below
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := EvalString(doc, tt.path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.path == "$" {
				if _, ok := got.(map[string]any); !ok {
					t.Fatalf("got %T, want the root record", got)
				}
				return
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
