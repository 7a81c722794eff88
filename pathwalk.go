// Package pathwalk navigates dynamic (any-typed) data safely.
//
// Its two core operations are pure and independent: Evaluate walks an
// access chain (property, index, and call steps) left to right, with
// per-step guards that short-circuit to an absence marker instead of
// failing, and Merge combines records shallowly with last-writer-wins
// precedence. ParsePath turns textual expressions like
// "user?.contact.email" or "items[0]?.name" into chains, and Project
// assembles several chain results into one record.
package pathwalk

// EvalString parses the path expression and evaluates it against root.
// It is shorthand for ParsePath followed by Evaluate.
func EvalString(root any, path string) (any, error) {
	chain, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	return Evaluate(root, chain)
}

// EvalFormatted evaluates a path expression and renders the result in the
// given output mode. Convenience for CLI-style callers.
func EvalFormatted(root any, path string, mode OutputMode) ([]byte, error) {
	result, err := EvalString(root, path)
	if err != nil {
		return nil, err
	}
	return FormatResult(result, mode)
}
