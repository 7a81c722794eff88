package pathwalk

import "fmt"

// Error code constants for categorizing errors.
const (
	ErrParse         = "PARSE_ERROR"
	ErrInvalidAccess = "INVALID_ACCESS"
	ErrTypeMismatch  = "TYPE_MISMATCH"
)

// Pos represents a position in the input string.
type Pos struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

// ParseError represents a syntax error found while parsing a path expression.
type ParseError struct {
	Message  string `json:"message"`
	Pos      Pos    `json:"pos"`
	Got      string `json:"got,omitempty"`
	Expected string `json:"expected,omitempty"`
}

// Error implements the error interface for ParseError.
func (e *ParseError) Error() string {
	if e.Got != "" && e.Expected != "" {
		return fmt.Sprintf("parse error at %d:%d: %s (got %q, expected %s)",
			e.Pos.Line, e.Pos.Column, e.Message, e.Got, e.Expected)
	}
	if e.Got != "" {
		return fmt.Sprintf("parse error at %d:%d: %s (got %q)",
			e.Pos.Line, e.Pos.Column, e.Message, e.Got)
	}
	return fmt.Sprintf("parse error at %d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// InvalidAccessError reports an unguarded step applied to an absent value —
// the analogue of dereferencing null. Step is the zero-based index of the
// failing step; Why records which absence marker stopped the chain.
type InvalidAccessError struct {
	Step int      `json:"step"`
	Kind StepKind `json:"kind"`
	Why  Absence  `json:"why"`
}

// Error implements the error interface.
func (e *InvalidAccessError) Error() string {
	return fmt.Sprintf("invalid %s access at step %d: value is %s", e.Kind, e.Step, e.Why)
}

// TypeMismatchError reports an unguarded step applied to a present value
// lacking the required capability: a property lookup on a non-record, an
// index lookup on a non-sequence, or a call on a non-callable.
type TypeMismatchError struct {
	Step  int      `json:"step"`
	Kind  StepKind `json:"kind"`
	Value any      `json:"-"` // the offending value, kept for diagnostics
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch at step %d: %s access on %T", e.Step, e.Kind, e.Value)
}
