package pathwalk

// Callable is the function shape a Call step invokes. Arguments are passed
// explicitly; there is no implicit receiver — a callable that needs one
// should close over it.
type Callable func(args []any) (any, error)

// Absence tags why a value is absent. Both markers satisfy IsAbsent and
// behave identically during chain evaluation; they exist as distinct tags
// only so callers can report why a chain stopped.
type Absence int

const (
	// Missing means a key or index was not present.
	Missing Absence = iota
	// Empty is the explicit null-equivalent: a key that exists but holds nil.
	Empty
)

func (a Absence) String() string {
	switch a {
	case Missing:
		return "missing"
	case Empty:
		return "empty"
	default:
		return "unknown"
	}
}

// IsAbsent reports whether v counts as absent for chain evaluation.
// nil, Missing, and Empty are absent; every other value is present.
func IsAbsent(v any) bool {
	if v == nil {
		return true
	}
	_, ok := v.(Absence)
	return ok
}

// AsRecord returns v as a record (string-keyed mapping) if it is one.
func AsRecord(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// AsSequence returns v as an ordered sequence if it is one.
func AsSequence(v any) ([]any, bool) {
	s, ok := v.([]any)
	return s, ok
}

// AsCallable returns v as a Callable if it is one. Both the named Callable
// type and its underlying function shape are accepted, so plain function
// literals stored in documents work without a conversion.
func AsCallable(v any) (Callable, bool) {
	switch fn := v.(type) {
	case Callable:
		return fn, true
	case func(args []any) (any, error):
		return fn, true
	default:
		return nil, false
	}
}

// classify normalizes raw values entering evaluation: nil becomes the Empty
// marker so every absent value carries a tag. Present values pass through.
func classify(v any) any {
	if v == nil {
		return Empty
	}
	return v
}

// absenceOf returns the marker for an absent value.
// Callers must check IsAbsent first.
func absenceOf(v any) Absence {
	if a, ok := v.(Absence); ok {
		return a
	}
	return Empty
}
