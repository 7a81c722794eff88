package pathwalk

// StepKind discriminates the three access step variants.
type StepKind int

const (
	KindProperty StepKind = iota // look up a name in a record
	KindIndex                    // look up a position in a sequence
	KindCall                     // invoke the current value as a callable
)

func (k StepKind) String() string {
	switch k {
	case KindProperty:
		return "property"
	case KindIndex:
		return "index"
	case KindCall:
		return "call"
	default:
		return "unknown"
	}
}

// Step is a single link in an access chain: a property lookup, an index
// lookup, or a call. Guarded marks the step as short-circuiting — if the
// value entering a guarded step is absent, evaluation stops with Missing
// instead of failing.
type Step struct {
	Kind    StepKind `json:"kind"`
	Name    string   `json:"name,omitempty"`  // for KindProperty
	Index   int      `json:"index,omitempty"` // for KindIndex
	Args    []any    `json:"args,omitempty"`  // for KindCall
	Guarded bool     `json:"guarded,omitempty"`
}

// Chain is an ordered sequence of access steps, evaluated left to right.
// An empty chain is legal and evaluates to the root unchanged.
type Chain []Step

// Property returns an unguarded property-lookup step.
func Property(name string) Step {
	return Step{Kind: KindProperty, Name: name}
}

// Index returns an unguarded index-lookup step.
func Index(i int) Step {
	return Step{Kind: KindIndex, Index: i}
}

// Call returns an unguarded call step with the given arguments.
func Call(args ...any) Step {
	return Step{Kind: KindCall, Args: args}
}

// Guard returns a copy of the step marked guarded.
func (s Step) Guard() Step {
	s.Guarded = true
	return s
}
