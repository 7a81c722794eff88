package pathwalk

import (
	"fmt"
	"sort"
)

// Evaluate walks the chain against root, left to right, and returns the
// terminal value.
//
// Absence is handled per step: if the value entering a guarded step is
// absent, evaluation halts immediately and returns Missing — no later step
// runs, including call steps with side effects. If the value entering an
// unguarded step is absent, Evaluate fails with *InvalidAccessError. A step
// applied to a present value of the wrong shape (property on a non-record,
// index on a non-sequence, call on a non-callable) returns Missing when
// guarded and fails with *TypeMismatchError when not.
//
// Evaluate never returns raw nil: absent results come back as the Missing
// or Empty marker, so callers can tell why a chain stopped. Inputs are
// never mutated; concurrent calls are safe.
func Evaluate(root any, chain Chain) (any, error) {
	current := classify(root)
	for i, step := range chain {
		if IsAbsent(current) {
			if step.Guarded {
				return Missing, nil
			}
			return nil, &InvalidAccessError{Step: i, Kind: step.Kind, Why: absenceOf(current)}
		}
		next, err := applyStep(current, step, i)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}

// applyStep applies one step to a present value. Absence checks have
// already happened; this only decides shape mismatches and performs the
// actual lookup or call.
func applyStep(current any, step Step, i int) (any, error) {
	switch step.Kind {
	case KindProperty:
		rec, ok := AsRecord(current)
		if !ok {
			if step.Guarded {
				return Missing, nil
			}
			return nil, &TypeMismatchError{Step: i, Kind: step.Kind, Value: current}
		}
		v, exists := rec[step.Name]
		if !exists {
			return Missing, nil
		}
		return classify(v), nil

	case KindIndex:
		seq, ok := AsSequence(current)
		if !ok {
			if step.Guarded {
				return Missing, nil
			}
			return nil, &TypeMismatchError{Step: i, Kind: step.Kind, Value: current}
		}
		// Out of range (including negative) is absence, not a type error.
		if step.Index < 0 || step.Index >= len(seq) {
			return Missing, nil
		}
		return classify(seq[step.Index]), nil

	case KindCall:
		fn, ok := AsCallable(current)
		if !ok {
			if step.Guarded {
				return Missing, nil
			}
			return nil, &TypeMismatchError{Step: i, Kind: step.Kind, Value: current}
		}
		out, err := fn(step.Args)
		if err != nil {
			return nil, fmt.Errorf("call at step %d: %w", i, err)
		}
		return classify(out), nil

	default:
		return nil, fmt.Errorf("unknown step kind %d", step.Kind)
	}
}

// Project evaluates several chains against one root and assembles the
// results into a new record, one entry per field name. Fields whose chain
// short-circuits to Missing are omitted from the result; fields that
// resolve to Empty are stored as nil. The first field whose chain fails
// aborts the projection; fields are evaluated in sorted name order so the
// reported error is deterministic.
func Project(root any, fields map[string]Chain) (map[string]any, error) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make(map[string]any, len(fields))
	for _, name := range names {
		v, err := Evaluate(root, fields[name])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		switch v {
		case Missing:
			// short-circuited: no entry
		case Empty:
			result[name] = nil
		default:
			result[name] = v
		}
	}
	return result, nil
}

// ProjectStrings is Project with textual path expressions. Each path is
// parsed with ParsePath; a parse failure is reported with its field name.
func ProjectStrings(root any, fields map[string]string) (map[string]any, error) {
	chains := make(map[string]Chain, len(fields))
	for name, path := range fields {
		chain, err := ParsePath(path)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		chains[name] = chain
	}
	return Project(root, chains)
}
