package pathwalk

// Merge combines records left to right into a freshly allocated record.
// The result's key set is the union of all source key sets; for a key
// present in several sources, the right-most source wins. The override is
// single-level only: a nested record under a shared key replaces the
// earlier one wholesale, it is never recursively combined.
//
// Sources are never mutated, and the result never aliases a source — with
// zero sources it is an empty record, with one source a shallow copy.
// Mutating a source after the call does not affect a previously returned
// result (and vice versa) at the top level.
func Merge(sources ...map[string]any) map[string]any {
	size := 0
	for _, src := range sources {
		size += len(src)
	}
	result := make(map[string]any, size)
	for _, src := range sources {
		for k, v := range src {
			result[k] = v
		}
	}
	return result
}
