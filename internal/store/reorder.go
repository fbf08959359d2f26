package store

// ValidatePermutation checks that next names every id in current exactly once and nothing else.
func ValidatePermutation(current []string, next []string) error {
	if len(next) != len(current) {
		return reorderError{reason: "length mismatch"}
	}
	want := make(map[string]bool, len(current))
	for _, id := range current {
		want[id] = true
	}
	seen := make(map[string]bool, len(next))
	for _, id := range next {
		if !want[id] {
			return reorderError{reason: "unknown id " + id}
		}
		if seen[id] {
			return reorderError{reason: "repeated id " + id}
		}
		seen[id] = true
	}
	return nil
}
