package catalog

import (
	"strings"
	"unicode"
)

// ValidName reports whether name can be used as an exercise: it must contain
// a letter and no control characters.
func ValidName(name string) bool {
	hasLetter := false
	for _, r := range name {
		if unicode.IsControl(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

// Dedupe drops exercises whose name repeats an earlier one, ignoring case.
func Dedupe(exercises []Exercise) []Exercise {
	seen := make(map[string]struct{}, len(exercises))
	out := make([]Exercise, 0, len(exercises))
	for _, ex := range exercises {
		key := strings.ToLower(ex.Name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, ex)
	}
	return out
}
