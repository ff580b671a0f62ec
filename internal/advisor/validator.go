package advisor

import (
	"fmt"
	"strings"
)

// MaxSuggestions caps the suggestions kept per conflict.
const MaxSuggestions = 3

// ValidationError describes one problem in a model answer.
type ValidationError struct {
	HintIndex int    // position of the hint in the answer
	Field     string // "index" or "suggestions"
	Message   string
}

// String returns a formatted error message.
func (e ValidationError) String() string {
	return fmt.Sprintf("Hint %d: %s - %s", e.HintIndex, e.Field, e.Message)
}

// ValidationResult holds the accepted hints and the errors of the rest.
type ValidationResult struct {
	Valid    bool
	Accepted map[int][]string
	Errors   []ValidationError
}

// FormatErrors returns the errors as feedback for the model.
func (r ValidationResult) FormatErrors() string {
	if len(r.Errors) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Your response had these errors:\n")
	for _, e := range r.Errors {
		fmt.Fprintf(&b, "- %s\n", e.String())
	}
	b.WriteString("\nPlease correct these issues and respond again with valid JSON.")
	return b.String()
}

// Validate checks hints against the number of conflicts that were asked about.
// A hint is accepted when its index is in range and not repeated and it has
// at least one non-blank suggestion. Blank suggestions are dropped and at most
// MaxSuggestions are kept. An answer with no hints at all is invalid.
func Validate(hints []Hint, conflicts int) ValidationResult {
	result := ValidationResult{Accepted: make(map[int][]string)}

	if len(hints) == 0 {
		result.Errors = append(result.Errors, ValidationError{
			HintIndex: 0,
			Field:     "hints",
			Message:   "no hints returned",
		})
		return result
	}

	for i, h := range hints {
		if h.Index < 0 || h.Index >= conflicts {
			result.Errors = append(result.Errors, ValidationError{
				HintIndex: i,
				Field:     "index",
				Message:   fmt.Sprintf("must be between 0 and %d, got %d", conflicts-1, h.Index),
			})
			continue
		}
		if _, dup := result.Accepted[h.Index]; dup {
			result.Errors = append(result.Errors, ValidationError{
				HintIndex: i,
				Field:     "index",
				Message:   fmt.Sprintf("conflict %d already answered", h.Index),
			})
			continue
		}

		var kept []string
		for _, s := range h.Suggestions {
			if s = strings.TrimSpace(s); s != "" && len(kept) < MaxSuggestions {
				kept = append(kept, s)
			}
		}
		if len(kept) == 0 {
			result.Errors = append(result.Errors, ValidationError{
				HintIndex: i,
				Field:     "suggestions",
				Message:   "at least one suggestion is required",
			})
			continue
		}
		result.Accepted[h.Index] = kept
	}

	result.Valid = len(result.Errors) == 0
	return result
}
