package errors

import (
	"fmt"
	"strings"
)

var (
	ErrNotFound     = fmt.Errorf("not found")
	ErrValidation   = fmt.Errorf("invalid input")
	ErrAccessDenied = fmt.Errorf("access denied")
	ErrConflict     = fmt.Errorf("conflict")
)

// TypeCount is the expected vs. found line count for one variant type.
type TypeCount struct {
	VariantType string
	Expected    int
	Found       int
}

// TemplateMismatchError reports a template composition failure with the
// per-type counts, so callers can name every offending type. Counts are
// sorted by variant type at construction. It unwraps to ErrValidation.
type TemplateMismatchError struct {
	TemplateName string
	Counts       []TypeCount
}

func (e *TemplateMismatchError) Error() string {
	parts := make([]string, 0, len(e.Counts))
	for _, c := range e.Counts {
		parts = append(parts, fmt.Sprintf("%s: expected %d, found %d", c.VariantType, c.Expected, c.Found))
	}
	return fmt.Sprintf("template %q composition mismatch: %s", e.TemplateName, strings.Join(parts, "; "))
}

func (e *TemplateMismatchError) Unwrap() error { return ErrValidation }
