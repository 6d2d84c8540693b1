package models

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fernhold/todoserve/types"
)

// ValidateText trims leading and trailing whitespace and enforces the
// configured maximum length, counted in characters rather than bytes.
// An empty value is allowed at this layer; callers that require a
// non-empty value (titles) check after trimming.
func ValidateText(value string, maxLength int, field string) (string, error) {
	value = strings.TrimSpace(value)
	if utf8.RuneCountInString(value) > maxLength {
		return "", &types.ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s exceeds maximum length of %d characters", field, maxLength),
		}
	}
	return value, nil
}

// ParsePriority converts a string to a TodoPriority, failing on anything
// outside the three valid values. This is the strict path used by update.
func ParsePriority(value string) (TodoPriority, error) {
	switch TodoPriority(strings.TrimSpace(value)) {
	case PriorityLow:
		return PriorityLow, nil
	case PriorityMedium:
		return PriorityMedium, nil
	case PriorityHigh:
		return PriorityHigh, nil
	}
	return "", &types.ValidationError{
		Field:   "priority",
		Message: "priority must be one of: low, medium, high",
	}
}

// PriorityOrDefault converts a string to a TodoPriority, substituting medium
// for anything invalid. The second return value is false when the default was
// substituted so the caller can log a warning. This is the lenient path used
// by add; update uses ParsePriority and fails hard instead.
func PriorityOrDefault(value string) (TodoPriority, bool) {
	if p, err := ParsePriority(value); err == nil {
		return p, true
	}
	return PriorityMedium, false
}
