/*
Copyright © 2025 todoserve contributors
*/
package types

import "fmt"

// ValidationError reports bad caller input: an empty or over-length title,
// an over-length description, or an invalid priority on the update path.
// The operation aborts before any mutation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// CapacityError reports that the store is at its configured maximum record
// count. Adds fail before any mutation.
type CapacityError struct {
	Limit int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("maximum number of todos (%d) reached", e.Limit)
}

// PersistenceError reports a failed save. By the time it is returned the
// in-memory store has already applied the mutation; memory and disk diverge
// until the next successful save.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to save todos to %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// MCPError provides structured error information for MCP responses
type MCPError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewMCPError creates a new structured MCP error
func NewMCPError(code string, message string, details map[string]interface{}) *MCPError {
	return &MCPError{
		Code:    code,
		Message: message,
		Details: details,
	}
}
