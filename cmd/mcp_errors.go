/*
Copyright © 2025 todoserve contributors
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/fernhold/todoserve/types"
)

// NewMCPError is an alias for types.NewMCPError
var NewMCPError = types.NewMCPError

// WrapStoreError maps the store's error taxonomy onto structured MCP error
// codes. Not-found never arrives here; lookups report it as a value.
func WrapStoreError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var vErr *types.ValidationError
	if errors.As(err, &vErr) {
		return NewMCPError("VALIDATION_FAILED", vErr.Error(), map[string]interface{}{
			"operation": operation,
			"field":     vErr.Field,
		})
	}

	var cErr *types.CapacityError
	if errors.As(err, &cErr) {
		return NewMCPError("CAPACITY_EXCEEDED", cErr.Error(), map[string]interface{}{
			"operation": operation,
			"limit":     cErr.Limit,
		})
	}

	var pErr *types.PersistenceError
	if errors.As(err, &pErr) {
		// The in-memory change was applied; only the save failed.
		return NewMCPError("PERSISTENCE_FAILED", pErr.Error(), map[string]interface{}{
			"operation": operation,
			"path":      pErr.Path,
		})
	}

	return NewMCPError("OPERATION_FAILED", fmt.Sprintf("%s operation failed: %v", operation, err), map[string]interface{}{
		"operation": operation,
	})
}
