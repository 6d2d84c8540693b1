/*
Copyright © 2025 todoserve contributors
*/
package types

// MCP Tool Parameter Types

// AddTodoParams for creating a new todo
type AddTodoParams struct {
	Title       string `json:"title" mcp:"Todo title (required)"`
	Description string `json:"description,omitempty" mcp:"Optional description"`
	Priority    string `json:"priority,omitempty" mcp:"Priority: low, medium, high (defaults to medium)"`
}

// ListTodosParams for listing and filtering todos
type ListTodosParams struct {
	Status   string `json:"status,omitempty" mcp:"Filter by status: all, pending, completed"`
	Priority string `json:"priority,omitempty" mcp:"Filter by priority: all, low, medium, high"`
}

// GetTodoParams for retrieving a specific todo
type GetTodoParams struct {
	ID int `json:"id" mcp:"Todo ID to retrieve (required)"`
}

// UpdateTodoParams for updating an existing todo. Pointer fields distinguish
// "not provided" from an explicit empty value; only provided fields change.
type UpdateTodoParams struct {
	ID          int     `json:"id" mcp:"Todo ID to update (required)"`
	Title       *string `json:"title,omitempty" mcp:"New title (must be non-empty if provided)"`
	Description *string `json:"description,omitempty" mcp:"New description"`
	Priority    *string `json:"priority,omitempty" mcp:"New priority: low, medium, high"`
}

// CompleteTodoParams for marking a todo as completed
type CompleteTodoParams struct {
	ID int `json:"id" mcp:"Todo ID to complete (required)"`
}

// ReopenTodoParams for reopening a completed todo
type ReopenTodoParams struct {
	ID int `json:"id" mcp:"Todo ID to reopen (required)"`
}

// DeleteTodoParams for deleting a todo
type DeleteTodoParams struct {
	ID int `json:"id" mcp:"Todo ID to delete (required)"`
}

// ClearCompletedParams for removing all completed todos
type ClearCompletedParams struct{}

// TodoStatsParams for retrieving store statistics
type TodoStatsParams struct{}

// HealthCheckParams for the server health check
type HealthCheckParams struct{}

// MCP Response Types

// TodoResponse represents a todo in MCP responses
type TodoResponse struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
	CompletedAt *string `json:"completed_at"`
}

// TodoListResponse for list operations
type TodoListResponse struct {
	Todos []TodoResponse `json:"todos"`
	Count int            `json:"count"`
}

// DeleteTodoResponse for delete operations
type DeleteTodoResponse struct {
	Success bool   `json:"success"`
	TodoID  int    `json:"todo_id"`
	Message string `json:"message"`
}

// ClearCompletedResponse reports how many records a clear removed
type ClearCompletedResponse struct {
	Cleared int `json:"cleared"`
}

// PendingByPriority breaks pending counts down by priority
type PendingByPriority struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// StatsResponse summarizes the store
type StatsResponse struct {
	Total             int               `json:"total"`
	Pending           int               `json:"pending"`
	Completed         int               `json:"completed"`
	CompletionRate    float64           `json:"completion_rate"`
	PendingByPriority PendingByPriority `json:"pending_by_priority"`
}

// HealthResponse reports server health. Failures are embedded in the result
// rather than raised, so callers always get a structured status back.
type HealthResponse struct {
	Status     string `json:"status"` // healthy, warning, unhealthy
	Version    string `json:"version"`
	TotalTodos int    `json:"total_todos"`
	ValidTodos int    `json:"valid_todos"`
	DataFile   string `json:"data_file"`
	Timestamp  string `json:"timestamp"`
	Issues     string `json:"issues,omitempty"`
	Error      string `json:"error,omitempty"`
}
