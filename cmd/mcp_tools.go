/*
Copyright © 2025 todoserve contributors
*/
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fernhold/todoserve/models"
	"github.com/fernhold/todoserve/store"
	"github.com/fernhold/todoserve/types"
)

// addTodoHandler creates a new todo. Invalid priorities are substituted with
// medium here; the update handler rejects them instead.
func addTodoHandler(todoStore store.TodoStore) mcp.ToolHandlerFor[types.AddTodoParams, types.TodoResponse] {
	return func(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[types.AddTodoParams]) (*mcp.CallToolResultFor[types.TodoResponse], error) {
		args := params.Arguments
		logToolCall("add-todo", args)
		cfg := GetConfig()

		// A full store is reported before the input is even looked at. The
		// store re-checks under its lock when the record is created.
		if len(todoStore.ListTodos(nil)) >= cfg.Limits.MaxTodos {
			return nil, WrapStoreError(&types.CapacityError{Limit: cfg.Limits.MaxTodos}, "add")
		}

		title, err := models.ValidateText(args.Title, cfg.Limits.MaxTitleLength, "Title")
		if err != nil {
			return nil, WrapStoreError(err, "add")
		}
		if title == "" {
			return nil, NewMCPError("VALIDATION_FAILED", "Title cannot be empty", map[string]interface{}{
				"field": "title",
			})
		}

		description, err := models.ValidateText(args.Description, cfg.Limits.MaxDescriptionLength, "Description")
		if err != nil {
			return nil, WrapStoreError(err, "add")
		}

		priority := models.PriorityMedium
		if strings.TrimSpace(args.Priority) != "" {
			p, ok := models.PriorityOrDefault(args.Priority)
			if !ok {
				logWarn(fmt.Sprintf("invalid priority %q, defaulting to %q", args.Priority, models.PriorityMedium))
			}
			priority = p
		}

		created, err := todoStore.CreateTodo(models.Todo{
			Title:       title,
			Description: description,
			Priority:    priority,
		})
		if err != nil {
			return nil, WrapStoreError(err, "add")
		}

		logInfo(fmt.Sprintf("added todo %d: %s", created.ID, created.Title))

		return &mcp.CallToolResultFor[types.TodoResponse]{
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Todo added successfully with ID: %d", created.ID)},
			},
			StructuredContent: todoToResponse(created),
		}, nil
	}
}

// listTodosHandler lists todos with optional status and priority filters.
func listTodosHandler(todoStore store.TodoStore) mcp.ToolHandlerFor[types.ListTodosParams, types.TodoListResponse] {
	return func(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[types.ListTodosParams]) (*mcp.CallToolResultFor[types.TodoListResponse], error) {
		args := params.Arguments
		logToolCall("list-todos", args)

		status := args.Status
		if status == "" {
			status = "all"
		}
		priority := args.Priority
		if priority == "" {
			priority = "all"
		}

		filterFn := func(t models.Todo) bool {
			if status != "all" && string(t.Status) != status {
				return false
			}
			if priority != "all" && string(t.Priority) != priority {
				return false
			}
			return true
		}

		todos := todoStore.ListTodos(filterFn)

		responses := make([]types.TodoResponse, len(todos))
		for i, t := range todos {
			responses[i] = todoToResponse(t)
		}
		response := types.TodoListResponse{Todos: responses, Count: len(responses)}

		if len(todos) == 0 {
			return &mcp.CallToolResultFor[types.TodoListResponse]{
				Content: []mcp.Content{
					&mcp.TextContent{Text: "No todos found matching the criteria."},
				},
				StructuredContent: response,
			}, nil
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Found %d todo(s):\n\n", len(todos))
		for _, t := range todos {
			b.WriteString(formatTodoLine(t))
		}

		logInfo(fmt.Sprintf("listed %d todos", len(todos)))

		return &mcp.CallToolResultFor[types.TodoListResponse]{
			Content: []mcp.Content{
				&mcp.TextContent{Text: b.String()},
			},
			StructuredContent: response,
		}, nil
	}
}

// getTodoHandler retrieves a specific todo. A missing ID is a normal result.
func getTodoHandler(todoStore store.TodoStore) mcp.ToolHandlerFor[types.GetTodoParams, types.TodoResponse] {
	return func(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[types.GetTodoParams]) (*mcp.CallToolResultFor[types.TodoResponse], error) {
		args := params.Arguments
		logToolCall("get-todo", args)

		todo, ok := todoStore.GetTodo(args.ID)
		if !ok {
			return &mcp.CallToolResultFor[types.TodoResponse]{
				Content: []mcp.Content{
					&mcp.TextContent{Text: fmt.Sprintf("Todo with ID %d not found.", args.ID)},
				},
			}, nil
		}

		return &mcp.CallToolResultFor[types.TodoResponse]{
			Content: []mcp.Content{
				&mcp.TextContent{Text: formatTodoDetail(todo)},
			},
			StructuredContent: todoToResponse(todo),
		}, nil
	}
}

// updateTodoHandler updates an existing todo. Only provided fields change;
// a provided title must be non-empty and a provided priority must be valid.
func updateTodoHandler(todoStore store.TodoStore) mcp.ToolHandlerFor[types.UpdateTodoParams, types.TodoResponse] {
	return func(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[types.UpdateTodoParams]) (*mcp.CallToolResultFor[types.TodoResponse], error) {
		args := params.Arguments
		logToolCall("update-todo", args)
		cfg := GetConfig()

		var upd store.TodoUpdate

		if args.Title != nil {
			title, err := models.ValidateText(*args.Title, cfg.Limits.MaxTitleLength, "Title")
			if err != nil {
				return nil, WrapStoreError(err, "update")
			}
			if title == "" {
				return nil, NewMCPError("VALIDATION_FAILED", "Title cannot be empty", map[string]interface{}{
					"field": "title",
				})
			}
			upd.Title = &title
		}

		if args.Description != nil {
			description, err := models.ValidateText(*args.Description, cfg.Limits.MaxDescriptionLength, "Description")
			if err != nil {
				return nil, WrapStoreError(err, "update")
			}
			upd.Description = &description
		}

		if args.Priority != nil {
			// Strict on the update path: no silent fallback to medium.
			p, err := models.ParsePriority(*args.Priority)
			if err != nil {
				return nil, WrapStoreError(err, "update")
			}
			upd.Priority = &p
		}

		if upd.Empty() {
			if _, ok := todoStore.GetTodo(args.ID); !ok {
				return notFoundTodoResult(args.ID), nil
			}
			return &mcp.CallToolResultFor[types.TodoResponse]{
				Content: []mcp.Content{
					&mcp.TextContent{Text: "No changes were made."},
				},
			}, nil
		}

		updated, found, err := todoStore.UpdateTodo(args.ID, upd)
		if !found {
			return notFoundTodoResult(args.ID), nil
		}
		if err != nil {
			return nil, WrapStoreError(err, "update")
		}

		logInfo(fmt.Sprintf("updated todo %d", updated.ID))

		return &mcp.CallToolResultFor[types.TodoResponse]{
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Todo %d updated successfully.", updated.ID)},
			},
			StructuredContent: todoToResponse(updated),
		}, nil
	}
}

// completeTodoHandler marks a todo as completed.
func completeTodoHandler(todoStore store.TodoStore) mcp.ToolHandlerFor[types.CompleteTodoParams, types.TodoResponse] {
	return func(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[types.CompleteTodoParams]) (*mcp.CallToolResultFor[types.TodoResponse], error) {
		args := params.Arguments
		logToolCall("complete-todo", args)

		current, ok := todoStore.GetTodo(args.ID)
		if !ok {
			return notFoundTodoResult(args.ID), nil
		}
		if current.Status == models.StatusCompleted {
			return &mcp.CallToolResultFor[types.TodoResponse]{
				Content: []mcp.Content{
					&mcp.TextContent{Text: fmt.Sprintf("Todo %d is already completed.", args.ID)},
				},
				StructuredContent: todoToResponse(current),
			}, nil
		}

		completed, _, err := todoStore.CompleteTodo(args.ID)
		if err != nil {
			return nil, WrapStoreError(err, "complete")
		}

		logInfo(fmt.Sprintf("completed todo %d", completed.ID))

		return &mcp.CallToolResultFor[types.TodoResponse]{
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Todo %d marked as completed! ✅", completed.ID)},
			},
			StructuredContent: todoToResponse(completed),
		}, nil
	}
}

// reopenTodoHandler reopens a completed todo.
func reopenTodoHandler(todoStore store.TodoStore) mcp.ToolHandlerFor[types.ReopenTodoParams, types.TodoResponse] {
	return func(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[types.ReopenTodoParams]) (*mcp.CallToolResultFor[types.TodoResponse], error) {
		args := params.Arguments
		logToolCall("reopen-todo", args)

		current, ok := todoStore.GetTodo(args.ID)
		if !ok {
			return notFoundTodoResult(args.ID), nil
		}
		if current.Status == models.StatusPending {
			return &mcp.CallToolResultFor[types.TodoResponse]{
				Content: []mcp.Content{
					&mcp.TextContent{Text: fmt.Sprintf("Todo %d is already pending.", args.ID)},
				},
				StructuredContent: todoToResponse(current),
			}, nil
		}

		reopened, _, err := todoStore.ReopenTodo(args.ID)
		if err != nil {
			return nil, WrapStoreError(err, "reopen")
		}

		logInfo(fmt.Sprintf("reopened todo %d", reopened.ID))

		return &mcp.CallToolResultFor[types.TodoResponse]{
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Todo %d reopened successfully! ⏳", reopened.ID)},
			},
			StructuredContent: todoToResponse(reopened),
		}, nil
	}
}

// deleteTodoHandler deletes a todo.
func deleteTodoHandler(todoStore store.TodoStore) mcp.ToolHandlerFor[types.DeleteTodoParams, types.DeleteTodoResponse] {
	return func(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[types.DeleteTodoParams]) (*mcp.CallToolResultFor[types.DeleteTodoResponse], error) {
		args := params.Arguments
		logToolCall("delete-todo", args)

		found, err := todoStore.DeleteTodo(args.ID)
		if !found {
			return &mcp.CallToolResultFor[types.DeleteTodoResponse]{
				Content: []mcp.Content{
					&mcp.TextContent{Text: fmt.Sprintf("Todo with ID %d not found.", args.ID)},
				},
				StructuredContent: types.DeleteTodoResponse{
					Success: false,
					TodoID:  args.ID,
					Message: fmt.Sprintf("Todo with ID %d not found.", args.ID),
				},
			}, nil
		}
		if err != nil {
			return nil, WrapStoreError(err, "delete")
		}

		logInfo(fmt.Sprintf("deleted todo %d", args.ID))

		return &mcp.CallToolResultFor[types.DeleteTodoResponse]{
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Todo %d deleted successfully.", args.ID)},
			},
			StructuredContent: types.DeleteTodoResponse{
				Success: true,
				TodoID:  args.ID,
				Message: fmt.Sprintf("Todo %d deleted successfully.", args.ID),
			},
		}, nil
	}
}

// clearCompletedHandler deletes all completed todos in one batch.
func clearCompletedHandler(todoStore store.TodoStore) mcp.ToolHandlerFor[types.ClearCompletedParams, types.ClearCompletedResponse] {
	return func(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[types.ClearCompletedParams]) (*mcp.CallToolResultFor[types.ClearCompletedResponse], error) {
		logToolCall("clear-completed", params.Arguments)

		cleared, err := todoStore.ClearCompleted()
		if err != nil {
			return nil, WrapStoreError(err, "clear-completed")
		}

		text := fmt.Sprintf("Cleared %d completed todo(s).", cleared)
		if cleared == 0 {
			text = "No completed todos to clear."
		}

		logInfo(fmt.Sprintf("cleared %d completed todos", cleared))

		return &mcp.CallToolResultFor[types.ClearCompletedResponse]{
			Content: []mcp.Content{
				&mcp.TextContent{Text: text},
			},
			StructuredContent: types.ClearCompletedResponse{Cleared: cleared},
		}, nil
	}
}

// todoStatsHandler reports statistics about the store.
func todoStatsHandler(todoStore store.TodoStore) mcp.ToolHandlerFor[types.TodoStatsParams, types.StatsResponse] {
	return func(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[types.TodoStatsParams]) (*mcp.CallToolResultFor[types.StatsResponse], error) {
		logToolCall("todo-stats", params.Arguments)

		stats := buildStats(todoStore.ListTodos(nil))

		text := formatStats(stats)
		if stats.Total == 0 {
			text = "No todos found."
		}

		return &mcp.CallToolResultFor[types.StatsResponse]{
			Content: []mcp.Content{
				&mcp.TextContent{Text: text},
			},
			StructuredContent: stats,
		}, nil
	}
}

// healthCheckHandler reports server health. Failures are embedded in the
// result with status "unhealthy" rather than returned as errors.
func healthCheckHandler(todoStore store.TodoStore) mcp.ToolHandlerFor[types.HealthCheckParams, types.HealthResponse] {
	return func(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[types.HealthCheckParams]) (*mcp.CallToolResultFor[types.HealthResponse], error) {
		logToolCall("health-check", params.Arguments)

		resp := types.HealthResponse{
			Status:    "healthy",
			Version:   version,
			DataFile:  todoStore.FilePath(),
			Timestamp: time.Now().Format(time.RFC3339),
		}

		if err := todoStore.EnsureStorageDir(); err != nil {
			logError(fmt.Errorf("health check failed: %w", err))
			resp.Status = "unhealthy"
			resp.Error = err.Error()
			return healthResult(resp), nil
		}

		todos := todoStore.ListTodos(nil)
		resp.TotalTodos = len(todos)
		for _, t := range todos {
			if t.HasRequiredFields() {
				resp.ValidTodos++
			}
		}
		if resp.ValidTodos != resp.TotalTodos {
			resp.Status = "warning"
			resp.Issues = fmt.Sprintf("%d corrupted todos found", resp.TotalTodos-resp.ValidTodos)
		}

		logInfo(fmt.Sprintf("health check completed: %s", resp.Status))
		return healthResult(resp), nil
	}
}

func healthResult(resp types.HealthResponse) *mcp.CallToolResultFor[types.HealthResponse] {
	text, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		text = []byte(resp.Status)
	}
	return &mcp.CallToolResultFor[types.HealthResponse]{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(text)},
		},
		StructuredContent: resp,
	}
}

func notFoundTodoResult(id int) *mcp.CallToolResultFor[types.TodoResponse] {
	return &mcp.CallToolResultFor[types.TodoResponse]{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("Todo with ID %d not found.", id)},
		},
	}
}
