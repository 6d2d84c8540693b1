/*
Copyright © 2025 todoserve contributors
*/
package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fernhold/todoserve/store"
	"github.com/fernhold/todoserve/types"
)

func newHandlerStore(t *testing.T) store.TodoStore {
	t.Helper()
	GlobalAppConfig = types.AppConfig{
		LogLevel: "INFO",
		Data:     types.DataConfig{File: "todos.json"},
		Limits: types.LimitsConfig{
			MaxTodos:             100,
			MaxTitleLength:       200,
			MaxDescriptionLength: 1000,
		},
	}
	s := store.NewFileTodoStore()
	require.NoError(t, s.Initialize(store.Options{
		FilePath: GlobalAppConfig.Data.File,
		MaxTodos: GlobalAppConfig.Limits.MaxTodos,
		Fs:       afero.NewMemMapFs(),
	}))
	return s
}

func textOf(t *testing.T, content []mcp.Content) string {
	t.Helper()
	require.Len(t, content, 1)
	tc, ok := content[0].(*mcp.TextContent)
	require.True(t, ok, "content is not TextContent")
	return tc.Text
}

func addTodo(t *testing.T, s store.TodoStore, title, description, priority string) types.TodoResponse {
	t.Helper()
	res, err := addTodoHandler(s)(context.Background(), nil, &mcp.CallToolParamsFor[types.AddTodoParams]{
		Arguments: types.AddTodoParams{Title: title, Description: description, Priority: priority},
	})
	require.NoError(t, err)
	return res.StructuredContent
}

func requireMCPError(t *testing.T, err error, code string) *types.MCPError {
	t.Helper()
	var mErr *types.MCPError
	require.True(t, errors.As(err, &mErr), "expected MCPError, got %v", err)
	assert.Equal(t, code, mErr.Code)
	return mErr
}

func TestAddTodoHandler(t *testing.T) {
	s := newHandlerStore(t)

	res, err := addTodoHandler(s)(context.Background(), nil, &mcp.CallToolParamsFor[types.AddTodoParams]{
		Arguments: types.AddTodoParams{Title: "  Buy milk  ", Description: "2 liters", Priority: "high"},
	})
	require.NoError(t, err)

	assert.Contains(t, textOf(t, res.Content), "ID: 1")
	todo := res.StructuredContent
	assert.Equal(t, 1, todo.ID)
	assert.Equal(t, "Buy milk", todo.Title, "title should be trimmed")
	assert.Equal(t, "2 liters", todo.Description)
	assert.Equal(t, "high", todo.Priority)
	assert.Equal(t, "pending", todo.Status)
	assert.Nil(t, todo.CompletedAt)
}

func TestAddTodoHandlerLenientPriority(t *testing.T) {
	s := newHandlerStore(t)

	// An unrecognized priority falls back to medium instead of failing.
	todo := addTodo(t, s, "task", "", "urgent")
	assert.Equal(t, "medium", todo.Priority)
}

func TestAddTodoHandlerValidation(t *testing.T) {
	s := newHandlerStore(t)

	_, err := addTodoHandler(s)(context.Background(), nil, &mcp.CallToolParamsFor[types.AddTodoParams]{
		Arguments: types.AddTodoParams{Title: "   "},
	})
	mErr := requireMCPError(t, err, "VALIDATION_FAILED")
	assert.Equal(t, "title", mErr.Details["field"])

	long := make([]byte, 201)
	for i := range long {
		long[i] = 'x'
	}
	_, err = addTodoHandler(s)(context.Background(), nil, &mcp.CallToolParamsFor[types.AddTodoParams]{
		Arguments: types.AddTodoParams{Title: string(long)},
	})
	requireMCPError(t, err, "VALIDATION_FAILED")

	// Nothing was stored.
	assert.Empty(t, s.ListTodos(nil))
}

func TestAddTodoHandlerCapacity(t *testing.T) {
	s := newHandlerStore(t)
	GlobalAppConfig.Limits.MaxTodos = 1
	s = store.NewFileTodoStore()
	require.NoError(t, s.Initialize(store.Options{FilePath: "todos.json", MaxTodos: 1, Fs: afero.NewMemMapFs()}))

	addTodo(t, s, "only one", "", "")
	_, err := addTodoHandler(s)(context.Background(), nil, &mcp.CallToolParamsFor[types.AddTodoParams]{
		Arguments: types.AddTodoParams{Title: "one too many"},
	})
	mErr := requireMCPError(t, err, "CAPACITY_EXCEEDED")
	assert.Equal(t, 1, mErr.Details["limit"])

	// Capacity wins over input validation: a full store reports
	// CAPACITY_EXCEEDED even when the title would not pass either.
	_, err = addTodoHandler(s)(context.Background(), nil, &mcp.CallToolParamsFor[types.AddTodoParams]{
		Arguments: types.AddTodoParams{Title: "   "},
	})
	requireMCPError(t, err, "CAPACITY_EXCEEDED")
}

func TestListTodosHandler(t *testing.T) {
	s := newHandlerStore(t)
	addTodo(t, s, "low prio", "", "low")
	addTodo(t, s, "high prio", "", "high")
	addTodo(t, s, "mid prio", "", "medium")

	h := listTodosHandler(s)

	res, err := h(context.Background(), nil, &mcp.CallToolParamsFor[types.ListTodosParams]{
		Arguments: types.ListTodosParams{},
	})
	require.NoError(t, err)
	require.Equal(t, 3, res.StructuredContent.Count)
	// High first, low last.
	assert.Equal(t, "high prio", res.StructuredContent.Todos[0].Title)
	assert.Equal(t, "low prio", res.StructuredContent.Todos[2].Title)
	assert.Contains(t, textOf(t, res.Content), "Found 3 todo(s)")

	res, err = h(context.Background(), nil, &mcp.CallToolParamsFor[types.ListTodosParams]{
		Arguments: types.ListTodosParams{Priority: "high"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, res.StructuredContent.Count)
	assert.Equal(t, "high prio", res.StructuredContent.Todos[0].Title)

	res, err = h(context.Background(), nil, &mcp.CallToolParamsFor[types.ListTodosParams]{
		Arguments: types.ListTodosParams{Status: "completed"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.StructuredContent.Count)
	assert.Equal(t, "No todos found matching the criteria.", textOf(t, res.Content))
}

func TestGetTodoHandler(t *testing.T) {
	s := newHandlerStore(t)
	created := addTodo(t, s, "find me", "details", "high")

	res, err := getTodoHandler(s)(context.Background(), nil, &mcp.CallToolParamsFor[types.GetTodoParams]{
		Arguments: types.GetTodoParams{ID: created.ID},
	})
	require.NoError(t, err)
	assert.Contains(t, textOf(t, res.Content), "Todo #1: find me")
	assert.Equal(t, "find me", res.StructuredContent.Title)

	// A miss is a normal result, not an error.
	res, err = getTodoHandler(s)(context.Background(), nil, &mcp.CallToolParamsFor[types.GetTodoParams]{
		Arguments: types.GetTodoParams{ID: 42},
	})
	require.NoError(t, err)
	assert.Equal(t, "Todo with ID 42 not found.", textOf(t, res.Content))
}

func TestUpdateTodoHandler(t *testing.T) {
	s := newHandlerStore(t)
	created := addTodo(t, s, "original", "", "medium")

	newTitle := "renamed"
	newPriority := "high"
	res, err := updateTodoHandler(s)(context.Background(), nil, &mcp.CallToolParamsFor[types.UpdateTodoParams]{
		Arguments: types.UpdateTodoParams{ID: created.ID, Title: &newTitle, Priority: &newPriority},
	})
	require.NoError(t, err)
	assert.Contains(t, textOf(t, res.Content), "updated successfully")
	assert.Equal(t, "renamed", res.StructuredContent.Title)
	assert.Equal(t, "high", res.StructuredContent.Priority)
}

func TestUpdateTodoHandlerStrictPriority(t *testing.T) {
	s := newHandlerStore(t)
	created := addTodo(t, s, "task", "", "medium")

	// Unlike add, update rejects invalid priorities outright.
	bad := "urgent"
	_, err := updateTodoHandler(s)(context.Background(), nil, &mcp.CallToolParamsFor[types.UpdateTodoParams]{
		Arguments: types.UpdateTodoParams{ID: created.ID, Priority: &bad},
	})
	requireMCPError(t, err, "VALIDATION_FAILED")

	got, ok := s.GetTodo(created.ID)
	require.True(t, ok)
	assert.Equal(t, "medium", string(got.Priority), "failed update must not change the record")
}

func TestUpdateTodoHandlerEdgeCases(t *testing.T) {
	s := newHandlerStore(t)
	created := addTodo(t, s, "task", "", "")

	empty := "   "
	_, err := updateTodoHandler(s)(context.Background(), nil, &mcp.CallToolParamsFor[types.UpdateTodoParams]{
		Arguments: types.UpdateTodoParams{ID: created.ID, Title: &empty},
	})
	requireMCPError(t, err, "VALIDATION_FAILED")

	// No fields provided.
	res, err := updateTodoHandler(s)(context.Background(), nil, &mcp.CallToolParamsFor[types.UpdateTodoParams]{
		Arguments: types.UpdateTodoParams{ID: created.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "No changes were made.", textOf(t, res.Content))

	title := "whatever"
	res, err = updateTodoHandler(s)(context.Background(), nil, &mcp.CallToolParamsFor[types.UpdateTodoParams]{
		Arguments: types.UpdateTodoParams{ID: 42, Title: &title},
	})
	require.NoError(t, err)
	assert.Equal(t, "Todo with ID 42 not found.", textOf(t, res.Content))
}

func TestCompleteAndReopenHandlers(t *testing.T) {
	s := newHandlerStore(t)
	created := addTodo(t, s, "finish me", "", "")

	complete := completeTodoHandler(s)
	reopen := reopenTodoHandler(s)

	res, err := complete(context.Background(), nil, &mcp.CallToolParamsFor[types.CompleteTodoParams]{
		Arguments: types.CompleteTodoParams{ID: created.ID},
	})
	require.NoError(t, err)
	assert.Contains(t, textOf(t, res.Content), "marked as completed")
	assert.Equal(t, "completed", res.StructuredContent.Status)
	require.NotNil(t, res.StructuredContent.CompletedAt)
	firstCompletedAt := *res.StructuredContent.CompletedAt

	// Completing again reports the state without touching it.
	res, err = complete(context.Background(), nil, &mcp.CallToolParamsFor[types.CompleteTodoParams]{
		Arguments: types.CompleteTodoParams{ID: created.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "Todo 1 is already completed.", textOf(t, res.Content))
	require.NotNil(t, res.StructuredContent.CompletedAt)
	assert.Equal(t, firstCompletedAt, *res.StructuredContent.CompletedAt)

	res2, err := reopen(context.Background(), nil, &mcp.CallToolParamsFor[types.ReopenTodoParams]{
		Arguments: types.ReopenTodoParams{ID: created.ID},
	})
	require.NoError(t, err)
	assert.Contains(t, textOf(t, res2.Content), "reopened successfully")
	assert.Equal(t, "pending", res2.StructuredContent.Status)
	assert.Nil(t, res2.StructuredContent.CompletedAt)

	res2, err = reopen(context.Background(), nil, &mcp.CallToolParamsFor[types.ReopenTodoParams]{
		Arguments: types.ReopenTodoParams{ID: created.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "Todo 1 is already pending.", textOf(t, res2.Content))

	// Missing IDs are normal results on both paths.
	res, err = complete(context.Background(), nil, &mcp.CallToolParamsFor[types.CompleteTodoParams]{
		Arguments: types.CompleteTodoParams{ID: 42},
	})
	require.NoError(t, err)
	assert.Equal(t, "Todo with ID 42 not found.", textOf(t, res.Content))
}

func TestDeleteTodoHandler(t *testing.T) {
	s := newHandlerStore(t)
	created := addTodo(t, s, "delete me", "", "")

	h := deleteTodoHandler(s)

	res, err := h(context.Background(), nil, &mcp.CallToolParamsFor[types.DeleteTodoParams]{
		Arguments: types.DeleteTodoParams{ID: created.ID},
	})
	require.NoError(t, err)
	assert.True(t, res.StructuredContent.Success)
	assert.Equal(t, created.ID, res.StructuredContent.TodoID)
	assert.Empty(t, s.ListTodos(nil))

	res, err = h(context.Background(), nil, &mcp.CallToolParamsFor[types.DeleteTodoParams]{
		Arguments: types.DeleteTodoParams{ID: created.ID},
	})
	require.NoError(t, err)
	assert.False(t, res.StructuredContent.Success)
	assert.Contains(t, textOf(t, res.Content), "not found")
}

func TestClearCompletedHandler(t *testing.T) {
	s := newHandlerStore(t)
	h := clearCompletedHandler(s)

	res, err := h(context.Background(), nil, &mcp.CallToolParamsFor[types.ClearCompletedParams]{})
	require.NoError(t, err)
	assert.Equal(t, 0, res.StructuredContent.Cleared)
	assert.Equal(t, "No completed todos to clear.", textOf(t, res.Content))

	addTodo(t, s, "keep", "", "")
	done := addTodo(t, s, "done", "", "")
	_, err = completeTodoHandler(s)(context.Background(), nil, &mcp.CallToolParamsFor[types.CompleteTodoParams]{
		Arguments: types.CompleteTodoParams{ID: done.ID},
	})
	require.NoError(t, err)

	res, err = h(context.Background(), nil, &mcp.CallToolParamsFor[types.ClearCompletedParams]{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.StructuredContent.Cleared)
	assert.Equal(t, "Cleared 1 completed todo(s).", textOf(t, res.Content))
	assert.Len(t, s.ListTodos(nil), 1)
}

func TestTodoStatsHandler(t *testing.T) {
	s := newHandlerStore(t)
	h := todoStatsHandler(s)

	res, err := h(context.Background(), nil, &mcp.CallToolParamsFor[types.TodoStatsParams]{})
	require.NoError(t, err)
	assert.Equal(t, "No todos found.", textOf(t, res.Content))
	assert.Equal(t, 0, res.StructuredContent.Total)
	assert.Zero(t, res.StructuredContent.CompletionRate)

	addTodo(t, s, "urgent thing", "", "high")
	addTodo(t, s, "normal thing", "", "")
	done := addTodo(t, s, "done thing", "", "low")
	_, err = completeTodoHandler(s)(context.Background(), nil, &mcp.CallToolParamsFor[types.CompleteTodoParams]{
		Arguments: types.CompleteTodoParams{ID: done.ID},
	})
	require.NoError(t, err)

	res, err = h(context.Background(), nil, &mcp.CallToolParamsFor[types.TodoStatsParams]{})
	require.NoError(t, err)
	stats := res.StructuredContent
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Pending)
	assert.Equal(t, 1, stats.Completed)
	assert.InDelta(t, 33.3, stats.CompletionRate, 0.1)
	assert.Equal(t, 1, stats.PendingByPriority.High)
	assert.Equal(t, 1, stats.PendingByPriority.Medium)
	assert.Equal(t, 0, stats.PendingByPriority.Low)
	assert.Contains(t, textOf(t, res.Content), "Completion rate: 33.3%")
}

func TestHealthCheckHandler(t *testing.T) {
	s := newHandlerStore(t)
	addTodo(t, s, "alive", "", "")

	res, err := healthCheckHandler(s)(context.Background(), nil, &mcp.CallToolParamsFor[types.HealthCheckParams]{})
	require.NoError(t, err)

	health := res.StructuredContent
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, version, health.Version)
	assert.Equal(t, 1, health.TotalTodos)
	assert.Equal(t, 1, health.ValidTodos)
	assert.Equal(t, "todos.json", health.DataFile)
	assert.NotEmpty(t, health.Timestamp)
	assert.Empty(t, health.Issues)
	assert.Contains(t, textOf(t, res.Content), `"status": "healthy"`)
}
