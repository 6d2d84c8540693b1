/*
Copyright © 2025 todoserve contributors
*/
package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fernhold/todoserve/store"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for AI tool integration",
	Long: `Start a Model Context Protocol (MCP) server to enable AI tools like Claude Code,
Cursor, and other AI assistants to manage the todo list.

The MCP server runs over stdin/stdout and provides tools for:
- Adding new todos
- Listing and filtering todos
- Updating existing todos
- Completing, reopening, and deleting todos
- Clearing completed todos
- Statistics and health checks

Example usage with Claude Code:
  todoserve mcp

The server will run until the client disconnects.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMCPServer(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	// MCP server inherits verbose flag from root command
}

func runMCPServer(ctx context.Context) error {
	// stdout carries JSON-RPC only; everything the log package writes goes
	// to stderr by default, which is where it must stay.
	todoStore, err := GetStore()
	if err != nil {
		return fmt.Errorf("failed to initialize todo store: %w", err)
	}
	defer func() { _ = todoStore.Close() }()

	impl := &mcp.Implementation{
		Name:    "todoserve",
		Version: version,
	}

	server := mcp.NewServer(impl, &mcp.ServerOptions{})

	if err := registerMCPTools(server, todoStore); err != nil {
		return fmt.Errorf("failed to register MCP tools: %w", err)
	}
	if err := registerMCPResources(server, todoStore); err != nil {
		return fmt.Errorf("failed to register MCP resources: %w", err)
	}

	if err := server.Run(ctx, mcp.NewStdioTransport()); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}

	return nil
}

func registerMCPTools(server *mcp.Server, todoStore store.TodoStore) error {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "add-todo",
		Description: "Add a new todo item with a title, optional description, and priority. Returns the assigned ID. Invalid priorities fall back to medium.",
	}, addTodoHandler(todoStore))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list-todos",
		Description: "List todo items with optional status (all, pending, completed) and priority (all, low, medium, high) filters, sorted by priority then creation time.",
	}, listTodosHandler(todoStore))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get-todo",
		Description: "Get the full details of a specific todo item by ID, including all timestamps.",
	}, getTodoHandler(todoStore))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update-todo",
		Description: "Update an existing todo item. Only the provided fields change. Titles must stay non-empty and priorities must be valid.",
	}, updateTodoHandler(todoStore))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "complete-todo",
		Description: "Mark a todo item as completed and record its completion time. Completing an already-completed todo is a harmless no-op.",
	}, completeTodoHandler(todoStore))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "reopen-todo",
		Description: "Reopen a completed todo item, returning it to pending and clearing its completion time.",
	}, reopenTodoHandler(todoStore))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete-todo",
		Description: "Delete a todo item by ID.",
	}, deleteTodoHandler(todoStore))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "clear-completed",
		Description: "Delete all completed todo items in one batch. Reports how many were removed.",
	}, clearCompletedHandler(todoStore))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "todo-stats",
		Description: "Get statistics: totals, completion rate, and pending counts broken down by priority.",
	}, todoStatsHandler(todoStore))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "health-check",
		Description: "Check the health of the todo server: storage access, record counts, and structural integrity of the data.",
	}, healthCheckHandler(todoStore))

	return nil
}

func registerMCPResources(server *mcp.Server, todoStore store.TodoStore) error {
	server.AddResource(&mcp.Resource{
		URI:         "todoserve://todos",
		Name:        "todos",
		Description: "Access to all todos in JSON format",
		MIMEType:    "application/json",
	}, todosResourceHandler(todoStore))

	server.AddResource(&mcp.Resource{
		URI:         "todoserve://config",
		Name:        "config",
		Description: "Effective todoserve configuration",
		MIMEType:    "application/json",
	}, configResourceHandler())

	return nil
}

func logError(err error) {
	log.Printf("[ERROR] %v", err)
}

func logWarn(msg string) {
	log.Printf("[WARN] %s", msg)
}

func logInfo(msg string) {
	if viper.GetBool("verbose") {
		log.Printf("[INFO] %s", msg)
	}
}

func logToolCall(toolName string, params interface{}) {
	if viper.GetBool("verbose") {
		log.Printf("[TOOL] %s called with params: %+v", toolName, params)
	}
}
