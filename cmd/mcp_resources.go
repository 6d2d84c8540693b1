/*
Copyright © 2025 todoserve contributors
*/
package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fernhold/todoserve/store"
	"github.com/fernhold/todoserve/types"
)

// todosResourceHandler serves the full todo list as a JSON resource.
func todosResourceHandler(todoStore store.TodoStore) mcp.ResourceHandler {
	return func(ctx context.Context, ss *mcp.ServerSession, params *mcp.ReadResourceParams) (*mcp.ReadResourceResult, error) {
		todos := todoStore.ListTodos(nil)

		responses := make([]types.TodoResponse, len(todos))
		for i, t := range todos {
			responses[i] = todoToResponse(t)
		}

		data, err := json.MarshalIndent(responses, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal todos: %w", err)
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      params.URI,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}

// configResourceHandler exposes the effective configuration. Useful for
// debugging which file and limits a connected client is actually using.
func configResourceHandler() mcp.ResourceHandler {
	return func(ctx context.Context, ss *mcp.ServerSession, params *mcp.ReadResourceParams) (*mcp.ReadResourceResult, error) {
		data, err := json.MarshalIndent(GetConfig(), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal config: %w", err)
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      params.URI,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}
