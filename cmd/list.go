/*
Copyright © 2025 todoserve contributors
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fernhold/todoserve/models"
)

var (
	listStatus   string
	listPriority string
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List todos",
	Long: `List todos sorted by priority (high first) and then creation time.
Both filters accept "all" to disable them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		todoStore, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = todoStore.Close() }()

		todos := todoStore.ListTodos(func(t models.Todo) bool {
			if listStatus != "all" && string(t.Status) != listStatus {
				return false
			}
			if listPriority != "all" && string(t.Priority) != listPriority {
				return false
			}
			return true
		})

		if len(todos) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No todos found matching the criteria.")
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Found %d todo(s):\n\n", len(todos))
		for _, t := range todos {
			fmt.Fprint(cmd.OutOrStdout(), formatTodoLine(t))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listStatus, "status", "s", "all", "filter by status (all, pending, completed)")
	listCmd.Flags().StringVarP(&listPriority, "priority", "p", "all", "filter by priority (all, low, medium, high)")
}
