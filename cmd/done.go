/*
Copyright © 2025 todoserve contributors
*/
package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fernhold/todoserve/models"
)

// doneCmd represents the done command
var doneCmd = &cobra.Command{
	Use:   "done [id]",
	Short: "Mark a todo as completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid todo ID %q", args[0])
		}

		todoStore, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = todoStore.Close() }()

		current, ok := todoStore.GetTodo(id)
		if !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "Todo with ID %d not found.\n", id)
			return nil
		}
		if current.Status == models.StatusCompleted {
			fmt.Fprintf(cmd.OutOrStdout(), "Todo %d is already completed.\n", id)
			return nil
		}

		completed, _, err := todoStore.CompleteTodo(id)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Todo %d marked as completed! ✅ (%s)\n", completed.ID, completed.Title)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doneCmd)
}
