/*
Copyright © 2025 todoserve contributors
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fernhold/todoserve/models"
)

var (
	addDescription string
	addPriority    string
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new todo",
	Long: `Add a new todo with the given title. The description and priority are
optional; an unrecognized priority falls back to medium.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		title, err := models.ValidateText(strings.Join(args, " "), cfg.Limits.MaxTitleLength, "Title")
		if err != nil {
			return err
		}
		if title == "" {
			return fmt.Errorf("title cannot be empty")
		}

		description, err := models.ValidateText(addDescription, cfg.Limits.MaxDescriptionLength, "Description")
		if err != nil {
			return err
		}

		priority, ok := models.PriorityOrDefault(addPriority)
		if !ok && strings.TrimSpace(addPriority) != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Unknown priority %q, using %s.\n", addPriority, priority)
		}

		todoStore, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = todoStore.Close() }()

		created, err := todoStore.CreateTodo(models.Todo{
			Title:       title,
			Description: description,
			Priority:    priority,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Todo added successfully with ID: %d\n", created.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "optional description")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "medium", "priority (low, medium, high)")
}
