/*
Copyright © 2025 todoserve contributors
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show todo statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		todoStore, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = todoStore.Close() }()

		stats := buildStats(todoStore.ListTodos(nil))
		if stats.Total == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No todos found.")
			return nil
		}

		fmt.Fprint(cmd.OutOrStdout(), formatStats(stats))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
