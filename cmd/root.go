/*
Copyright © 2025 todoserve contributors
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fernhold/todoserve/store"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// version is the application version, reported by health-check.
	version = "1.0.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "todoserve",
	Short: "todoserve is a persistent todo list with an MCP server.",
	Long: `todoserve manages a persistent todo list backed by a single JSON file.
It can be driven from the command line (add, list, done, stats) or exposed
to AI tools as a Model Context Protocol server (todoserve mcp).`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			_ = cmd.Help()
			os.Exit(0)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.todoserve.yaml or $HOME/.todoserve.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// GetStore initializes and returns the todo store from the unified config.
func GetStore() (store.TodoStore, error) {
	cfg := GetConfig()
	s := store.NewFileTodoStore()
	err := s.Initialize(store.Options{
		FilePath: cfg.Data.File,
		MaxTodos: cfg.Limits.MaxTodos,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store at %s: %w", cfg.Data.File, err)
	}
	return s, nil
}
