/*
Copyright © 2025 todoserve contributors
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fernhold/todoserve/types"
)

const (
	configName = ".todoserve"
	envPrefix  = "TODO"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

// validate is a single validator instance; it caches struct info.
var validate = validator.New()

// InitConfig reads in config file and ENV variables if set.
func InitConfig() {
	// Load .env file first if present. Missing .env is fine.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix) // e.g. TODO_VERBOSE
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// The original server's environment variables keep working as-is.
	_ = viper.BindEnv("data.file", "TODO_FILE")
	_ = viper.BindEnv("logLevel", "LOG_LEVEL")
	_ = viper.BindEnv("limits.maxTodos", "MAX_TODOS")
	_ = viper.BindEnv("limits.maxTitleLength", "MAX_TITLE_LENGTH")
	_ = viper.BindEnv("limits.maxDescriptionLength", "MAX_DESCRIPTION_LENGTH")

	if cfgFileFlag := viper.GetString("config"); cfgFileFlag != "" {
		viper.SetConfigFile(cfgFileFlag)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)
		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.SetConfigName(configName)
	}

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
		// A config file was found but could not be read or parsed.
		fmt.Fprintln(os.Stderr, "Error reading config file:", viper.ConfigFileUsed(), "-", err)
	}

	viper.SetDefault("logLevel", "INFO")
	viper.SetDefault("data.file", "todos.json")
	viper.SetDefault("limits.maxTodos", 1000)
	viper.SetDefault("limits.maxTitleLength", 200)
	viper.SetDefault("limits.maxDescriptionLength", 1000)

	if err := viper.Unmarshal(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error unmarshaling config: %s\n", err)
		os.Exit(1)
	}

	if err := validate.Struct(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration validation error: %s\n", err)
		os.Exit(1)
	}
}

// GetConfig returns a pointer to the global types.AppConfig instance.
func GetConfig() *types.AppConfig {
	return &GlobalAppConfig
}
