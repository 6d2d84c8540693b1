/*
Copyright © 2025 todoserve contributors
*/
package types

// AppConfig is the unified application configuration, populated by viper
// from defaults, an optional config file, and environment variables.
type AppConfig struct {
	Verbose  bool         `mapstructure:"verbose" json:"verbose"`
	LogLevel string       `mapstructure:"logLevel" json:"logLevel" validate:"omitempty,oneof=DEBUG INFO WARN ERROR"`
	Data     DataConfig   `mapstructure:"data" json:"data"`
	Limits   LimitsConfig `mapstructure:"limits" json:"limits"`
}

// DataConfig locates the storage file.
type DataConfig struct {
	// File is the path of the JSON storage file. A ".bak" sibling exists
	// transiently during each save.
	File string `mapstructure:"file" json:"file" validate:"required"`
}

// LimitsConfig bounds the store and its fields.
type LimitsConfig struct {
	MaxTodos             int `mapstructure:"maxTodos" json:"maxTodos" validate:"required,min=1"`
	MaxTitleLength       int `mapstructure:"maxTitleLength" json:"maxTitleLength" validate:"required,min=1"`
	MaxDescriptionLength int `mapstructure:"maxDescriptionLength" json:"maxDescriptionLength" validate:"required,min=1"`
}
