/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package types

// AppConfig represents the complete application configuration
type AppConfig struct {
	Verbose bool          `mapstructure:"verbose"`
	Config  string        `mapstructure:"config"`
	JSON    bool          `mapstructure:"json"`
	Quiet   bool          `mapstructure:"quiet"`
	Project ProjectConfig `mapstructure:"project" validate:"required"`
	Data    DataConfig    `mapstructure:"data" validate:"required"`
	Log     LogConfig     `mapstructure:"log"`
}

// ProjectConfig holds project-related settings
type ProjectConfig struct {
	RootDir string `mapstructure:"rootDir" validate:"required"`
}

// DataConfig holds data storage configuration.
// Relative paths are resolved against Project.RootDir.
type DataConfig struct {
	File        string `mapstructure:"file" validate:"required"`
	OptionsFile string `mapstructure:"optionsFile" validate:"required"`
	Format      string `mapstructure:"format" validate:"required,oneof=json yaml toml"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error fatal"`
}
