// Package config provides centralized configuration constants for tasks.
// All default values should be defined here to ensure a single source of truth.
package config

const (
	// AppName is used for the binary, the config file and the crash log banner.
	AppName = "tasks"

	// ConfigName is the config file name without extension (.tasks.yaml).
	ConfigName = ".tasks"

	// EnvPrefix prefixes environment overrides, e.g. TASKS_DATA_FORMAT.
	EnvPrefix = "TASKS"
)

// Storage defaults
const (
	DefaultRootDir     = ".tasks"
	DefaultDataFile    = "tasks.json"
	DefaultOptionsFile = "options.json"
	DefaultFormat      = "json"
	DefaultLogLevel    = "info"
)

// DefaultPriority is used by add when no priority is given (LOW).
const DefaultPriority = 3

// Defaults returns every viper default keyed by its config path.
func Defaults() map[string]any {
	return map[string]any{
		"project.rootDir":  DefaultRootDir,
		"data.file":        DefaultDataFile,
		"data.optionsFile": DefaultOptionsFile,
		"data.format":      DefaultFormat,
		"log.level":        DefaultLogLevel,
	}
}
