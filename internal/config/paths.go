package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/josephgoksu/tasks/types"
)

// GetGlobalConfigDir returns the path to the global configuration directory (~/.tasks).
// It's a variable to allow overriding in tests.
var GetGlobalConfigDir = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultRootDir), nil
}

// DataPaths are the resolved locations of the store files.
type DataPaths struct {
	DataFile    string
	OptionsFile string
	Format      string
}

// ResolveDataPaths joins relative data paths onto the project root and
// swaps the default extensions for the configured format.
// Absolute paths are used as given.
func ResolveDataPaths(cfg types.AppConfig) DataPaths {
	format := strings.ToLower(cfg.Data.Format)
	if format == "" {
		format = DefaultFormat
	}
	return DataPaths{
		DataFile:    resolve(cfg.Project.RootDir, withFormat(cfg.Data.File, DefaultDataFile, format)),
		OptionsFile: resolve(cfg.Project.RootDir, withFormat(cfg.Data.OptionsFile, DefaultOptionsFile, format)),
		Format:      format,
	}
}

// withFormat rewrites an unchanged default file name (or an empty one) to carry the format extension.
func withFormat(name, def, format string) string {
	if name != "" && name != def {
		return name
	}
	return strings.TrimSuffix(def, filepath.Ext(def)) + "." + format
}

func resolve(root, name string) string {
	if filepath.IsAbs(name) || root == "" {
		return name
	}
	return filepath.Join(root, name)
}
