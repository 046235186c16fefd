package store

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	// ErrNotFound is returned when no task has the requested identifier.
	ErrNotFound = errors.New("task not found")
	// ErrInvalidConfig is returned for unusable storage paths or formats.
	ErrInvalidConfig = errors.New("invalid store configuration")
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"

	defaultDataFile    = "tasks"
	defaultOptionsFile = "options"
	checksumSuffix     = ".checksum"
	lockSuffix         = ".lock"
)

// formatExtensions lists the file extensions accepted for each data format.
var formatExtensions = map[string][]string{
	FormatJSON: {".json"},
	FormatYAML: {".yaml", ".yml"},
	FormatTOML: {".toml"},
}

// Config describes where and how the store persists its data.
type Config struct {
	// DataFile is the path of the task collection file.
	DataFile string
	// OptionsFile holds the identifier counter. Defaults to options.<ext> beside DataFile.
	OptionsFile string
	// Format is one of json, yaml or toml. Defaults to json.
	Format string
}

// normalize fills defaults and checks that both paths match the format.
func (c Config) normalize() (Config, error) {
	format := strings.ToLower(strings.TrimSpace(c.Format))
	if format == "" {
		format = FormatJSON
	}
	exts, ok := formatExtensions[format]
	if !ok {
		return Config{}, fmt.Errorf("%w: unsupported data format %q, supported formats are json, yaml, toml", ErrInvalidConfig, c.Format)
	}
	c.Format = format

	if c.DataFile == "" {
		c.DataFile = defaultDataFile + exts[0]
	}
	if c.OptionsFile == "" {
		c.OptionsFile = filepath.Join(filepath.Dir(c.DataFile), defaultOptionsFile+exts[0])
	}

	if !hasExtension(c.DataFile, exts) {
		return Config{}, fmt.Errorf("%w: file name with tasks must end with %s", ErrInvalidConfig, strings.Join(exts, " or "))
	}
	if !hasExtension(c.OptionsFile, exts) {
		return Config{}, fmt.Errorf("%w: file name with options must end with %s", ErrInvalidConfig, strings.Join(exts, " or "))
	}
	if filepath.Clean(c.DataFile) == filepath.Clean(c.OptionsFile) {
		return Config{}, fmt.Errorf("%w: tasks and options must be stored in different files", ErrInvalidConfig)
	}
	return c, nil
}

func hasExtension(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
