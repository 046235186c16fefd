package types

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func validConfig() AppConfig {
	return AppConfig{
		Project: ProjectConfig{RootDir: ".tasks"},
		Data: DataConfig{
			File:        "tasks.json",
			OptionsFile: "options.json",
			Format:      "json",
		},
		Log: LogConfig{Level: "info"},
	}
}

func TestAppConfig_Validation(t *testing.T) {
	v := validator.New()

	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr bool
	}{
		{"valid", func(*AppConfig) {}, false},
		{"yaml format", func(c *AppConfig) { c.Data.Format = "yaml" }, false},
		{"empty log level", func(c *AppConfig) { c.Log.Level = "" }, false},
		{"unknown format", func(c *AppConfig) { c.Data.Format = "xml" }, true},
		{"missing data file", func(c *AppConfig) { c.Data.File = "" }, true},
		{"missing root dir", func(c *AppConfig) { c.Project.RootDir = "" }, true},
		{"unknown log level", func(c *AppConfig) { c.Log.Level = "loud" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := v.Struct(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Struct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
