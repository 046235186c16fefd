package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/josephgoksu/tasks/internal/config"
	"github.com/josephgoksu/tasks/store"
	"github.com/josephgoksu/tasks/types"
	"github.com/spf13/viper"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

// validate is a single instance of Translate, it caches struct info
var validate = validator.New()

// validateAppConfig performs validation on the AppConfig struct.
func validateAppConfig(cfg *types.AppConfig) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed '%s' (value: '%v')", e.Namespace(), e.Tag(), e.Value()))
	}
	return fmt.Errorf("%w: %s", store.ErrInvalidConfig, strings.Join(msgs, "; "))
}

// InitConfig reads in config file and ENV variables if set.
// Precedence: flags, environment (TASKS_*), config file, defaults.
func InitConfig() error {
	// It's okay if .env file doesn't exist.
	_ = godotenv.Load()

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	for key, value := range config.Defaults() {
		viper.SetDefault(key, value)
	}

	cfgFileFlag := viper.GetString("config")
	if cfgFileFlag != "" {
		viper.SetConfigFile(cfgFileFlag)
	} else {
		projectDir := viper.GetString("project.rootDir")
		if _, err := os.Stat(projectDir); err == nil {
			// Project-specific config directory exists. Prioritize it.
			viper.AddConfigPath(projectDir)
		}
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(config.ConfigName)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err == nil {
		appLog.Debug("using config file", "path", viper.ConfigFileUsed())
	} else {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			appLog.Debug("no config file found, using defaults and environment")
		case cfgFileFlag != "" && errors.Is(err, fs.ErrNotExist):
			return fmt.Errorf("%w: config file %s not found", store.ErrInvalidConfig, cfgFileFlag)
		default:
			return fmt.Errorf("%w: error reading config file %s: %v", store.ErrInvalidConfig, viper.ConfigFileUsed(), err)
		}
	}

	GlobalAppConfig = types.AppConfig{}
	if err := viper.Unmarshal(&GlobalAppConfig); err != nil {
		return fmt.Errorf("%w: error unmarshaling config: %v", store.ErrInvalidConfig, err)
	}
	GlobalAppConfig.Data.Format = strings.ToLower(strings.TrimSpace(GlobalAppConfig.Data.Format))
	GlobalAppConfig.Log.Level = strings.ToLower(strings.TrimSpace(GlobalAppConfig.Log.Level))

	return validateAppConfig(&GlobalAppConfig)
}

// GetConfig returns a pointer to the global types.AppConfig instance.
func GetConfig() *types.AppConfig {
	return &GlobalAppConfig
}
