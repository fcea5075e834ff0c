package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables take
// precedence over values from the config file.
// Returns a populated Config struct or an error if loading or
// validation fails; a missing database URL is reported here and is
// fatal to startup.
func Load() (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	// Optionally read config.yaml from the working directory
	v.SetConfigType("yaml")
	v.SetConfigName("config")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; anything else is not
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Configure environment variables
	v.SetEnvPrefix("TASKAPI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind critical environment variables. The database URL
	// also binds to the unprefixed DATABASE_URL commonly provided by
	// hosting platforms.
	bindEnvs := []struct {
		key     string
		envVars []string
	}{
		{"database.url", []string{"TASKAPI_DATABASE_URL", "DATABASE_URL"}},
		{"server.port", []string{"TASKAPI_SERVER_PORT"}},
		{"server.log_level", []string{"TASKAPI_SERVER_LOG_LEVEL"}},
	}

	for _, env := range bindEnvs {
		args := append([]string{env.key}, env.envVars...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("error binding environment variable for %s: %w", env.key, err)
		}
	}

	// Unmarshal and validate
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
