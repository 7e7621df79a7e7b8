// Package config loads and validates the service configuration.
//
// Configuration sources (in order of precedence):
//  1. Environment variables (ADMINPANEL_*)
//  2. Configuration file (YAML)
//  3. Default values
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ZaidRasheed/backend-admin-panel/pkg/api"
)

// Config is the full service configuration.
type Config struct {
	// Logging controls log output behavior.
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Server configures the admin HTTP API.
	Server api.Config `mapstructure:"server" yaml:"server"`

	// Metrics configures the optional Prometheus endpoint.
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`

	// Sentry configures optional error reporting. Disabled when DSN is empty.
	Sentry SentryConfig `mapstructure:"sentry" yaml:"sentry"`

	// Upstream selects and configures the identity provider and document
	// store backends.
	Upstream UpstreamConfig `mapstructure:"upstream" yaml:"upstream"`

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required,gt=0" yaml:"shutdown_timeout"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level: DEBUG, INFO, WARN, ERROR.
	Level string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error" yaml:"level"`

	// Format is the log output format: text or json.
	Format string `mapstructure:"format" validate:"required,oneof=text json" yaml:"format"`

	// Output is where logs are written: stdout, stderr, or a file path.
	Output string `mapstructure:"output" validate:"required" yaml:"output"`
}

// MetricsConfig configures the Prometheus metrics server.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	Port    int  `mapstructure:"port" validate:"omitempty,min=1,max=65535" yaml:"port"`
}

// SentryConfig configures error reporting.
type SentryConfig struct {
	DSN         string `mapstructure:"dsn" yaml:"dsn"`
	Environment string `mapstructure:"environment" yaml:"environment"`
}

// UpstreamConfig selects the external system backends.
type UpstreamConfig struct {
	// Backend is "firebase" for production or "memory" for local
	// development without external credentials.
	Backend string `mapstructure:"backend" validate:"required,oneof=firebase memory" yaml:"backend"`

	Firebase FirebaseConfig `mapstructure:"firebase" yaml:"firebase"`
	Local    LocalConfig    `mapstructure:"local" yaml:"local"`
}

// FirebaseConfig holds Firebase project settings for the production backend.
type FirebaseConfig struct {
	// ProjectID identifies the Firebase project. May be empty when the
	// credentials file carries it.
	ProjectID string `mapstructure:"project_id" yaml:"project_id"`

	// CredentialsFile is the path to a service account JSON file. When
	// empty, application default credentials are used.
	CredentialsFile string `mapstructure:"credentials_file" yaml:"credentials_file"`
}

// LocalConfig configures the in-process development backend.
type LocalConfig struct {
	// TokenSecret signs development bearer tokens. A random secret is
	// generated at startup when empty.
	TokenSecret string `mapstructure:"token_secret" yaml:"token_secret"`

	// AdminName seeds the development admin record.
	AdminName string `mapstructure:"admin_name" yaml:"admin_name"`
}

// Load loads configuration from file, environment, and defaults. An empty
// configPath falls back to the default location; when no file exists there,
// defaults are used.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	found, err := readConfigFile(v)
	if err != nil {
		return nil, err
	}
	if !found {
		return GetDefaultConfig(), nil
	}

	var cfg Config
	hooks := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hooks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// setupViper configures environment variable support and the config file
// location. Environment variables use the ADMINPANEL_ prefix with
// underscores for nested keys, e.g. ADMINPANEL_LOGGING_LEVEL=DEBUG.
func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix("ADMINPANEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(GetDefaultConfigPath())
	}
}

// readConfigFile attempts to read the configured file. A missing file is
// not an error; it reports found=false so the caller can use defaults.
func readConfigFile(v *viper.Viper) (bool, error) {
	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return false, nil
		}
		return false, fmt.Errorf("failed to read config file: %w", err)
	}
	return true, nil
}

// GetDefaultConfigPath returns $XDG_CONFIG_HOME/adminpanel/config.yaml,
// falling back to ~/.config.
func GetDefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "config.yaml"
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "adminpanel", "config.yaml")
}

// DefaultConfigExists reports whether a config file exists at the default path.
func DefaultConfigExists() bool {
	_, err := os.Stat(GetDefaultConfigPath())
	return err == nil
}

// SaveConfig writes the configuration as YAML. Restricted permissions, since
// the file may reference credentials.
func SaveConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// InitConfig writes a default config file to the given path (or the default
// location when empty). Refuses to overwrite unless force is set.
func InitConfig(path string, force bool) (string, error) {
	if path == "" {
		path = GetDefaultConfigPath()
	}
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
	}
	if err := SaveConfig(GetDefaultConfig(), path); err != nil {
		return "", err
	}
	return path, nil
}
