package config

import (
	"time"

	"github.com/ZaidRasheed/backend-admin-panel/pkg/api"
)

// Default values applied when the config file omits a setting.
const (
	DefaultServerPort   = 3000
	DefaultMetricsPort  = 9091
	DefaultLogLevel     = "INFO"
	DefaultLogFormat    = "text"
	DefaultLogOutput    = "stdout"
	DefaultBackend      = "memory"
	DefaultAdminName    = "Administrator"
	DefaultShutdownWait = 10 * time.Second
)

// GetDefaultConfig returns a fully populated configuration with defaults.
// The default upstream backend is the in-process development backend so the
// service starts without external credentials.
func GetDefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
			Output: DefaultLogOutput,
		},
		Server: api.Config{
			Port:         DefaultServerPort,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Port:    DefaultMetricsPort,
		},
		Upstream: UpstreamConfig{
			Backend: DefaultBackend,
			Local: LocalConfig{
				AdminName: DefaultAdminName,
			},
		},
		ShutdownTimeout: DefaultShutdownWait,
	}
}

// ApplyDefaults fills zero values with defaults after unmarshalling.
func ApplyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = DefaultLogOutput
	}
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Metrics.Port <= 0 {
		cfg.Metrics.Port = DefaultMetricsPort
	}
	if cfg.Upstream.Backend == "" {
		cfg.Upstream.Backend = DefaultBackend
	}
	if cfg.Upstream.Local.AdminName == "" {
		cfg.Upstream.Local.AdminName = DefaultAdminName
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = DefaultShutdownWait
	}
}
