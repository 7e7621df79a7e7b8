package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestGetDefaultConfig_IsValid(t *testing.T) {
	cfg := GetDefaultConfig()
	if err := Validate(cfg); err != nil {
		t.Errorf("default config should validate, got: %v", err)
	}
	if cfg.Upstream.Backend != "memory" {
		t.Errorf("default backend should be memory, got %q", cfg.Upstream.Backend)
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Logging.Level = "LOUD"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error for invalid log level")
	}
	if !strings.Contains(err.Error(), "oneof") {
		t.Errorf("expected 'oneof' validation error, got: %v", err)
	}
}

func TestValidate_InvalidBackend(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Upstream.Backend = "dynamo"

	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for unknown backend")
	}
}

func TestValidate_FirebaseBackendNeedsProject(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Upstream.Backend = "firebase"

	if err := Validate(cfg); err == nil {
		t.Fatal("expected error when firebase backend has no project settings")
	}

	cfg.Upstream.Firebase.ProjectID = "my-project"
	if err := Validate(cfg); err != nil {
		t.Errorf("expected config to validate with project_id set, got: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Server.Port = 70000

	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for out-of-range port")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load with missing file should fall back to defaults: %v", err)
	}
	if cfg.Server.Port != DefaultServerPort {
		t.Errorf("expected default port %d, got %d", DefaultServerPort, cfg.Server.Port)
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
logging:
  level: DEBUG
  format: json
server:
  port: 8088
  read_timeout: 5s
upstream:
  backend: memory
shutdown_timeout: 30s
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("expected level DEBUG, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected format json, got %q", cfg.Logging.Format)
	}
	if cfg.Server.Port != 8088 {
		t.Errorf("expected port 8088, got %d", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("expected read timeout 5s, got %v", cfg.Server.ReadTimeout)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("expected shutdown timeout 30s, got %v", cfg.ShutdownTimeout)
	}
	// Unset values are defaulted.
	if cfg.Logging.Output != DefaultLogOutput {
		t.Errorf("expected default output, got %q", cfg.Logging.Output)
	}
	if cfg.Upstream.Local.AdminName != DefaultAdminName {
		t.Errorf("expected default admin name, got %q", cfg.Upstream.Local.AdminName)
	}
}

func TestLoad_InvalidFileRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
logging:
  level: NOISY
upstream:
  backend: memory
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected validation failure for invalid log level")
	}
}

func TestInitConfig_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	created, err := InitConfig(path, false)
	if err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}
	if created != path {
		t.Errorf("expected path %s, got %s", path, created)
	}

	if _, err := InitConfig(path, false); err == nil {
		t.Fatal("expected error when overwriting without force")
	}
	if _, err := InitConfig(path, true); err != nil {
		t.Errorf("expected force overwrite to succeed, got: %v", err)
	}

	// The generated file must round-trip through Load.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("generated config failed to load: %v", err)
	}
	if cfg.Server.Port != DefaultServerPort {
		t.Errorf("expected default port in generated config, got %d", cfg.Server.Port)
	}
}
