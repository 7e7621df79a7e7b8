package commands

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ZaidRasheed/backend-admin-panel/internal/logger"
	"github.com/ZaidRasheed/backend-admin-panel/pkg/api"
	"github.com/ZaidRasheed/backend-admin-panel/pkg/authz"
	"github.com/ZaidRasheed/backend-admin-panel/pkg/config"
	"github.com/ZaidRasheed/backend-admin-panel/pkg/metrics"
	"github.com/ZaidRasheed/backend-admin-panel/pkg/observability"
	"github.com/ZaidRasheed/backend-admin-panel/pkg/teacher"
	"github.com/ZaidRasheed/backend-admin-panel/pkg/upstream"
	"github.com/ZaidRasheed/backend-admin-panel/pkg/upstream/firebase"
	"github.com/ZaidRasheed/backend-admin-panel/pkg/upstream/localidp"
	"github.com/ZaidRasheed/backend-admin-panel/pkg/upstream/memory"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the admin panel server",
	Long: `Start the admin panel server with the specified configuration.

Use --config to specify a custom configuration file, or it will use the
default location at $XDG_CONFIG_HOME/adminpanel/config.yaml.

Examples:
  # Start with default config location
  adminpanel start

  # Start with custom config file
  adminpanel start --config /etc/adminpanel/config.yaml

  # Start with environment variable overrides
  ADMINPANEL_LOGGING_LEVEL=DEBUG adminpanel start`,
	RunE: runStart,
}

func runStart(cmd *cobra.Command, args []string) error {
	// Local .env files are a development convenience; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return err
	}

	loggerCfg := logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}
	if err := logger.Init(loggerCfg); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	flushSentry, err := observability.InitSentry(cfg.Sentry.DSN, cfg.Sentry.Environment, Version)
	if err != nil {
		return fmt.Errorf("failed to initialize sentry: %w", err)
	}
	defer flushSentry()

	// Create cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger.Info("Log level", "level", cfg.Logging.Level, "format", cfg.Logging.Format)
	logger.Info("Configuration loaded", "source", getConfigSource(GetConfigFile()))

	idp, docs, closeUpstream, err := buildUpstreams(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeUpstream()

	var teacherOps *metrics.TeacherOperations
	var metricsServer *metrics.Server
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		teacherOps = metrics.NewTeacherOperations()
		metricsServer = metrics.NewServer(cfg.Metrics.Port)
		logger.Info("Metrics enabled", "port", cfg.Metrics.Port)
	} else {
		logger.Info("Metrics collection disabled")
	}

	apiServer := api.NewServer(cfg.Server, api.Dependencies{
		Authorizer: authz.New(idp, docs),
		Teachers:   teacher.NewService(idp, docs),
		Metrics:    teacherOps,
	})
	apiServer.SetShutdownTimeout(cfg.ShutdownTimeout)
	logger.Info("API server configured", "port", apiServer.Port(), "backend", cfg.Upstream.Backend)

	// Start servers in background
	serverDone := make(chan error, 1)
	go func() {
		serverDone <- apiServer.Start(ctx)
	}()
	if metricsServer != nil {
		go func() {
			if err := metricsServer.Start(ctx); err != nil {
				logger.Error("Metrics server error", "error", err)
			}
		}()
	}

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Server is running. Press Ctrl+C to stop.")

	select {
	case <-sigChan:
		signal.Stop(sigChan)
		logger.Info("Shutdown signal received, initiating graceful shutdown")
		cancel()

		if err := <-serverDone; err != nil {
			logger.Error("Server shutdown error", "error", err)
			return err
		}
		logger.Info("Server stopped gracefully")

	case err := <-serverDone:
		signal.Stop(sigChan)
		if err != nil {
			logger.Error("Server error", "error", err)
			return err
		}
		logger.Info("Server stopped")
	}

	return nil
}

// buildUpstreams wires the configured identity provider and document store.
// The returned close function releases backend resources and is always safe
// to call.
func buildUpstreams(ctx context.Context, cfg *config.Config) (upstream.IdentityProvider, upstream.DocumentStore, func(), error) {
	switch cfg.Upstream.Backend {
	case "firebase":
		client, err := firebase.Dial(ctx, firebase.Config{
			ProjectID:       cfg.Upstream.Firebase.ProjectID,
			CredentialsFile: cfg.Upstream.Firebase.CredentialsFile,
		})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to connect to firebase: %w", err)
		}
		logger.Info("Firebase backend connected", "project_id", cfg.Upstream.Firebase.ProjectID)
		return client, client, func() {
			if err := client.Close(); err != nil {
				logger.Error("Firebase close error", "error", err)
			}
		}, nil

	case "memory":
		idp, docs, err := buildMemoryBackend(ctx, cfg)
		if err != nil {
			return nil, nil, nil, err
		}
		return idp, docs, func() {}, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown upstream backend: %s", cfg.Upstream.Backend)
	}
}

// buildMemoryBackend assembles the in-process development backend and seeds
// it with one administrator so the API is usable out of the box. The minted
// admin token is logged once at startup.
func buildMemoryBackend(ctx context.Context, cfg *config.Config) (upstream.IdentityProvider, upstream.DocumentStore, error) {
	secret := cfg.Upstream.Local.TokenSecret
	if secret == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, nil, fmt.Errorf("failed to generate token secret: %w", err)
		}
		secret = hex.EncodeToString(buf)
		logger.Warn("No token secret configured, generated a random one; tokens will not survive restarts")
	}

	idp := localidp.New(secret)
	docs := memory.NewStore()

	adminID := uuid.NewString()
	if err := docs.SetDocument(ctx, upstream.AdminsCollection, adminID,
		map[string]any{"name": cfg.Upstream.Local.AdminName}); err != nil {
		return nil, nil, fmt.Errorf("failed to seed admin record: %w", err)
	}

	token, err := idp.IssueToken(adminID, 24*time.Hour)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to issue admin token: %w", err)
	}
	logger.Info("Development backend ready",
		"admin_id", adminID,
		"admin_name", cfg.Upstream.Local.AdminName,
		"token", token)

	return idp, docs, nil
}

// getConfigSource returns a description of where the config was loaded from.
func getConfigSource(configFile string) string {
	if configFile != "" {
		return configFile
	}
	if config.DefaultConfigExists() {
		return config.GetDefaultConfigPath()
	}
	return "defaults"
}
