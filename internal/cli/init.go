// Package cli provides the startup helpers used by cmd/dailyoffice.
package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"dailyoffice/internal/amqp"
	"dailyoffice/internal/config"
	"dailyoffice/internal/log"
	"dailyoffice/internal/storage"
)

// SetupLogger initializes structured logging at level (debug, info, warn,
// error) and installs it as the slog default.
func SetupLogger(level string) *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Level = log.ParseLevel(level)
	logger := log.New(cfg)
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadConfig loads configuration and validates it.
func LoadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// InitManifest opens the build manifest at dbPath, or returns nil when
// incremental builds are disabled.
func InitManifest(logger *log.Logger, dbPath string) (*storage.SQLiteRepository, error) {
	if dbPath == "" {
		logger.Debug("Build manifest disabled", log.FieldOperation, log.OpStartup)
		return nil, nil
	}
	repo, err := storage.NewSQLiteRepository(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open build manifest %s: %w", dbPath, err)
	}
	logger.Info("Build manifest enabled", log.FieldOperation, log.OpStartup, log.FieldPath, dbPath)
	return repo, nil
}

// InitNotifier connects to the broker when AMQP_URL is set. A broker that
// cannot be reached disables notifications instead of failing the build.
func InitNotifier(logger *log.Logger, cfg *config.Config) *amqp.Client {
	if cfg.AMQPURL == "" {
		return nil
	}
	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey)
	if err != nil {
		logger.Warn("AMQP unavailable, build notifications disabled", log.FieldOperation, log.OpStartup, log.FieldError, err)
		return nil
	}
	logger.Info("Build notifications enabled", "exchange", cfg.AMQPExchange, "routing_key", cfg.AMQPRoutingKey)
	return client
}

// SignalContext returns a context carrying logger that is cancelled on
// SIGINT or SIGTERM.
func SignalContext(logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	return log.NewContext(ctx, logger), stop
}
