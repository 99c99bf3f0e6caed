package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	"dailyoffice/internal/backend"
	"dailyoffice/internal/cli"
	"dailyoffice/internal/config"
	"dailyoffice/internal/core"
	"dailyoffice/internal/log"
	"dailyoffice/internal/render"
	"dailyoffice/internal/services"
	"dailyoffice/internal/site"
	"dailyoffice/web"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	cli.LoadEnvFile()

	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))

	if _, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		logger.Debug("maxprocs", "msg", format, "args", args)
	})); err != nil {
		logger.Warn("Failed to set GOMAXPROCS", log.FieldError, err)
	}

	cfg, err := cli.LoadConfig()
	if err != nil {
		logger.Error("Configuration validation failed", log.FieldOperation, log.OpStartup, log.FieldError, err)
		os.Exit(1)
	}

	ctx, stop := cli.SignalContext(logger)
	err = run(ctx, logger, cfg)
	stop()
	if err != nil {
		logger.Error("Site generation failed", log.FieldError, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *log.Logger, cfg *config.Config) error {
	sourceCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return fmt.Errorf("invalid data source: %w", err)
	}
	source, err := backend.NewFactory(logger).CreateSource(ctx, sourceCfg)
	if err != nil {
		return fmt.Errorf("initialize %s source: %w", sourceCfg.Type, err)
	}
	defer source.Cleanup()

	renderer, err := render.New(web.TemplatesFS, "templates/*.html")
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	out, err := site.NewDir(cfg.OutputDir)
	if err != nil {
		return err
	}

	var (
		manifest services.PageManifest
		previous *core.Build
	)
	repo, err := cli.InitManifest(logger, cfg.ManifestPath)
	if err != nil {
		return err
	}
	if repo != nil {
		defer repo.Close()
		manifest = repo

		last, ok, err := repo.LastBuild(ctx)
		if err != nil {
			return err
		}
		if ok {
			previous = &last
		}
	}

	var notifier services.Notifier
	if client := cli.InitNotifier(logger, cfg); client != nil {
		defer client.Close()
		notifier = client
	}

	gen := services.NewGenerator(source.Source, renderer, out, services.Options{
		Year:        cfg.SiteYear,
		AnalyticsID: cfg.AnalyticsID,
		ColorColumn: cfg.ColorColumn,
		ColorMap:    cfg.ColorMap,
		Workers:     cfg.RenderWorkers,
		OutputDir:   cfg.OutputDir,
		Static:      web.StaticFS,
		StaticDir:   site.StaticDir,
	}, manifest, notifier)

	cli.PrintBanner(os.Stdout, source.Describe)
	report, err := gen.Run(ctx)
	if err != nil {
		return err
	}
	cli.PrintSummary(os.Stdout, report, previous)
	return nil
}
