package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/dokzlo13/glowd/internal/app"
	"github.com/dokzlo13/glowd/internal/config"
)

func main() {
	// Support both -c and --config for config path
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "Path to configuration file")
	flag.StringVar(&configPath, "c", "config.yaml", "Path to configuration file (shorthand)")
	selectRegion := flag.Bool("select", false, "Interactively pick the capture region before starting")
	resetRegion := flag.Bool("reset-region", false, "Clear the stored capture region on startup")
	once := flag.Bool("once", false, "Run a single sync cycle and exit")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		// Logging is not configured yet, fall back to a plain console logger.
		bootstrap := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		bootstrap.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger := setupLogging(cfg.Log.GetLevel(), cfg.Log.JSON, cfg.Log.Colors)

	logger.Info().Str("config", configPath).Msg("Starting glowd")

	// Create application
	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create application")
	}

	// Handle region flags
	if *resetRegion {
		logger.Info().Msg("Clearing stored capture region (--reset-region)")
		if err := application.ResetRegion(); err != nil {
			logger.Warn().Err(err).Msg("Failed to clear capture region")
		}
	}
	if *selectRegion {
		if err := application.SelectRegion(); err != nil {
			logger.Fatal().Err(err).Msg("Region selection failed")
		}
	}

	// Create context that cancels on shutdown signal
	ctx := app.SignalContext(logger)

	if *once {
		if err := application.RunOnce(ctx); err != nil {
			logger.Error().Err(err).Msg("Sync cycle failed")
			application.Stop()
			os.Exit(1)
		}
		if err := application.Stop(); err != nil {
			logger.Error().Err(err).Msg("Error during shutdown")
		}
		return
	}

	// Start the application
	if err := application.Start(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start application")
	}

	// Wait for shutdown
	application.Wait()

	// Graceful shutdown
	if err := application.Stop(); err != nil {
		logger.Error().Err(err).Msg("Error during shutdown")
	}
}

func setupLogging(level string, useJSON bool, colors bool) zerolog.Logger {
	// ISO 8601 format with timezone
	zerolog.TimeFieldFormat = time.RFC3339

	var logger zerolog.Logger
	if useJSON {
		// JSON output for production
		logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		// Text output (with optional colors)
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: "2006-01-02T15:04:05.000Z07:00",
			NoColor:    !colors,
		}).With().Timestamp().Logger()
	}

	switch level {
	case "trace":
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	return logger
}
