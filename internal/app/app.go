package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/dokzlo13/glowd/internal/capture"
	"github.com/dokzlo13/glowd/internal/config"
	"github.com/dokzlo13/glowd/internal/selector"
)

// App is the main application container that manages all services and their lifecycle.
type App struct {
	cfg      *config.Config
	log      zerolog.Logger
	services *Services
	ctx      context.Context
	cancel   context.CancelFunc
}

// New creates a new App instance with all services initialized but not started.
// Light discovery is deferred to Start since it talks to the network.
func New(cfg *config.Config, logger zerolog.Logger) (*App, error) {
	services, err := NewServices(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:      cfg,
		log:      logger,
		services: services,
	}, nil
}

// Start discovers the configured lights and launches the sync loop.
// The provided context is used for cancellation.
func (a *App) Start(ctx context.Context) error {
	a.ctx, a.cancel = context.WithCancel(ctx)

	if err := a.services.Start(a.ctx); err != nil {
		return err
	}

	a.log.Info().Msg("glowd started")
	return nil
}

// RunOnce discovers the configured lights and performs a single sync
// cycle instead of starting the loop.
func (a *App) RunOnce(ctx context.Context) error {
	a.ctx, a.cancel = context.WithCancel(ctx)
	return a.services.RunOnce(a.ctx)
}

// Stop gracefully shuts down all services.
func (a *App) Stop() error {
	a.log.Info().Msg("Shutting down...")

	if a.cancel != nil {
		a.cancel()
	}

	if a.services != nil {
		return a.services.Stop()
	}

	return nil
}

// Wait blocks until the application context is cancelled.
func (a *App) Wait() {
	if a.ctx != nil {
		<-a.ctx.Done()
	}
}

// SelectRegion captures the screen, opens the interactive region
// selector and persists the committed region. Cancelling the selector
// keeps whatever region was stored before.
func (a *App) SelectRegion() error {
	img, err := capture.Full()
	if err != nil {
		return fmt.Errorf("capturing screen for selection: %w", err)
	}

	r, ok, err := selector.Select(img, a.log)
	if err != nil {
		return err
	}
	if !ok {
		a.log.Info().Msg("Region selection cancelled, keeping previous region")
		return nil
	}

	if err := a.services.Store.SaveRegion(r); err != nil {
		return err
	}
	a.log.Info().Str("region", r.String()).Msg("Saved capture region")
	return nil
}

// ResetRegion clears the persisted capture region, returning the
// daemon to full-screen capture.
func (a *App) ResetRegion() error {
	return a.services.Store.ResetRegion()
}

// SignalContext creates a context that is cancelled when SIGINT or SIGTERM is received.
func SignalContext(logger zerolog.Logger) context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Warn().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	return ctx
}
